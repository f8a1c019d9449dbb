package ir

import (
	"log/slog"
	"strings"
)

// SlogType wraps t as a slog.LogValuer so that it is only shown
// if the record is actually handled
func SlogType(env Env, t Type) slog.LogValuer { return typeLogValuer{env: env, t: t} }

// SlogEnv wraps env as a slog.LogValuer
func SlogEnv(env Env) slog.LogValuer { return envLogValuer{env} }

type typeLogValuer struct {
	env Env
	t   Type
}
type envLogValuer struct{ Env }

func (l typeLogValuer) LogValue() slog.Value { return slog.StringValue(l.t.ShowIn(l.env, 0)) }

func (l envLogValuer) LogValue() slog.Value {
	parts := make([]string, 0, l.Len())
	for _, b := range l.All() {
		switch b := b.(type) {
		case FreeVariable:
			parts = append(parts, "'"+b.Name)
		case EnclosingDecl:
			parts = append(parts, b.Decl.Name)
		}
	}
	return slog.StringValue("[" + strings.Join(parts, ", ") + "]")
}
