package ir

const (
	VoidName   = "void"
	EitherName = "either"
	LeftName   = "Left"
	RightName  = "Right"
)

var (
	// VoidType is the canonical empty variant that Void is declared as
	VoidType = &Recursive{Name: VoidName}

	// EitherType is the canonical binary sum that Sum is encoded with.
	// It is meant to be used under EitherEnv, where index 0 inside its
	// constructors is the type itself, 1 is 'a and 2 is 'b
	EitherType = &Recursive{
		Name: EitherName,
		Constructors: []Constructor{
			{Name: LeftName, Type: &BoundVar{Index: 1}},
			{Name: RightName, Type: &BoundVar{Index: 2}},
		},
	}

	EitherEnv = NewFreeEnv("a", "b")
)
