package ops

// Firestore query operators.
const (
	Equal          = "=="
	NotEqual       = "!="
	Greater        = ">"
	GreaterOrEqual = ">="
	Less           = "<"
	LessOrEqual    = "<="
	In             = "in"
	ArrayContains  = "array-contains"
)
