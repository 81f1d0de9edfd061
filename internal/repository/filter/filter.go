package filter

// Where is a single field condition applied to a firestore query.
type Where struct {
	Path  string
	Op    string
	Value interface{}
}

func New(path, op string, value interface{}) Where {
	return Where{Path: path, Op: op, Value: value}
}
