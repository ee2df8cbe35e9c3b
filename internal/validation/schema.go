package validation

// Kind is the JSON type a field must carry.
type Kind string

// Supported field kinds.
const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
)

// Message keys that are not validator tags. Any validator tag used in
// Field.Rules (e.g. "min", "email", "isodate") is also a valid key.
const (
	KeyRequired = "required"
	KeyEmpty    = "empty"
	KeyType     = "type"
	KeyInteger  = "integer"
)

// Field declares one accepted key.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Nullable allows an explicit JSON null.
	Nullable bool
	// Rules is a go-playground/validator tag string applied after the type check.
	Rules string
	// Messages overrides the default message for a failure key.
	Messages map[string]string
}

// Schema is an ordered set of fields. Keys not declared are rejected.
type Schema struct {
	Fields []Field
	// MinFields is the minimum number of keys the object must contain.
	MinFields int
}

// RequestSchema pairs the path parameter and body halves of a request.
type RequestSchema struct {
	Params Schema
	Body   Schema
}

// Result is the outcome of validating one object.
type Result struct {
	Errors []string
}

// Valid reports whether no defects were found.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}
