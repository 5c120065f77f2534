package types

// Values maps an item key to a value. It is used for the form data object,
// initial values and the extra options handed to validators and formatters.
type Values map[string]any

type (
	Validator    func(value any, ctx Values) string
	Formatter    func(value any, ctx Values) any
	CalcRequired func(ctx Values) bool
)

// Spec describes one form item as supplied by the caller.
type Spec struct {
	// Key identifies the item in the data object. It must be unique in a form.
	Key string
	// ID defaults to Key when empty.
	ID    string
	Label string
	Value any

	// Required defaults to true when nil. CalcRequired takes precedence.
	Required     *bool
	CalcRequired CalcRequired
	Validator    Validator
	Formatter    Formatter

	// ValidateOnChange overrides the form level default when set.
	ValidateOnChange *bool

	// Extra holds arbitrary caller keys, preserved verbatim.
	Extra Values
}

// Item is the live state of one form item. The Form owns it.
type Item struct {
	// Spec is the definition the item was initialized from. Reset rebuilds
	// items from it, so hooks survive a reset.
	Spec Spec

	Key       string
	ID        string
	Label     string
	Value     any
	Required  bool
	Pristine  bool
	Valid     bool
	ErrorText string
}

// Settings is the subset of resolved form options the item functions need.
type Settings struct {
	ValidateOnChange   bool
	EmptyErrorTemplate string
	Extra              Values
}
