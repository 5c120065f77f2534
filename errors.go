package formstate

import "errors"

// MissingItemText is returned by ItemValidate for an unknown key. It is not
// a validation result.
const MissingItemText = "the key does not exist in this form"

var ErrItemNotFound = errors.New("form item not found")

// ValidationError is returned by Submit when validation blocks the submit handler.
type ValidationError struct {
	Text string
}

func (e *ValidationError) Error() string {
	return e.Text
}
