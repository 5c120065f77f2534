package fill

import (
	"github.com/tbxark/formstate/command"
	"github.com/tbxark/formstate/patch"
)

// UpdateFormArgs are the arguments of the update_form tool call.
type UpdateFormArgs struct {
	Ops []patch.Operation `json:"ops" jsonschema:"description=RFC6902 operations on the form data"`
}

// Result describes one Fill turn.
type Result struct {
	Command command.Command   `json:"command"`
	Ops     []patch.Operation `json:"ops,omitempty"`

	// Changed lists the item keys whose value changed, in item order.
	Changed      []string `json:"changed,omitempty"`
	Submitted    bool     `json:"submitted"`
	SubmitResult any      `json:"submit_result,omitempty"`
	Message      string   `json:"message"`
}
