package formstate

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/tbxark/formstate/schema"
	"github.com/tbxark/formstate/types"
)

// Schema describes the current items as a JSON Schema object.
func (f *Form) Schema(title string) *jsonschema.Schema {
	return schema.FromItems(title, f.items, types.Merge(f.data, f.opts.extra))
}

func (f *Form) JSONSchema(title string) (string, error) {
	raw, err := json.Marshal(f.Schema(title))
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON schema: %w", err)
	}
	return string(raw), nil
}
