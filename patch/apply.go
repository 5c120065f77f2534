package patch

import (
	"fmt"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/tbxark/formstate/types"
)

// Apply returns a patched copy of doc. doc itself is not modified. Values
// go through JSON, so numbers come back as float64.
//
// Models tend to replace item keys the data does not hold yet, and to remove
// keys that are already gone: replace on a missing item key becomes add
// (parents are created) and remove on a missing path is a no-op.
func Apply(doc types.Values, ops []Operation) (types.Values, error) {
	currentJSON, err := sonic.Marshal(nonNil(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal current data: %w", err)
	}
	if len(ops) == 0 {
		return decode(currentJSON)
	}

	patchJSON, err := sonic.Marshal(FixOperation(doc, ops))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch operations: %w", err)
	}

	p, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode patch: %w", err)
	}

	options := jsonpatch.NewApplyOptions()
	options.AllowMissingPathOnRemove = true
	options.EnsurePathExistsOnAdd = true
	modifiedJSON, err := p.ApplyWithOptions(currentJSON, options)
	if err != nil {
		return nil, fmt.Errorf("failed to apply patch: %w", err)
	}
	return decode(modifiedJSON)
}

// Normalize round-trips doc through JSON so it compares equal to the
// output of Apply.
func Normalize(doc types.Values) (types.Values, error) {
	return Apply(doc, nil)
}

// FixOperation turns replace into add when doc has no value under the item
// key of its path. Deeper paths under an existing key are left to the patch.
func FixOperation(doc types.Values, ops []Operation) []Operation {
	fixed := make([]Operation, len(ops))
	for i, op := range ops {
		if op.Op == OperationReplace {
			if key, ok := RootKey(op.Path); ok {
				if _, exists := doc[key]; !exists {
					op.Op = OperationAdd
				}
			}
		}
		fixed[i] = op
	}
	return fixed
}

func decode(raw []byte) (types.Values, error) {
	out := types.Values{}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}
	return out, nil
}

func nonNil(doc types.Values) types.Values {
	if doc == nil {
		return types.Values{}
	}
	return doc
}
