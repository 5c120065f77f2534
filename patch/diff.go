package patch

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/tbxark/formstate/types"
	"github.com/wI2L/jsondiff"
)

// Diff returns the operations that turn from into to. Keys present only in
// from are removed. Only add, remove and replace are produced.
func Diff(from, to types.Values) ([]Operation, error) {
	source, err := sonic.Marshal(nonNil(from))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal source: %w", err)
	}
	target, err := sonic.Marshal(nonNil(to))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal target: %w", err)
	}
	p, err := jsondiff.CompareJSON(source, target)
	if err != nil {
		return nil, fmt.Errorf("failed to diff documents: %w", err)
	}
	ops := make([]Operation, 0, len(p))
	for _, op := range p {
		switch op.Type {
		case OperationAdd, OperationReplace:
			ops = append(ops, Operation{Op: op.Type, Path: op.Path, Value: op.Value})
		case OperationRemove:
			ops = append(ops, Operation{Op: op.Type, Path: op.Path})
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperation, op.Type)
		}
	}
	return ops, nil
}
