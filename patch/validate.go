package patch

import (
	"errors"
	"fmt"
)

var (
	ErrPathNotAllowed       = errors.New("path is not allowed")
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// Validate checks every operation against allowedPaths. A path is allowed
// when it, or its first segment, is in the set. An empty set allows all
// paths.
func Validate(ops []Operation, allowedPaths map[string]bool) error {
	for i, op := range ops {
		switch op.Op {
		case OperationAdd, OperationRemove, OperationReplace:
		default:
			return fmt.Errorf("operation %d: %q: %w", i, op.Op, ErrUnsupportedOperation)
		}
		if err := validatePathAllowed(op.Path, allowedPaths); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
	}
	return nil
}

func validatePathAllowed(path string, allowedPaths map[string]bool) error {
	if len(allowedPaths) == 0 {
		return nil
	}
	if allowedPaths[path] {
		return nil
	}
	if key, ok := RootKey(path); ok && allowedPaths[Pointer(key)] {
		return nil
	}
	return fmt.Errorf("path %q: %w", path, ErrPathNotAllowed)
}
