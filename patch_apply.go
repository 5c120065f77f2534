package formstate

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/tbxark/formstate/patch"
	"github.com/tbxark/formstate/types"
)

// AllowedPaths returns the JSON Pointers of the form items.
func (f *Form) AllowedPaths() []string {
	paths := make([]string, 0, len(f.items))
	for _, it := range f.items {
		paths = append(paths, patch.Pointer(it.Key))
	}
	return paths
}

// ApplyPatch applies RFC6902 operations to the form data. Only paths under
// item keys are accepted. Changed items go through ItemsChange, so
// formatters, pristine tracking and validate-on-change apply, and a single
// notification is sent. It returns the changed keys in item order.
func (f *Form) ApplyPatch(ops []patch.Operation, opts ...CallOption) ([]string, error) {
	allowed := make(map[string]bool, len(f.items))
	for _, path := range f.AllowedPaths() {
		allowed[path] = true
	}
	if err := patch.Validate(ops, allowed); err != nil {
		return nil, fmt.Errorf("patch validation failed: %w", err)
	}

	before, err := patch.Normalize(f.data)
	if err != nil {
		return nil, err
	}
	after, err := patch.Apply(f.data, ops)
	if err != nil {
		return nil, err
	}

	var keys []string
	changed := types.Values{}
	for _, it := range f.items {
		if !reflect.DeepEqual(before[it.Key], after[it.Key]) {
			changed[it.Key] = after[it.Key]
			keys = append(keys, it.Key)
		}
	}
	f.logger().Debug("Applying patch", "ops", ops, "changed", keys)
	f.ItemsChange(changed, opts...)
	return keys, nil
}

// Changes returns the operations leading from the formatted initial values
// to the current data, limited to item keys.
func (f *Form) Changes() ([]patch.Operation, error) {
	from := make(types.Values, len(f.items))
	to := make(types.Values, len(f.items))
	for _, it := range f.items {
		if v, ok := f.baseline[it.Key]; ok {
			from[it.Key] = v
		}
		to[it.Key] = f.data[it.Key]
	}
	ops, err := patch.Diff(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to diff form data: %w", err)
	}
	if len(ops) > 0 {
		f.logger().Debug("Form changes", slog.Int("ops", len(ops)))
	}
	return ops, nil
}
