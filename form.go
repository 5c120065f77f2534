// Package formstate keeps the state of a form: item values, pristine and
// validity flags, error texts and the derived data object.
//
// A Form is not safe for concurrent use. Items and Data return the live
// structures; callers must not treat them as snapshots (see Snapshot).
package formstate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tbxark/formstate/item"
	"github.com/tbxark/formstate/types"
)

type Form struct {
	items []*types.Item
	data  types.Values
	// baseline holds the formatted initial values, see Changes.
	baseline types.Values
	// errorText overrides the error text derived from the items.
	errorText string
	opts      settings
	notifying bool
}

// New 根据表单项和配置创建表单
func New(specs []types.Spec, options Options) *Form {
	f := &Form{opts: defaultSettings()}
	f.opts.merge(options)
	f.items, f.data = item.Init(specs, f.opts.initialValues, f.opts.items())
	// reset restores the formatted values, not the raw input
	f.opts.merge(Options{InitialValues: f.data})
	f.baseline = f.data.Clone()
	return f
}

func (f *Form) Items() []*types.Item {
	return f.items
}

func (f *Form) Data() types.Values {
	return f.data
}

// Options returns the resolved options. Maps are copies.
func (f *Form) Options() Options {
	return f.opts.options()
}

func (f *Form) Pristine() bool {
	for _, it := range f.items {
		if !it.Pristine {
			return false
		}
	}
	return true
}

func (f *Form) Valid() bool {
	for _, it := range f.items {
		if !it.Valid {
			return false
		}
	}
	return true
}

// ErrorText returns the override set by SetErrorText, else the error text of
// the first item that has one.
func (f *Form) ErrorText() string {
	if f.errorText != "" {
		return f.errorText
	}
	for _, it := range f.items {
		if it.ErrorText != "" {
			return it.ErrorText
		}
	}
	return ""
}

// SetErrorText sets the form level error override. Changing an item value
// or submitting clears it.
func (f *Form) SetErrorText(text string) {
	f.errorText = text
}

func (f *Form) GetItemByKey(key string) (*types.Item, bool) {
	for _, it := range f.items {
		if it.Key == key {
			return it, true
		}
	}
	return nil, false
}

func (f *Form) GetItemByID(id string) (*types.Item, bool) {
	for _, it := range f.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// Required reports whether it is required against the current data.
func (f *Form) Required(it *types.Item) bool {
	return item.Required(it, types.Merge(f.data, f.opts.extra))
}

// ItemChange 更新 key 对应表单项的值
func (f *Form) ItemChange(key string, value any, opts ...CallOption) error {
	it, err := f.lookup(key)
	if err != nil {
		return err
	}
	item.Change(it, value, f.data, f.opts.items())
	f.data[it.Key] = it.Value
	f.errorText = ""
	f.notify(newCallOptions(opts))
	return nil
}

// ItemsChange 批量更新表单项的值. Keys without an item are ignored and the
// update is notified once.
func (f *Form) ItemsChange(values types.Values, opts ...CallOption) {
	s := f.opts.items()
	for _, it := range f.items {
		if value, ok := values[it.Key]; ok {
			item.Change(it, value, f.data, s)
		}
		f.data[it.Key] = it.Value
	}
	f.errorText = ""
	f.notify(newCallOptions(opts))
}

// ItemValidate 校验 key 对应的表单项并返回错误信息
func (f *Form) ItemValidate(key string, opts ...CallOption) (string, error) {
	it, err := f.lookup(key)
	if err != nil {
		return MissingItemText, err
	}
	o := newCallOptions(opts)
	if o.forceDirty {
		it.Pristine = false
	}
	errorText := item.Validate(it, f.data, f.opts.items())
	f.notify(o)
	return errorText, nil
}

// UpdateValidateResult records validation results computed elsewhere, e.g.
// by a server round trip. An empty text marks the item valid.
func (f *Form) UpdateValidateResult(results map[string]string, opts ...CallOption) {
	for _, it := range f.items {
		errorText, ok := results[it.Key]
		if !ok {
			continue
		}
		it.ErrorText = errorText
		it.Valid = errorText == ""
	}
	f.notify(newCallOptions(opts))
}

// FormValidate validates the items in order and returns the first error
// text. Unless all items are requested it stops at the first failure and
// later items keep their previous state.
func (f *Form) FormValidate(opts ...CallOption) string {
	o := newCallOptions(opts)
	validateAll := f.opts.validateAll
	if o.validateAll != nil {
		validateAll = *o.validateAll
	}

	s := f.opts.items()
	var errorText string
	for _, it := range f.items {
		if !validateAll && errorText != "" {
			break
		}
		text := item.Validate(it, f.data, s)
		if errorText == "" {
			errorText = text
		}
	}
	f.notify(o)
	return errorText
}

// Submit validates the form and hands the data to the submit handler. When
// validation fails the handler is not called and a *ValidationError is
// returned. Handler errors are returned unchanged. The update notification
// fires once after either outcome.
func (f *Form) Submit(ctx context.Context, opts ...CallOption) (any, error) {
	defer f.notify(newCallOptions(opts))

	f.errorText = ""
	if errorText := f.FormValidate(ValidateAll(f.opts.validateAll), Silent()); errorText != "" {
		return nil, &ValidationError{Text: errorText}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.opts.onSubmit(ctx, f.data)
}

// Reset 重置表单. values are merged into the initial values before every
// item is rebuilt from its spec; nil keeps the current initial values.
// Use ItemsChange to set values without moving the baseline.
func (f *Form) Reset(values types.Values, opts ...CallOption) {
	f.opts.merge(Options{InitialValues: values})
	specs := make([]types.Spec, 0, len(f.items))
	for _, it := range f.items {
		specs = append(specs, it.Spec)
	}
	f.items, f.data = item.Init(specs, f.opts.initialValues, f.opts.items())
	f.baseline = f.data.Clone()
	f.errorText = ""
	f.notify(newCallOptions(opts))
}

// ResetItem resets key to its initial value.
func (f *Form) ResetItem(key string, opts ...CallOption) error {
	return f.ResetItemTo(key, f.opts.initialValues[key], opts...)
}

// ResetItemTo 用 value 重置表单项, value also becomes the item's initial value.
func (f *Form) ResetItemTo(key string, value any, opts ...CallOption) error {
	it, err := f.lookup(key)
	if err != nil {
		return err
	}
	it.Pristine = true
	formatted := value
	if it.Spec.Formatter != nil {
		formatted = it.Spec.Formatter(value, types.Merge(f.data, f.opts.extra))
	}
	it.Value = formatted
	f.data[it.Key] = formatted
	f.opts.initialValues[it.Key] = value
	f.baseline[it.Key] = formatted
	item.ClearValidation(it)
	f.notify(newCallOptions(opts))
	return nil
}

// ClearValidateResult clears the validation state of every item.
func (f *Form) ClearValidateResult(opts ...CallOption) {
	for _, it := range f.items {
		item.ClearValidation(it)
	}
	f.notify(newCallOptions(opts))
}

func (f *Form) ClearItemValidateResult(key string, opts ...CallOption) error {
	it, err := f.lookup(key)
	if err != nil {
		return err
	}
	item.ClearValidation(it)
	f.notify(newCallOptions(opts))
	return nil
}

// UpdateOptions merges options into the current ones.
func (f *Form) UpdateOptions(options Options) {
	f.opts.merge(options)
}

func (f *Form) lookup(key string) (*types.Item, error) {
	it, ok := f.GetItemByKey(key)
	if !ok {
		f.logger().Error("form: item not found", "key", key)
		return nil, fmt.Errorf("key %q: %w", key, ErrItemNotFound)
	}
	return it, nil
}

func (f *Form) notify(o callOptions) {
	if o.silent || f.opts.onUpdate == nil {
		return
	}
	if f.notifying {
		f.logger().Error("form: re-entrant update notification skipped")
		return
	}
	f.notifying = true
	defer func() { f.notifying = false }()
	f.opts.onUpdate()
}

func (f *Form) logger() *slog.Logger {
	if f.opts.logger != nil {
		return f.opts.logger
	}
	return slog.Default()
}
