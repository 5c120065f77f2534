// Package item holds the pure update functions applied to a single form item.
//
// Change, Validate and ClearValidation mutate the item (and the data map
// for Change) in place. The owning form is the only intended caller.
package item

import (
	"strings"

	"github.com/tbxark/formstate/types"
)

// LabelPlaceholder is replaced by the item label in the empty error template.
const LabelPlaceholder = "{label}"

// Init builds live items and the data object from specs, in order.
// initialValues[key] wins over the spec value when present. Formatters see
// the values already resolved for earlier items. specs is not modified.
func Init(specs []types.Spec, initialValues types.Values, settings types.Settings) ([]*types.Item, types.Values) {
	items := make([]*types.Item, 0, len(specs))
	data := make(types.Values, len(specs))
	for _, spec := range specs {
		value, ok := initialValues[spec.Key]
		if !ok {
			value = spec.Value
		}
		ctx := types.Merge(data, settings.Extra)
		if spec.Formatter != nil {
			value = spec.Formatter(value, ctx)
		}
		data[spec.Key] = value

		id := spec.ID
		if id == "" {
			id = spec.Key
		}
		items = append(items, &types.Item{
			Spec:      spec,
			Key:       spec.Key,
			ID:        id,
			Label:     spec.Label,
			Value:     value,
			Required:  resolveRequired(spec, types.Merge(data, settings.Extra)),
			Pristine:  true,
			Valid:     true,
			ErrorText: "",
		})
	}
	return items, data
}

// Change formats value, stores it on the item and in data, and marks the
// item dirty. With validate-on-change in effect the item is validated,
// otherwise only its error text is cleared.
func Change(it *types.Item, value any, data types.Values, settings types.Settings) {
	if it.Spec.Formatter != nil {
		value = it.Spec.Formatter(value, types.Merge(data, settings.Extra))
	}
	it.Value = value
	data[it.Key] = value
	it.Pristine = false

	validateOnChange := settings.ValidateOnChange
	if it.Spec.ValidateOnChange != nil {
		validateOnChange = *it.Spec.ValidateOnChange
	}
	if validateOnChange {
		Validate(it, data, settings)
		return
	}
	it.ErrorText = ""
}

// Validate runs the required check and the validator, records the outcome
// on the item and returns the error text. It never touches Pristine.
func Validate(it *types.Item, data types.Values, settings types.Settings) string {
	ctx := types.Merge(data, settings.Extra)
	var errorText string
	switch {
	case Required(it, ctx) && types.IsEmpty(it.Value):
		errorText = EmptyText(settings.EmptyErrorTemplate, it.Label)
	case it.Spec.Validator != nil:
		errorText = it.Spec.Validator(it.Value, ctx)
	}
	it.ErrorText = errorText
	it.Valid = errorText == ""
	return errorText
}

// Required reports whether it is required right now. CalcRequired is
// evaluated against ctx; otherwise the flag resolved at init is used.
func Required(it *types.Item, ctx types.Values) bool {
	if it.Spec.CalcRequired != nil {
		return it.Spec.CalcRequired(ctx)
	}
	return it.Required
}

// ClearValidation marks the item valid. Value and Pristine are kept.
func ClearValidation(it *types.Item) {
	it.Valid = true
	it.ErrorText = ""
}

// EmptyText renders template with every {label} replaced by label.
func EmptyText(template, label string) string {
	return strings.ReplaceAll(template, LabelPlaceholder, label)
}

func resolveRequired(spec types.Spec, ctx types.Values) bool {
	if spec.CalcRequired != nil {
		return spec.CalcRequired(ctx)
	}
	if spec.Required != nil {
		return *spec.Required
	}
	return true
}
