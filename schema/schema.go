// Package schema describes form items as a JSON Schema object.
package schema

import (
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/tbxark/formstate/item"
	"github.com/tbxark/formstate/types"
)

// FromItems returns an object schema with one property per item, in item
// order. Labels become titles and required items are listed in Required;
// CalcRequired is evaluated against ctx.
// Property types are inferred from the current values; empty values leave
// the type open.
func FromItems(title string, items []*types.Item, ctx types.Values) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Title:      title,
		Properties: jsonschema.NewProperties(),
	}
	for _, it := range items {
		prop := &jsonschema.Schema{
			Title: it.Label,
			Type:  typeOf(it.Value),
		}
		if desc, ok := it.Spec.Extra["description"].(string); ok {
			prop.Description = desc
		}
		s.Properties.Set(it.Key, prop)
		if item.Required(it, ctx) {
			s.Required = append(s.Required, it.Key)
		}
	}
	return s
}

func typeOf(value any) string {
	if types.IsEmpty(value) {
		return ""
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return ""
	}
}
