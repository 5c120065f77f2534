package types

import (
	"maps"
	"reflect"
)

// Merge returns a new map holding data overlaid with extra.
func Merge(data, extra Values) Values {
	out := make(Values, len(data)+len(extra))
	maps.Copy(out, data)
	maps.Copy(out, extra)
	return out
}

// Clone returns a shallow copy of v. A nil map clones to an empty one.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	maps.Copy(out, v)
	return out
}

// IsEmpty reports whether value counts as "not provided": nil, the empty
// string, or a nil pointer, map, slice or interface. 0 and false are values.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
