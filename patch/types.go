// Package patch applies and generates RFC6902 JSON Patch operations against
// form data.
package patch

import "strings"

const (
	OperationAdd     = "add"
	OperationRemove  = "remove"
	OperationReplace = "replace"
)

type Operation struct {
	Op    string `json:"op" jsonschema:"enum=add,enum=remove,enum=replace"`
	Path  string `json:"path" jsonschema:"description=JSON Pointer of the field, e.g. /email"`
	Value any    `json:"value,omitempty"`
}

// EscapePointer escapes a single JSON Pointer reference token.
func EscapePointer(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

func unescapePointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// Pointer returns the JSON Pointer of a top level key.
func Pointer(key string) string {
	return "/" + EscapePointer(key)
}

// RootKey returns the unescaped first reference token of path, which is the
// item key a form operation targets.
func RootKey(path string) (string, bool) {
	if !strings.HasPrefix(path, "/") {
		return "", false
	}
	token, _, _ := strings.Cut(path[1:], "/")
	return unescapePointer(token), true
}
