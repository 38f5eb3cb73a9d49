package llmtool

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate checks a decoded JSON value (as produced by a json.Decoder with
// UseNumber) against s. The first mismatch is returned as *SchemaError.
func Validate(s *Schema, v any) error {
	return validateAt(s, v, "")
}

func validateAt(s *Schema, v any, path string) error {
	if s == nil {
		return nil
	}
	switch s.Type {
	case "object":
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, "object", v)
		}
		for _, name := range s.Required {
			val, ok := obj[name]
			if !ok || val == nil {
				return &SchemaError{Path: join(path, name), Reason: "field required"}
			}
		}
		for _, name := range s.propertyNames() {
			val, ok := obj[name]
			if !ok || (val == nil && !s.isRequired(name)) {
				continue
			}
			if err := validateAt(s.Properties[name], val, join(path, name)); err != nil {
				return err
			}
		}
	case "array":
		arr, ok := v.([]any)
		if !ok {
			return mismatch(path, "array", v)
		}
		for i, item := range arr {
			if err := validateAt(s.Items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case "string":
		str, ok := v.(string)
		if !ok {
			return mismatch(path, "string", v)
		}
		if s.MinLength > 0 && utf8.RuneCountInString(strings.TrimSpace(str)) < s.MinLength {
			return &SchemaError{Path: path, Reason: fmt.Sprintf("must be at least %d characters", s.MinLength)}
		}
	case "integer":
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(path, "integer", v)
		}
		if _, err := n.Int64(); err != nil {
			return mismatch(path, "integer", v)
		}
	case "number":
		if _, ok := v.(json.Number); !ok {
			return mismatch(path, "number", v)
		}
	case "boolean":
		if _, ok := v.(bool); !ok {
			return mismatch(path, "boolean", v)
		}
	}
	return nil
}

func mismatch(path, want string, got any) *SchemaError {
	return &SchemaError{Path: path, Reason: fmt.Sprintf("expected %s, got %s", want, jsonKind(got))}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
