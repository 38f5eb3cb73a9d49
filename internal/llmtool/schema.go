package llmtool

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Schema is a JSON-schema-like description of an expected reply. It is sent
// to the model verbatim and used to validate what comes back.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	MinLength   int                `json:"minLength,omitempty"`

	order []string
}

// SchemaFromStruct derives a schema from struct tags. Fields are required
// unless tagged optional:
//
//	Explanation string `json:"explanation" prompt_desc:"..." prompt:"required,min=10"`
//	Internal    string `json:"internal" prompt:"-"`
func SchemaFromStruct(v any) (*Schema, error) {
	if v == nil {
		return nil, fmt.Errorf("llmtool: struct is nil")
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("llmtool: expected struct, got %s", t.Kind())
	}
	return schemaOf(t), nil
}

// MustSchemaFromStruct panics on error.
func MustSchemaFromStruct(v any) *Schema {
	s, err := SchemaFromStruct(v)
	if err != nil {
		panic(err)
	}
	return s
}

func schemaOf(t reflect.Type) *Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: schemaOf(t.Elem())}
	case reflect.Struct:
		return structSchema(t)
	default:
		return &Schema{Type: "object"}
	}
}

func structSchema(t reflect.Type) *Schema {
	s := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		opts := parsePromptTag(f.Tag.Get("prompt"))
		name := jsonName(f)
		if opts.skip || name == "" {
			continue
		}
		prop := schemaOf(f.Type)
		prop.Description = strings.TrimSpace(f.Tag.Get("prompt_desc"))
		prop.MinLength = opts.min
		if !opts.optional {
			s.Required = append(s.Required, name)
		}
		s.Properties[name] = prop
		s.order = append(s.order, name)
	}
	return s
}

// propertyNames returns property names in field order, or sorted for
// hand-built schemas.
func (s *Schema) propertyNames() []string {
	if len(s.order) == len(s.Properties) {
		return s.order
	}
	names := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (s *Schema) isRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

type promptTag struct {
	skip     bool
	optional bool
	min      int
}

func parsePromptTag(tag string) promptTag {
	var out promptTag
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "-" || part == "omit":
			out.skip = true
		case part == "optional":
			out.optional = true
		case part == "required":
			out.optional = false
		case strings.HasPrefix(part, "min="):
			if n, err := strconv.Atoi(part[len("min="):]); err == nil && n > 0 {
				out.min = n
			}
		}
	}
	return out
}

// jsonName follows encoding/json naming, falling back to snake_case when
// the field has no json tag.
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name = strings.TrimSpace(name); name {
	case "-":
		return ""
	case "":
		return snakeCase(f.Name)
	default:
		return name
	}
}

func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
