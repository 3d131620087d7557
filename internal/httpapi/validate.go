package httpapi

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
)

// FieldError is one validation failure, addressed by field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidatePayload checks a JSON document against an object definition:
// required fields present, scalars of the declared type, strings within
// their max length, enum values inside the closed set, arrays and embedded
// objects validated element-wise. The id field is exempt from the required
// check since the store assigns and manages it.
func ValidatePayload(resolver map[string]*spec.ObjectDef, obj *spec.ObjectDef, data map[string]any) []FieldError {
	return validateObject(resolver, obj, data, "")
}

func validateObject(resolver map[string]*spec.ObjectDef, obj *spec.ObjectDef, data map[string]any, prefix string) []FieldError {
	var errs []FieldError
	for _, f := range obj.Fields {
		path := prefix + f.Name
		v, present := data[f.Name]
		if !present || v == nil {
			if f.Required && f.Name != "id" {
				errs = append(errs, FieldError{Field: path, Message: "required field is missing"})
			}
			continue
		}
		errs = append(errs, validateValue(resolver, f.Type, v, path)...)
	}
	return errs
}

func validateValue(resolver map[string]*spec.ObjectDef, ft spec.FieldType, v any, path string) []FieldError {
	switch ft.Kind {
	case spec.KindString:
		s, ok := v.(string)
		if !ok {
			return []FieldError{{Field: path, Message: "must be a string"}}
		}
		if ft.MaxLen > 0 && utf8.RuneCountInString(s) > ft.MaxLen {
			return []FieldError{{Field: path, Message: fmt.Sprintf("exceeds maximum length %d", ft.MaxLen)}}
		}
	case spec.KindEnum:
		s, ok := v.(string)
		if !ok {
			return []FieldError{{Field: path, Message: "must be a string"}}
		}
		if ft.Enum != nil && !enumContains(ft.Enum, s) {
			return []FieldError{{Field: path, Message: fmt.Sprintf("%q is not an allowed value", s)}}
		}
	case spec.KindInteger:
		if !isInteger(v) {
			return []FieldError{{Field: path, Message: "must be an integer"}}
		}
	case spec.KindNumber:
		if !isNumber(v) {
			return []FieldError{{Field: path, Message: "must be a number"}}
		}
	case spec.KindBoolean:
		if _, ok := v.(bool); !ok {
			return []FieldError{{Field: path, Message: "must be a boolean"}}
		}
	case spec.KindDate:
		if !isTimeString(v, "2006-01-02") {
			return []FieldError{{Field: path, Message: "must be a YYYY-MM-DD date"}}
		}
	case spec.KindDateTime:
		if !isTimeString(v, time.RFC3339) {
			return []FieldError{{Field: path, Message: "must be an RFC 3339 timestamp"}}
		}
	case spec.KindArray:
		items, ok := v.([]any)
		if !ok {
			return []FieldError{{Field: path, Message: "must be an array"}}
		}
		var errs []FieldError
		for i, item := range items {
			errs = append(errs, validateValue(resolver, *ft.Elem, item, fmt.Sprintf("%s[%d]", path, i))...)
		}
		return errs
	case spec.KindObjectRef:
		m, ok := v.(map[string]any)
		if !ok {
			return []FieldError{{Field: path, Message: "must be an object"}}
		}
		if nested, known := resolver[ft.Ref]; known {
			return validateObject(resolver, nested, m, path+".")
		}
	case spec.KindOpaque:
		// retained as-is, nothing to check
	}
	return nil
}

func enumContains(e *spec.EnumDef, s string) bool {
	for _, v := range e.Values {
		if v.Label == s {
			return true
		}
	}
	return false
}

// JSON numbers arrive as float64 from gin binding and as int64 from ojg
// parsing; accept both shapes.
func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64:
		return true
	}
	return false
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int64:
		return true
	case float64:
		return n == float64(int64(n))
	}
	return false
}

func isTimeString(v any, layout string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := time.Parse(layout, s)
	return err == nil
}
