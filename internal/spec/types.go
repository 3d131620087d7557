package spec

import "strings"

// TypeKind is the closed set of resolved field types. Anything a type cell
// cannot be classified into stays KindOpaque and is flagged in the report.
type TypeKind uint8

const (
	KindOpaque TypeKind = iota
	KindString
	KindInteger
	KindNumber
	KindBoolean
	KindDate
	KindDateTime
	KindEnum
	KindArray
	KindObjectRef
)

func (k TypeKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindDateTime:
		return "date-time"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindObjectRef:
		return "object"
	default:
		return "opaque"
	}
}

// FieldType is the resolved type of one field. Only the members relevant to
// Kind are set: MaxLen for constrained strings, Enum for enums, Elem for
// arrays, Ref for object references.
type FieldType struct {
	Kind   TypeKind
	MaxLen int
	Enum   *EnumDef
	Elem   *FieldType
	Ref    string
}

// FieldDef is one attribute row of an object table.
type FieldDef struct {
	Name        string
	Description string
	Required    bool
	RawType     string
	Type        FieldType
}

// ObjectDef is a named schema extracted from one specification section.
// Field order follows document order and is never sorted.
type ObjectDef struct {
	Name        string
	Description string
	Fields      []FieldDef
}

// Field returns the field with the given name, if present.
func (o *ObjectDef) Field(name string) (FieldDef, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// HasID reports whether the object declares its own id field. Objects
// without one get a synthetic identifier at emission time, since the store
// always keys entities by id.
func (o *ObjectDef) HasID() bool {
	_, ok := o.Field("id")
	return ok
}

// EnumValue is one (key, label) pair of a closed value set. Description is
// only present for values parsed from a "List:" table.
type EnumValue struct {
	Key         string
	Label       string
	Description string
}

// EnumDef is a closed, ordered set of values a field may take.
type EnumDef struct {
	Name   string
	Values []EnumValue
}

// Labels returns the enum labels in declaration order.
func (e *EnumDef) Labels() []string {
	out := make([]string, len(e.Values))
	for i, v := range e.Values {
		out[i] = v.Label
	}
	return out
}

// enumKey normalizes a value label into a constant-style key.
func enumKey(label string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(label), " ", "_"))
}

// CollectionName maps an object name to its store collection: the
// lower-cased, naively pluralized object name ("Organization" ->
// "organizations").
func CollectionName(objectName string) string {
	return strings.ToLower(objectName) + "s"
}
