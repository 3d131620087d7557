package emit

import (
	"fmt"
	"strings"

	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
)

// Models renders one Go source file declaring a struct per object plus
// constant blocks for every closed value set. Required fields map to value
// types with a required binding; optional scalars become pointers with no
// default; nested objects embed by value.
func Models(doc *spec.Document, pkg string) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("// Code generated by specgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&sb, "// Package %s holds data models generated from specification tables.\n", pkg)
	fmt.Fprintf(&sb, "package %s\n\n", pkg)

	if docNeedsTime(doc) {
		sb.WriteString("import \"time\"\n\n")
	}

	for _, e := range doc.Enums {
		writeEnumBlock(&sb, e.Name, &e, fmt.Sprintf("%s values from the specification list table.", e.Name))
	}

	for _, obj := range doc.Objects {
		writeObjectEnums(&sb, &obj)
		writeStruct(&sb, &obj)
	}

	return Format([]byte(sb.String()), pkg+"/models.go")
}

func writeStruct(sb *strings.Builder, obj *spec.ObjectDef) {
	if obj.Description != "" {
		fmt.Fprintf(sb, "// %s: %s\n", obj.Name, obj.Description)
	} else {
		fmt.Fprintf(sb, "// %s is generated from its specification table.\n", obj.Name)
	}
	fmt.Fprintf(sb, "type %s struct {\n", ExportName(obj.Name))

	if !obj.HasID() {
		sb.WriteString("\t// ID is assigned by the store; the source table declares no id attribute.\n")
		sb.WriteString("\tID string `json:\"id\"`\n")
	}

	for _, f := range obj.Fields {
		if f.Description != "" {
			fmt.Fprintf(sb, "\t// %s\n", f.Description)
		}
		fmt.Fprintf(sb, "\t%s %s %s\n", ExportName(f.Name), goType(f.Type, f.Required), fieldTag(f))
	}
	sb.WriteString("}\n\n")
}

// writeObjectEnums emits a constant block for every inline enum field of the
// object. Named list enums are emitted once at file level instead.
func writeObjectEnums(sb *strings.Builder, obj *spec.ObjectDef) {
	for _, f := range obj.Fields {
		ft := f.Type
		if ft.Kind == spec.KindArray {
			ft = *ft.Elem
		}
		if ft.Kind != spec.KindEnum || ft.Enum == nil || ft.Enum.Name != "" {
			continue
		}
		prefix := ExportName(obj.Name) + ExportName(f.Name)
		writeEnumBlock(sb, prefix, ft.Enum, fmt.Sprintf("Allowed values for %s.%s.", obj.Name, f.Name))
	}
}

func writeEnumBlock(sb *strings.Builder, prefix string, e *spec.EnumDef, doc string) {
	fmt.Fprintf(sb, "// %s\n", doc)
	sb.WriteString("const (\n")
	for _, v := range e.Values {
		if v.Description != "" {
			fmt.Fprintf(sb, "\t%s%s = %q // %s\n", prefix, ExportName(v.Label), v.Label, v.Description)
		} else {
			fmt.Fprintf(sb, "\t%s%s = %q\n", prefix, ExportName(v.Label), v.Label)
		}
	}
	sb.WriteString(")\n\n")
}

// goType maps a resolved field type to its Go rendering. Optional scalars
// and embedded objects become pointers so absent and zero values stay
// distinguishable; slices are already nullable.
func goType(ft spec.FieldType, required bool) string {
	var base string
	switch ft.Kind {
	case spec.KindInteger:
		base = "int"
	case spec.KindNumber:
		base = "float64"
	case spec.KindBoolean:
		base = "bool"
	case spec.KindDate, spec.KindDateTime:
		base = "time.Time"
	case spec.KindArray:
		return "[]" + goType(*ft.Elem, true)
	case spec.KindObjectRef:
		base = ExportName(ft.Ref)
	default: // string, enum, opaque
		base = "string"
	}
	if !required {
		return "*" + base
	}
	return base
}

// fieldTag renders the json and gin binding tags for a field. The binding
// tag carries requiredness, string max length and closed enum sets where the
// labels are single words. The id field never binds required: the store
// assigns it on create, so an id-less payload must pass binding.
func fieldTag(f spec.FieldDef) string {
	var binds []string
	if f.Required && f.Name != "id" {
		binds = append(binds, "required")
	} else {
		binds = append(binds, "omitempty")
	}
	if f.Type.Kind == spec.KindString && f.Type.MaxLen > 0 {
		binds = append(binds, fmt.Sprintf("max=%d", f.Type.MaxLen))
	}
	if f.Type.Kind == spec.KindEnum && f.Type.Enum != nil {
		if oneof, ok := oneofValues(f.Type.Enum); ok {
			binds = append(binds, "oneof="+oneof)
		}
	}
	if len(binds) == 1 && binds[0] == "omitempty" {
		return fmt.Sprintf("`json:%q`", f.Name)
	}
	return fmt.Sprintf("`json:%q binding:%q`", f.Name, strings.Join(binds, ","))
}

// oneofValues joins enum labels for a oneof binding. Labels containing
// spaces cannot be expressed in a oneof list and disable the binding.
func oneofValues(e *spec.EnumDef) (string, bool) {
	labels := e.Labels()
	for _, l := range labels {
		if strings.ContainsAny(l, " '\"") {
			return "", false
		}
	}
	return strings.Join(labels, " "), true
}

func docNeedsTime(doc *spec.Document) bool {
	for _, obj := range doc.Objects {
		for _, f := range obj.Fields {
			ft := f.Type
			if ft.Kind == spec.KindArray {
				ft = *ft.Elem
			}
			if ft.Kind == spec.KindDate || ft.Kind == spec.KindDateTime {
				return true
			}
		}
	}
	return false
}
