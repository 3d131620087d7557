package spec

import "fmt"

// Document is the parse result of one specification file: objects and named
// enums in document order, plus every problem the run accumulated.
type Document struct {
	Objects []ObjectDef
	Enums   []EnumDef
	Report  *Report
}

// Object returns the object with the given name, if present.
func (d *Document) Object(name string) (*ObjectDef, bool) {
	for i := range d.Objects {
		if d.Objects[i].Name == name {
			return &d.Objects[i], true
		}
	}
	return nil, false
}

// Parse runs the full pipeline over one markdown document: section
// extraction, row parsing, field interpretation, then a second pass that
// resolves object references against the completed name set (objects may
// reference others defined later in the document).
func Parse(content string) *Document {
	doc := &Document{Report: &Report{}}

	for _, sec := range ExtractSections(content) {
		switch sec.Kind {
		case SectionObject:
			obj, ok := buildObject(sec, doc.Report)
			if ok {
				doc.Objects = append(doc.Objects, obj)
			}
		case SectionList:
			enum, ok := buildEnum(sec, doc.Report)
			if ok {
				doc.Enums = append(doc.Enums, enum)
			}
		}
	}

	resolveReferences(doc)
	return doc
}

// buildObject aggregates one object section into an ObjectDef. Duplicate
// field names resolve last-wins with a recorded warning. Sections with no
// usable table produce no object and bump the empty-section count.
func buildObject(sec Section, report *Report) (ObjectDef, bool) {
	obj := ObjectDef{Name: sec.Name, Description: sec.Description}

	if sec.TableBlock == "" {
		report.EmptySections++
		report.Warn(&StructureError{Object: sec.Name, Line: sec.Line, Message: "no table found before next heading"})
		return obj, false
	}

	_, body, errs := ParseTable(sec.TableBlock)
	for _, err := range errs {
		serr := err.(*StructureError)
		serr.Object = sec.Name
		report.Warn(serr)
	}

	index := make(map[string]int)
	for _, row := range body {
		if len(row.Cells) < 3 {
			report.Warn(&StructureError{Object: sec.Name, Line: row.Line, Message: "object row needs attribute, description and type cells"})
			continue
		}
		attr, desc, typ := row.Cells[0], row.Cells[1], row.Cells[2]
		if attr == "" || typ == "" {
			continue
		}

		field, err := InterpretField(attr, desc, typ)
		if err != nil {
			cerr := err.(*ClassificationError)
			cerr.Object = sec.Name
			report.Err(cerr)
		}

		if at, dup := index[field.Name]; dup {
			report.Warn(&StructureError{
				Object:  sec.Name,
				Line:    row.Line,
				Message: fmt.Sprintf("duplicate attribute %q, later row wins", field.Name),
			})
			obj.Fields[at] = field
			continue
		}
		index[field.Name] = len(obj.Fields)
		obj.Fields = append(obj.Fields, field)
	}

	if len(obj.Fields) == 0 {
		report.EmptySections++
		report.Warn(&StructureError{Object: sec.Name, Line: sec.Line, Message: "table yielded no fields"})
		return obj, false
	}
	return obj, true
}

// buildEnum parses a 2-column Value | Description list table into a named
// EnumDef. Spaces are dropped from the section name ("Audit Status" ->
// "AuditStatus") so object type cells can reference it as a single word.
func buildEnum(sec Section, report *Report) (EnumDef, bool) {
	def := EnumDef{Name: cleanEnumName(sec.Name)}

	if sec.TableBlock == "" {
		report.Warn(&StructureError{Object: sec.Name, Line: sec.Line, Message: "list section has no table"})
		return def, false
	}

	_, body, errs := ParseTable(sec.TableBlock)
	for _, err := range errs {
		serr := err.(*StructureError)
		serr.Object = sec.Name
		report.Warn(serr)
	}

	for _, row := range body {
		if len(row.Cells) < 2 || row.Cells[0] == "" {
			continue
		}
		label := row.Cells[0]
		def.Values = append(def.Values, EnumValue{
			Key:         enumKey(label),
			Label:       label,
			Description: row.Cells[1],
		})
	}

	if len(def.Values) == 0 {
		report.Warn(&StructureError{Object: sec.Name, Line: sec.Line, Message: "list table yielded no values"})
		return def, false
	}
	return def, true
}

func cleanEnumName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r != ' ' {
			out = append(out, r)
		}
	}
	return string(out)
}

// resolveReferences is the second pass: every KindObjectRef candidate is
// checked against the completed object name set, then against the named
// enums, then against the primitive keyword table for capitalized cells like
// "Boolean". Unresolved references degrade that field to opaque string and
// are recorded; the rest of the object is unaffected.
func resolveReferences(doc *Document) {
	objects := make(map[string]bool, len(doc.Objects))
	for _, o := range doc.Objects {
		objects[o.Name] = true
	}
	enums := make(map[string]*EnumDef, len(doc.Enums))
	for i := range doc.Enums {
		enums[doc.Enums[i].Name] = &doc.Enums[i]
	}

	for oi := range doc.Objects {
		obj := &doc.Objects[oi]
		for fi := range obj.Fields {
			f := &obj.Fields[fi]
			resolveFieldType(&f.Type, obj.Name, f.Name, objects, enums, doc.Report)
		}
	}
}

func resolveFieldType(ft *FieldType, objName, fieldName string, objects map[string]bool, enums map[string]*EnumDef, report *Report) {
	switch ft.Kind {
	case KindArray:
		resolveFieldType(ft.Elem, objName, fieldName, objects, enums, report)
	case KindObjectRef:
		if objects[ft.Ref] {
			return
		}
		if e, ok := enums[ft.Ref]; ok {
			*ft = FieldType{Kind: KindEnum, Enum: e}
			return
		}
		if k, ok := primitiveKind(ft.Ref); ok {
			*ft = FieldType{Kind: k}
			return
		}
		report.Err(&ReferenceError{Object: objName, Field: fieldName, Ref: ft.Ref})
		*ft = FieldType{Kind: KindOpaque}
	}
}
