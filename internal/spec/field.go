package spec

import (
	"regexp"
	"strconv"
	"strings"
)

// requiredMarker is the suffix convention marking a mandatory attribute.
const requiredMarker = "*"

var (
	enumInlineRe = regexp.MustCompile(`(?i)^enum\s*\((.+)\)$`)
	stringLenRe  = regexp.MustCompile(`(?i)^string\s*\((\d+)\)$`)
	objectRefRe  = regexp.MustCompile(`^([A-Z]\w*)(?:\s+object)?$`)
	arrayElemRe  = regexp.MustCompile(`^(.*?)\s*\[\]$`)
)

// primitiveKeywords maps type-cell keywords to kinds, checked by substring
// match in this order. Longer keywords come first so "date-time" wins over
// "date" and "integer" over "int".
var primitiveKeywords = []struct {
	keyword string
	kind    TypeKind
}{
	{"date-time", KindDateTime},
	{"datetime", KindDateTime},
	{"timestamp", KindDateTime},
	{"date", KindDate},
	{"string", KindString},
	{"integer", KindInteger},
	{"int", KindInteger},
	{"number", KindNumber},
	{"float", KindNumber},
	{"double", KindNumber},
	{"decimal", KindNumber},
	{"boolean", KindBoolean},
	{"bool", KindBoolean},
	{"uuid", KindString},
}

// InterpretField turns one (attribute, description, type) triple into a
// FieldDef. A non-nil error is always a *ClassificationError: the field is
// still usable, retained with an opaque string type.
func InterpretField(attr, desc, rawType string) (FieldDef, error) {
	name, required := stripRequiredMarker(attr)
	if strings.Contains(strings.ToLower(desc), "required") {
		required = true
	}

	f := FieldDef{
		Name:        name,
		Description: desc,
		Required:    required,
		RawType:     rawType,
	}

	ft, err := classifyType(rawType)
	f.Type = ft
	if err != nil {
		cerr := err.(*ClassificationError)
		cerr.Field = name
		return f, cerr
	}
	return f, nil
}

// stripRequiredMarker detects and removes the trailing required marker. Only
// the marker characters are stripped; the rest of the name is untouched.
func stripRequiredMarker(attr string) (name string, required bool) {
	attr = strings.TrimSpace(attr)
	if strings.HasSuffix(attr, requiredMarker) {
		return strings.TrimSpace(strings.TrimRight(attr, requiredMarker)), true
	}
	return attr, false
}

// classifyType resolves a raw type cell into a FieldType. Checks run in a
// fixed order: inline enum, array, constrained string, object reference
// candidate, primitive keyword. Object references stay unresolved here; a
// second pass checks them against the full object name set once every
// section has been parsed, so forward references work.
func classifyType(raw string) (FieldType, error) {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)

	if m := enumInlineRe.FindStringSubmatch(raw); m != nil {
		return FieldType{Kind: KindEnum, Enum: parseInlineEnum(m[1])}, nil
	}

	if strings.Contains(lower, "array") || arrayElemRe.MatchString(raw) {
		elemRaw := arrayElementText(raw)
		elem, err := classifyType(elemRaw)
		ft := FieldType{Kind: KindArray, Elem: &elem}
		if err != nil {
			return ft, &ClassificationError{RawType: raw}
		}
		return ft, nil
	}

	if m := stringLenRe.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[1])
		return FieldType{Kind: KindString, MaxLen: n}, nil
	}

	if m := objectRefRe.FindStringSubmatch(raw); m != nil {
		return FieldType{Kind: KindObjectRef, Ref: m[1]}, nil
	}

	for _, p := range primitiveKeywords {
		if strings.Contains(lower, p.keyword) {
			return FieldType{Kind: p.kind}, nil
		}
	}

	return FieldType{Kind: KindOpaque}, &ClassificationError{RawType: raw}
}

// primitiveKind matches a bare type word against the keyword table, exact
// match only. Capitalized cells like "Boolean" classify as reference
// candidates first; when pass 2 resolves them to no object or list, this is
// the fallback before the reference is reported unknown. Exact equality so
// real object names containing a keyword ("Intent") never match.
func primitiveKind(word string) (TypeKind, bool) {
	lower := strings.ToLower(word)
	for _, p := range primitiveKeywords {
		if lower == p.keyword {
			return p.kind, true
		}
	}
	return KindOpaque, false
}

// arrayElementText strips array syntax ("Foo[] array", "array of strings",
// "string array") down to the element type text.
func arrayElementText(raw string) string {
	if m := arrayElemRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}

	// Remove the word "array" and a leading "of" from what remains.
	wordRe := regexp.MustCompile(`(?i)\barray\b`)
	rest := strings.TrimSpace(wordRe.ReplaceAllString(raw, ""))
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "of "))
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "of\t"))

	// "Contact[] array" leaves "Contact[]" behind.
	if m := arrayElemRe.FindStringSubmatch(rest); m != nil {
		rest = strings.TrimSpace(m[1])
	}

	// "array of strings" names the element in the plural.
	lower := strings.ToLower(rest)
	for _, plural := range []string{"strings", "integers", "ints", "numbers", "booleans", "objects"} {
		if lower == plural {
			return strings.TrimSuffix(rest, "s")
		}
	}
	return rest
}

// parseInlineEnum parses the comma-separated body of an "enum (...)" cell.
// Keys are the labels upper-cased with spaces collapsed to underscores.
func parseInlineEnum(body string) *EnumDef {
	parts := strings.Split(body, ",")
	def := &EnumDef{}
	for _, p := range parts {
		label := strings.TrimSpace(p)
		if label == "" {
			continue
		}
		def.Values = append(def.Values, EnumValue{Key: enumKey(label), Label: label})
	}
	return def
}
