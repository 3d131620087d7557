package verify

import (
	"reflect"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ModelField is one struct field recovered from emitted model source.
type ModelField struct {
	GoName   string
	JSONName string
	GoType   string
	Required bool
	MaxLen   int
}

// ModelDecl is one struct declaration recovered from emitted model source.
// Field order matches declaration order.
type ModelDecl struct {
	Name   string
	Fields []ModelField
}

// ParseModels re-parses an emitted models file and recovers every struct
// declaration with its field names, json names, requiredness and max-length
// constraints. This is the model-level round trip used by the verification
// tests: emit then ParseModels must agree with the source objects.
func ParseModels(src []byte) ([]ModelDecl, error) {
	tree, err := parseGo(src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var decls []ModelDecl
	walk(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() != "type_spec" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		typeNode := n.ChildByFieldName("type")
		if nameNode == nil || typeNode == nil || typeNode.Type() != "struct_type" {
			return
		}
		decl := ModelDecl{Name: nameNode.Content(src)}
		walk(typeNode, func(f *sitter.Node) {
			if f.Type() != "field_declaration" {
				return
			}
			field := parseField(f, src)
			if field.GoName != "" {
				decl.Fields = append(decl.Fields, field)
			}
		})
		decls = append(decls, decl)
	})
	return decls, nil
}

func parseField(n *sitter.Node, src []byte) ModelField {
	field := ModelField{}
	if name := n.ChildByFieldName("name"); name != nil {
		field.GoName = name.Content(src)
	}
	if typ := n.ChildByFieldName("type"); typ != nil {
		field.GoType = typ.Content(src)
	}
	if tag := n.ChildByFieldName("tag"); tag != nil {
		raw := strings.Trim(tag.Content(src), "`")
		st := reflect.StructTag(raw)
		if jsonTag, ok := st.Lookup("json"); ok {
			field.JSONName = strings.Split(jsonTag, ",")[0]
		}
		if binding, ok := st.Lookup("binding"); ok {
			for _, part := range strings.Split(binding, ",") {
				if part == "required" {
					field.Required = true
				}
				if rest, found := strings.CutPrefix(part, "max="); found {
					field.MaxLen, _ = strconv.Atoi(rest)
				}
			}
		}
	}
	return field
}

func walk(n *sitter.Node, fn func(*sitter.Node)) {
	fn(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}
