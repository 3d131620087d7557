// Package verify is the post-generation acceptance gate: it re-parses the
// emitted model and route source and checks that every extracted object
// produced exactly one model declaration and one CRUD route group. It is a
// smoke test, not a correctness proof.
package verify

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/pv-udpv/opendirect21-adcom/internal/emit"
	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
)

// MismatchError reports every count/shape check that failed. Fatal to the
// run; callers exit non-zero.
type MismatchError struct {
	Problems []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("verification failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Result summarizes one verification run.
type Result struct {
	ModelCount    int
	RouteGroups   int
	EmptySections int
}

// Verify re-parses the emitted source for one document and asserts the
// emitted shape against the extracted objects.
func Verify(doc *spec.Document, models, routes []byte) (*Result, error) {
	var problems []string

	modelTree, err := parseGo(models)
	if err != nil {
		return nil, err
	}
	defer modelTree.Close()
	if msg, bad := syntaxProblem(modelTree, "models"); bad {
		problems = append(problems, msg)
	}

	routeTree, err := parseGo(routes)
	if err != nil {
		return nil, err
	}
	defer routeTree.Close()
	if msg, bad := syntaxProblem(routeTree, "routes"); bad {
		problems = append(problems, msg)
	}

	res := &Result{EmptySections: doc.Report.EmptySections}

	if len(problems) == 0 {
		structs := structNames(modelTree.RootNode(), models)
		res.ModelCount = len(structs)
		if res.ModelCount != len(doc.Objects) {
			problems = append(problems, fmt.Sprintf("expected %d model declarations, found %d", len(doc.Objects), res.ModelCount))
		}
		for _, obj := range doc.Objects {
			if !structs[emit.ExportName(obj.Name)] {
				problems = append(problems, fmt.Sprintf("no model declaration for object %s", obj.Name))
			}
		}

		groups := routeGroupNames(routeTree.RootNode(), routes)
		res.RouteGroups = len(groups)
		for _, obj := range doc.Objects {
			want := "Register" + emit.ExportName(obj.Name) + "Routes"
			switch groups[want] {
			case 0:
				problems = append(problems, fmt.Sprintf("no route group for object %s", obj.Name))
			case 1:
				// exactly one, as required
			default:
				problems = append(problems, fmt.Sprintf("object %s has %d route groups", obj.Name, groups[want]))
			}
		}
		if res.RouteGroups != len(doc.Objects) {
			problems = append(problems, fmt.Sprintf("expected %d route groups, found %d", len(doc.Objects), res.RouteGroups))
		}
	}

	if len(problems) > 0 {
		return res, &MismatchError{Problems: problems}
	}
	return res, nil
}

func parseGo(src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse emitted source: %w", err)
	}
	if tree.RootNode() == nil {
		return nil, fmt.Errorf("parse emitted source: nil root")
	}
	return tree, nil
}

// syntaxProblem walks the tree for the first ERROR/MISSING node.
func syntaxProblem(tree *sitter.Tree, label string) (string, bool) {
	root := tree.RootNode()
	if !root.HasError() {
		return "", false
	}
	if n := firstError(root); n != nil {
		return fmt.Sprintf("%s: syntax error at line %d", label, n.StartPoint().Row+1), true
	}
	return label + ": emitted source contains syntax errors", true
}

func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			if found := firstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}

// structNames collects the names of all struct type declarations.
func structNames(root *sitter.Node, src []byte) map[string]bool {
	names := make(map[string]bool)
	query := `
		(type_declaration
			(type_spec
				name: (type_identifier) @name
				type: (struct_type)
			)
		)
	`
	forEachCapture(query, root, src, func(text string) {
		names[text] = true
	})
	return names
}

// routeGroupNames counts function declarations of the Register<Name>Routes
// form, excluding the aggregate RegisterRoutes.
func routeGroupNames(root *sitter.Node, src []byte) map[string]int {
	groups := make(map[string]int)
	query := `(function_declaration name: (identifier) @name)`
	forEachCapture(query, root, src, func(text string) {
		if text == "RegisterRoutes" {
			return
		}
		if strings.HasPrefix(text, "Register") && strings.HasSuffix(text, "Routes") {
			groups[text]++
		}
	})
	return groups
}

func forEachCapture(query string, root *sitter.Node, src []byte, fn func(text string)) {
	q, err := sitter.NewQuery([]byte(query), golang.GetLanguage())
	if err != nil {
		return
	}
	qc := sitter.NewQueryCursor()
	qc.Exec(q, root)
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			fn(c.Node.Content(src))
		}
	}
}
