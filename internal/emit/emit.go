// Package emit renders parsed specification documents into Go source:
// one models file and one routes file per specification package. Output is
// deterministic: object, field and enum order always follow the source
// document, so re-running the emitter on unchanged input is byte-identical.
package emit

import (
	"fmt"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/pv-udpv/opendirect21-adcom/internal/spec"
)

// EmissionError marks an emitter invariant violation (duplicate object name,
// unformattable output). Fatal to the run.
type EmissionError struct {
	Path string
	Err  error
}

func (e *EmissionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("emit %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("emit: %v", e.Err)
}

func (e *EmissionError) Unwrap() error { return e.Err }

// Output is the rendered source for one specification package.
type Output struct {
	Package string
	Models  []byte
	Routes  []byte
}

// Run renders models and routes for one parsed document.
func Run(doc *spec.Document, pkg string) (*Output, error) {
	if err := checkUniqueNames(doc); err != nil {
		return nil, err
	}
	models, err := Models(doc, pkg)
	if err != nil {
		return nil, err
	}
	routes, err := Routes(doc, pkg)
	if err != nil {
		return nil, err
	}
	return &Output{Package: pkg, Models: models, Routes: routes}, nil
}

func checkUniqueNames(doc *spec.Document) error {
	seen := make(map[string]bool, len(doc.Objects))
	for _, o := range doc.Objects {
		if seen[o.Name] {
			return &EmissionError{Err: fmt.Errorf("duplicate object name %q", o.Name)}
		}
		seen[o.Name] = true

		// Distinct attribute names can collide once export-cased (id vs ID).
		fields := make(map[string]string, len(o.Fields))
		for _, f := range o.Fields {
			goName := ExportName(f.Name)
			if prev, ok := fields[goName]; ok {
				return &EmissionError{Err: fmt.Errorf(
					"object %q: attributes %q and %q both map to field %s", o.Name, prev, f.Name, goName)}
			}
			fields[goName] = f.Name
		}
	}
	return nil
}

// Write stores the rendered files under dir/<pkg>/ on the given filesystem
// and returns the written paths in a fixed order.
func Write(fsys billy.Filesystem, dir string, out *Output) ([]string, error) {
	base := path.Join(dir, out.Package)
	if err := fsys.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", base, err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{"models.go", out.Models},
		{"routes.go", out.Routes},
	}

	var paths []string
	for _, f := range files {
		p := path.Join(base, f.name)
		if err := util.WriteFile(fsys, p, f.data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
