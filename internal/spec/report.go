package spec

import (
	"fmt"
	"strings"
)

// StructureError records a malformed section or table. Object-level,
// non-fatal to the run.
type StructureError struct {
	Object  string
	Line    int
	Message string
}

func (e *StructureError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Object, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Object, e.Message)
}

// ClassificationError records a type cell that matched no known pattern.
// The field is retained with an opaque string type for manual review.
type ClassificationError struct {
	Object  string
	Field   string
	RawType string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%s.%s: unrecognized type %q, retained as opaque string", e.Object, e.Field, e.RawType)
}

// ReferenceError records a nested-object type name that resolved to no known
// object or list. Fatal to the field only; it falls back to opaque string.
type ReferenceError struct {
	Object string
	Field  string
	Ref    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s.%s: reference to unknown object %q", e.Object, e.Field, e.Ref)
}

// Report accumulates field- and object-level problems across a parse run so
// a single malformed table does not block the other objects. Warnings are
// recoverable; errors mark data that was dropped or degraded.
type Report struct {
	Warnings []error
	Errors   []error

	// EmptySections counts recognized object headings with no usable table.
	EmptySections int
}

func (r *Report) Warn(err error) {
	r.Warnings = append(r.Warnings, err)
}

func (r *Report) Err(err error) {
	r.Errors = append(r.Errors, err)
}

func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Len returns the total number of recorded problems.
func (r *Report) Len() int {
	return len(r.Warnings) + len(r.Errors)
}

// Merge appends all entries of other into r.
func (r *Report) Merge(other *Report) {
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Errors = append(r.Errors, other.Errors...)
	r.EmptySections += other.EmptySections
}

// Summary renders every accumulated problem, one per line.
func (r *Report) Summary() string {
	var sb strings.Builder
	for _, e := range r.Errors {
		sb.WriteString("error: " + e.Error() + "\n")
	}
	for _, w := range r.Warnings {
		sb.WriteString("warning: " + w.Error() + "\n")
	}
	if r.EmptySections > 0 {
		fmt.Fprintf(&sb, "warning: %d object section(s) had no parseable table\n", r.EmptySections)
	}
	return sb.String()
}
