package spec

import "strings"

// Row is one parsed table row. Cells are stripped of surrounding pipes and
// whitespace; Line is 1-based within the table block.
type Row struct {
	Cells []string
	Line  int
}

// ParseTable splits a raw table block into a header row and body rows.
// Separator rows are skipped. Body rows whose cell count differs from the
// header are reported per row and dropped; the rest of the table survives.
//
// Column meaning is positional (Attribute | Description | Type for object
// tables, Value | Description for list tables) since header text varies
// across the source documents.
func ParseTable(block string) (header Row, body []Row, errs []error) {
	lines := strings.Split(block, "\n")

	n := 0
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || isSeparatorLine(line) {
			continue
		}
		cells := splitCells(line)
		if len(cells) == 0 {
			continue
		}
		n++
		row := Row{Cells: cells, Line: i + 1}
		if n == 1 {
			header = row
			continue
		}
		if len(cells) != len(header.Cells) {
			errs = append(errs, &StructureError{
				Line:    i + 1,
				Message: "row cell count differs from header, row dropped",
			})
			continue
		}
		body = append(body, row)
	}
	return header, body, errs
}

// splitCells breaks a pipe-delimited line into trimmed cell values. Leading
// and trailing empty fragments produced by the outer pipes are discarded;
// interior cells may legitimately be empty.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
