package spec

import (
	"regexp"
	"strings"
)

// SectionKind distinguishes object tables from enum list tables.
type SectionKind uint8

const (
	SectionObject SectionKind = iota
	SectionList
)

// Section is one recognized heading with the table block that follows it.
// TableBlock is empty when no table was found before the next heading.
type Section struct {
	Kind        SectionKind
	Name        string
	Description string
	TableBlock  string
	Line        int
}

// Heading conventions across the OpenDirect and AdCom documents. Both specs
// introduce schemas with "Object:" headings; AdCom adds "List:" headings for
// standalone enum tables. Heading depth varies between one and three hashes.
var (
	objectHeadingRe = regexp.MustCompile("^#{1,3}\\s*Object:\\s*`?(\\w+)`?\\s*$")
	listHeadingRe   = regexp.MustCompile(`^#{1,3}\s*List:\s*([\w][\w ]*?)\s*$`)
	anyHeadingRe    = regexp.MustCompile(`^#{1,6}\s`)
)

// ExtractSections scans a markdown document for object and list sections in
// document order. A section with no table before the next heading is still
// returned (with an empty TableBlock) so the caller can count and report it.
func ExtractSections(content string) []Section {
	lines := strings.Split(content, "\n")

	var sections []Section
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")

		var kind SectionKind
		var name string
		if m := objectHeadingRe.FindStringSubmatch(line); m != nil {
			kind, name = SectionObject, m[1]
		} else if m := listHeadingRe.FindStringSubmatch(line); m != nil {
			kind, name = SectionList, strings.TrimSpace(m[1])
		} else {
			continue
		}

		// Chunk runs from the heading to the next heading of any depth.
		end := len(lines)
		for j := i + 1; j < len(lines); j++ {
			if anyHeadingRe.MatchString(strings.TrimRight(lines[j], "\r")) {
				end = j
				break
			}
		}

		desc, block := splitChunk(lines[i+1 : end])
		sections = append(sections, Section{
			Kind:        kind,
			Name:        name,
			Description: desc,
			TableBlock:  block,
			Line:        i + 1,
		})
		i = end - 1
	}
	return sections
}

// splitChunk separates the prose before a table from the table itself. The
// description is the first non-empty paragraph preceding the table. The
// table is the first contiguous run of pipe-delimited lines whose second
// line is a dash separator (both |--|--| and |-----|----| styles).
func splitChunk(lines []string) (description, tableBlock string) {
	start := -1
	for i, line := range lines {
		if !isTableLine(line) {
			continue
		}
		if i+1 < len(lines) && isSeparatorLine(lines[i+1]) {
			start = i
			break
		}
	}

	var descLines []string
	limit := len(lines)
	if start >= 0 {
		limit = start
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(descLines) > 0 {
				break // first paragraph only
			}
			continue
		}
		descLines = append(descLines, line)
	}
	description = strings.Join(descLines, " ")

	if start < 0 {
		return description, ""
	}
	end := start
	for end < len(lines) && isTableLine(lines[end]) {
		end++
	}
	return description, strings.Join(lines[start:end], "\n")
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// isSeparatorLine reports whether the line is a markdown table separator,
// i.e. every cell consists of dashes (with optional colons and spaces).
func isSeparatorLine(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "|") {
		return false
	}
	stripped := strings.NewReplacer("|", "", "-", "", ":", "", " ", "").Replace(line)
	return stripped == "" && strings.Contains(line, "-")
}
