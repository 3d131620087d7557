package store

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// ListWhere returns the page of entities whose document matches want at the
// given JSONPath expression, plus the total number of matches. This backs
// parent-reference filtering on list endpoints (e.g. expr "$.order_id");
// there are no nested resource paths.
func (s *Store) ListWhere(col, expr string, want any, skip, limit int) ([]map[string]any, int, error) {
	if skip < 0 {
		return nil, 0, &InvalidInputError{Message: "skip must not be negative"}
	}
	if limit <= 0 {
		return nil, 0, &InvalidInputError{Message: "limit must be positive"}
	}

	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, 0, &InvalidInputError{Message: fmt.Sprintf("invalid filter expression %q: %v", expr, err)}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.collections[col]
	if c == nil {
		return []map[string]any{}, 0, nil
	}

	total := 0
	items := make([]map[string]any, 0, limit)
	for _, id := range c.order {
		e := c.items[id]
		if !matchesAny(x.Get(e.Data), want) {
			continue
		}
		if total >= skip && len(items) < limit {
			items = append(items, e.Snapshot())
		}
		total++
	}
	return items, total, nil
}

// matchesAny compares loosely across JSON scalar representations, since
// query parameters arrive as strings while stored numbers are float64.
func matchesAny(results []any, want any) bool {
	for _, r := range results {
		if r == want || fmt.Sprint(r) == fmt.Sprint(want) {
			return true
		}
	}
	return false
}
