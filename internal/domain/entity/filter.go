package entity

import "strings"

// ItemFilter is the in-memory filter applied to an already-fetched item page
// in the browse view. It is independent of the database full-text search and
// performs no I/O.
type ItemFilter struct {
	Term      string    // Case-insensitive substring matched against title or description.
	Category  string    // Exact category match; empty matches everything.
	Condition Condition // Exact condition match; empty matches everything.
}

// Match reports whether the item satisfies every predicate of the filter.
// An empty filter matches every item.
func (f ItemFilter) Match(item *Item) bool {
	if item == nil {
		return false
	}

	if f.Term != "" {
		term := strings.ToLower(f.Term)
		if !strings.Contains(strings.ToLower(item.Title), term) &&
			!strings.Contains(strings.ToLower(item.Description), term) {
			return false
		}
	}

	if f.Category != "" && item.Category != f.Category {
		return false
	}

	if f.Condition != "" && item.Condition != f.Condition {
		return false
	}

	return true
}

// FilterItems returns the items matching the filter, preserving order.
// The input slice is never mutated.
func FilterItems(items []*Item, filter ItemFilter) []*Item {
	filtered := make([]*Item, 0, len(items))
	for _, item := range items {
		if filter.Match(item) {
			filtered = append(filtered, item)
		}
	}

	return filtered
}
