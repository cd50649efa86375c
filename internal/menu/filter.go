package menu

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchFilter reports whether the item should remain selectable under
// the given filter query. Separators never match a non-empty filter.
func MatchFilter(item *Item, query string) bool {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return true
	}
	if item.Kind == KindSeparator {
		return false
	}
	if fuzzy.MatchNormalizedFold(trimmed, item.Title) {
		return true
	}
	lower := strings.ToLower(trimmed)
	return strings.Contains(strings.ToLower(item.Title), lower) ||
		strings.Contains(strings.ToLower(item.Key), lower)
}

// BestMatchIndex returns the absolute index of the best item for the
// query: exact title/key match, then prefix, then fuzzy rank.
func (m *Menu) BestMatchIndex(query string) int {
	trimmed := strings.TrimSpace(query)
	indices := m.Selectable(func(item *Item) bool { return MatchFilter(item, trimmed) })
	if len(indices) == 0 {
		return -1
	}
	if trimmed == "" {
		return indices[0]
	}
	lower := strings.ToLower(trimmed)
	for _, idx := range indices {
		item := m.Items[idx]
		if strings.EqualFold(item.Title, trimmed) || strings.EqualFold(item.Key, trimmed) {
			return idx
		}
	}
	for _, idx := range indices {
		if strings.HasPrefix(strings.ToLower(m.Items[idx].Title), lower) {
			return idx
		}
	}
	labels := make([]string, len(indices))
	for i, idx := range indices {
		labels[i] = m.Items[idx].Title
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return indices[0]
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(indices) {
		return indices[0]
	}
	return indices[best.OriginalIndex]
}
