package state

import (
	"strings"

	"github.com/atomicstack/emu-settings-control/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterItems keeps the entries whose label fuzzily matches query. When no
// label matches, entries whose label or id contain query are kept instead so
// setting keys and driver paths stay searchable.
func FilterItems(items []menu.Item, query string) []menu.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return CloneItems(items)
	}
	var filtered []menu.Item
	if ranks := fuzzy.RankFindNormalizedFold(query, labels(items)); len(ranks) > 0 {
		hit := make([]bool, len(items))
		for _, rank := range ranks {
			hit[rank.OriginalIndex] = true
		}
		for i, item := range items {
			if hit[i] {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	lower := strings.ToLower(query)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) || strings.Contains(strings.ToLower(item.ID), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// match tiers, best first
const (
	tierExact = iota
	tierLabelPrefix
	tierIDPrefix
	tierContains
	tierFuzzy
	tierNone
)

// BestMatchIndex picks the entry the cursor should land on for query: exact
// label or id first, then prefixes, substrings and finally the closest fuzzy
// match. Ties go to the earlier entry. It returns 0 when nothing matches and
// -1 when items is empty.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return 0
	}
	lower := strings.ToLower(query)
	distance := make(map[int]int)
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labels(items)) {
		distance[rank.OriginalIndex] = rank.Distance
	}
	best, bestTier, bestDistance := 0, tierNone, 0
	for i, item := range items {
		label, id := strings.ToLower(item.Label), strings.ToLower(item.ID)
		tier := tierNone
		d, fuzzyHit := distance[i]
		switch {
		case label == lower || id == lower:
			tier = tierExact
		case strings.HasPrefix(label, lower):
			tier = tierLabelPrefix
		case strings.HasPrefix(id, lower):
			tier = tierIDPrefix
		case strings.Contains(label, lower) || strings.Contains(id, lower):
			tier = tierContains
		case fuzzyHit:
			tier = tierFuzzy
		}
		if tier < bestTier || (tier == tierFuzzy && bestTier == tierFuzzy && d < bestDistance) {
			best, bestTier, bestDistance = i, tier, d
		}
	}
	return best
}

func labels(items []menu.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}
