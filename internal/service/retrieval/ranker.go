package retrieval

import (
	"sort"
	"strings"

	"github.com/youthmindhub/backend/internal/model/content"
)

// Select scores every snapshot item against the query and keeps the top
// perType per collection, ordered by descending score with ties broken by
// fetch order. The score is a keyword-overlap count: each whitespace token of
// the lower-cased query contributes one point when it appears as a substring
// of the item's searchable text, regardless of how often it appears. This is
// a deliberate placeholder for an embedding-based similarity lookup.
func Select(query string, snapshot content.Snapshot, perType int) content.Selection {
	tokens := strings.Fields(strings.ToLower(query))

	return content.Selection{
		Resources: topResources(tokens, snapshot.Resources, perType),
		Services:  topServices(tokens, snapshot.Services, perType),
	}
}

func scoreText(tokens []string, text string) int {
	score := 0
	for _, token := range tokens {
		if strings.Contains(text, token) {
			score++
		}
	}
	return score
}

func topResources(tokens []string, items []content.ResourceDigest, limit int) []content.ResourceDigest {
	scores := make([]int, len(items))
	for i, item := range items {
		scores[i] = scoreText(tokens, item.SearchText())
	}
	order := rankOrder(scores)

	if limit > len(order) {
		limit = len(order)
	}
	out := make([]content.ResourceDigest, 0, limit)
	for _, idx := range order[:limit] {
		out = append(out, items[idx])
	}
	return out
}

func topServices(tokens []string, items []content.ServiceDigest, limit int) []content.ServiceDigest {
	scores := make([]int, len(items))
	for i, item := range items {
		scores[i] = scoreText(tokens, item.SearchText())
	}
	order := rankOrder(scores)

	if limit > len(order) {
		limit = len(order)
	}
	out := make([]content.ServiceDigest, 0, limit)
	for _, idx := range order[:limit] {
		out = append(out, items[idx])
	}
	return out
}

// rankOrder returns item indices sorted by descending score. The sort is
// stable so equal scores keep fetch order.
func rankOrder(scores []int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}
