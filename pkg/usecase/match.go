package usecase

import (
	"strings"

	"github.com/pantry-lab/pantrybot/pkg/domain/model"
)

// normalizeText lowercases, trims and collapses internal whitespace runs
// to a single space.
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// findMatches returns the candidates a phrase plausibly refers to.
// Exact matches on the normalized text take precedence: when present, only
// they are returned, even if looser substring matches also exist. Otherwise
// containment is checked in both directions, so "суп" finds "мясной суп"
// and "мясной суп" finds "суп". An empty phrase matches nothing.
func findMatches(candidates []*model.Item, phrase string) []*model.Item {
	query := normalizeText(phrase)
	if query == "" {
		return nil
	}

	var exact []*model.Item
	var partial []*model.Item
	for _, c := range candidates {
		text := normalizeText(c.Text)
		if text == query {
			exact = append(exact, c)
			continue
		}
		if strings.Contains(text, query) || strings.Contains(query, text) {
			partial = append(partial, c)
		}
	}

	if len(exact) > 0 {
		return exact
	}
	return partial
}
