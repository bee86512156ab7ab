package vocab

import (
	"strings"

	"github.com/julianstephens/lernplan/internal/models"
)

// Filter narrows a vocabulary list. Zero fields match everything.
type Filter struct {
	Week  int
	Focus models.Focus
	// Query is matched case-insensitively against word and translation
	Query string
}

func (f Filter) matches(item models.VocabularyItem) bool {
	if f.Week != 0 && item.Week != f.Week {
		return false
	}
	if f.Focus != "" && item.Focus != f.Focus {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	return strings.Contains(strings.ToLower(item.Word), q) ||
		strings.Contains(strings.ToLower(item.Translation), q)
}

// Apply returns the matching items in source order
func Apply(items []models.VocabularyItem, f Filter) []models.VocabularyItem {
	out := []models.VocabularyItem{}
	for _, item := range items {
		if f.matches(item) {
			out = append(out, item)
		}
	}
	return out
}

func ByWeek(items []models.VocabularyItem) map[int][]models.VocabularyItem {
	out := make(map[int][]models.VocabularyItem)
	for _, item := range items {
		out[item.Week] = append(out[item.Week], item)
	}
	return out
}
