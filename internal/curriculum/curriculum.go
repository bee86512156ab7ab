// Package curriculum holds the static study plan and vocabulary list.
//
// The content is authored as JSON under data/ and embedded into the binary.
// It is parsed once; callers always receive copies so the canonical content
// can never be modified through a returned document.
package curriculum

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/julianstephens/lernplan/internal/models"
)

//go:embed data/*.json
var contentFS embed.FS

const vocabularyFile = "vocabulary.json"

var (
	once       sync.Once
	canonical  models.ProgressDocument
	vocabulary []models.VocabularyItem
)

func load() {
	doc, vocab, err := Parse(contentFS)
	if err != nil {
		panic(fmt.Sprintf("lernplan: load curriculum: %v", err))
	}
	canonical = doc
	vocabulary = vocab
}

// Parse reads week files (week*.json) and the vocabulary list from the "data/"
// directory of fsys. Weeks are ordered by week number.
func Parse(fsys fs.FS) (models.ProgressDocument, []models.VocabularyItem, error) {
	entries, err := fs.ReadDir(fsys, "data")
	if err != nil {
		return models.ProgressDocument{}, nil, fmt.Errorf("read data dir: %w", err)
	}

	var weeks []models.Week
	var vocab []models.VocabularyItem
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := fs.ReadFile(fsys, "data/"+entry.Name())
		if err != nil {
			return models.ProgressDocument{}, nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		if entry.Name() == vocabularyFile {
			if err := json.Unmarshal(data, &vocab); err != nil {
				return models.ProgressDocument{}, nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
			}
			continue
		}
		if !strings.HasPrefix(entry.Name(), "week") {
			continue
		}

		var week models.Week
		if err := json.Unmarshal(data, &week); err != nil {
			return models.ProgressDocument{}, nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}

		// Content files never carry learner state
		week.Goal = ""
		for i := range week.Days {
			week.Days[i].Notes = ""
			week.Days[i].Completed = false
			for j := range week.Days[i].Subtasks {
				week.Days[i].Subtasks[j].Completed = false
			}
		}
		weeks = append(weeks, week)
	}

	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].Week < weeks[j].Week
	})
	for i := range weeks {
		days := weeks[i].Days
		sort.SliceStable(days, func(a, b int) bool {
			return days[a].Day < days[b].Day
		})
	}

	return models.ProgressDocument{Weeks: weeks}, vocab, nil
}

// Default returns a fresh copy of the default curriculum: nothing completed,
// no notes, no goals and no start date.
func Default() models.ProgressDocument {
	once.Do(load)
	return canonical.Clone()
}

// Vocabulary returns the static vocabulary list. The slice is a copy.
func Vocabulary() []models.VocabularyItem {
	once.Do(load)
	out := make([]models.VocabularyItem, len(vocabulary))
	copy(out, vocabulary)
	return out
}
