package wordlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lernplan/internal/models"
)

type Item struct {
	Word models.VocabularyItem
}

func (i Item) Title() string { return i.Word.Word }
func (i Item) Description() string {
	return fmt.Sprintf("%s · week %d · %s", i.Word.Translation, i.Word.Week, i.Word.Focus)
}
func (i Item) FilterValue() string { return i.Word.Word + " " + i.Word.Translation }

// Model is a filterable vocabulary browser. Press / to search.
type Model struct {
	list list.Model
}

func New(words []models.VocabularyItem, width, height int) Model {
	items := make([]list.Item, len(words))
	for i, w := range words {
		items[i] = Item{Word: w}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Vocabulary"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Len() == 0 {
		return "\n  No vocabulary available."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
