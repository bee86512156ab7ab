package tasklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lernplan/internal/models"
)

// OpenTaskMsg asks the parent to show the detail of a day
type OpenTaskMsg struct {
	Week int
	Day  int
}

type Item struct {
	Week      int
	Day       models.Day
	Scheduled string
}

func (i Item) Title() string {
	return fmt.Sprintf("%s W%d D%d  %s", glyph(i.Day), i.Week, i.Day.Day, i.Day.Task)
}

func (i Item) Description() string {
	focus := string(i.Day.Focus)
	if focus != "" {
		focus = strings.ToUpper(focus[:1]) + focus[1:]
	}
	return fmt.Sprintf("%s · %s · %s · %d/%d subtasks", focus, i.Day.Level, i.Scheduled, i.Day.CompletedSubtasks(), len(i.Day.Subtasks))
}

func (i Item) FilterValue() string { return i.Day.Task + " " + string(i.Day.Focus) }

func glyph(d models.Day) string {
	switch {
	case d.Completed:
		return "✓"
	case d.CompletedSubtasks() > 0:
		return "◐"
	default:
		return "○"
	}
}

type KeyMap struct {
	Open key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open task"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open}
	}
	return Model{list: l, keys: keys}
}

// SetDocument rebuilds the items, keeping the cursor position
func (m *Model) SetDocument(doc models.ProgressDocument, scheduled func(week, day int) string) {
	var items []list.Item
	for _, w := range doc.Weeks {
		for _, d := range w.Days {
			items = append(items, Item{Week: w.Week, Day: d, Scheduled: scheduled(w.Week, d.Day)})
		}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx < len(items) {
		m.list.Select(idx)
	}
}

// Selected returns the highlighted item
func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		if key.Matches(msg, m.keys.Open) {
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenTaskMsg{Week: i.Week, Day: i.Day.Day} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  The plan has no tasks."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
