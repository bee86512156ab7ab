package tui

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/logger"
	"github.com/julianstephens/lernplan/internal/stats"
	"github.com/julianstephens/lernplan/internal/tracker"
	"github.com/julianstephens/lernplan/internal/tui/components/tasklist"
	"github.com/julianstephens/lernplan/internal/tui/components/wordlist"
	"github.com/julianstephens/lernplan/internal/vocab"
)

// formValues is shared by pointer so huh fields survive Model copies
type formValues struct {
	Note    string
	Goal    string
	Confirm bool
}

// writeErrors collects save failures reported while handling a message
type writeErrors struct {
	last error
}

func (w *writeErrors) take() error {
	err := w.last
	w.last = nil
	return err
}

type Model struct {
	tracker       *tracker.Tracker
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	styles        Styles

	taskList tasklist.Model
	wordList wordlist.Model
	deck     *vocab.Deck

	// Task detail
	detail   viewport.Model
	selected stats.Position
	cursor   int

	form       *huh.Form
	formValues *formValues

	writeErrs *writeErrors
	status    string
	quitting  bool
	width     int
	height    int
}

func NewModel(tr *tracker.Tracker) Model {
	errs := &writeErrors{}
	tr.OnWriteError(func(key string, err error) {
		logger.Warn("Failed to save", "key", key, "error", err)
		errs.last = fmt.Errorf("failed to save %s: %w", key, err)
	})

	detail := viewport.New(0, 0)
	detail.KeyMap.Up.SetEnabled(false)
	detail.KeyMap.Down.SetEnabled(false)

	m := Model{
		tracker:    tr,
		state:      constants.StateDashboard,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		styles:     NewStyles(tr.DarkMode()),
		taskList:   tasklist.New(0, 0),
		wordList:   wordlist.New(tr.Vocabulary(), 0, 0),
		deck:       vocab.NewDeck(tr.Vocabulary()),
		detail:     detail,
		formValues: &formValues{},
		writeErrs:  errs,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh rebuilds everything derived from the tracker document
func (m *Model) refresh() {
	m.taskList.SetDocument(m.tracker.Document(), m.tracker.ScheduledDate)
	if m.state == constants.StateTaskDetail {
		m.detail.SetContent(m.renderDetail())
	}
	if err := m.writeErrs.take(); err != nil {
		m.status = "⚠ " + err.Error()
	}
}

func (m *Model) setStatus(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateTasks:
		keys = append(keys, m.keys.Enter)
	case constants.StateTaskDetail:
		keys = append(keys, m.keys.Toggle, m.keys.Note, m.keys.Goal, m.keys.Back)
	case constants.StateFlashcards:
		keys = append(keys, m.keys.Flip, m.keys.Known, m.keys.Unknown)
	case constants.StateDashboard:
		keys = append(keys, m.keys.Start)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Start, m.keys.Reset, m.keys.Dark}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}

	var actions []key.Binding
	switch m.state {
	case constants.StateTaskDetail:
		actions = []key.Binding{m.keys.Toggle, m.keys.Note, m.keys.Goal}
	case constants.StateFlashcards:
		actions = []key.Binding{m.keys.Flip, m.keys.Known, m.keys.Unknown, m.keys.Next, m.keys.Prev, m.keys.Shuffle}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m *Model) shuffleDeck() {
	m.deck.Shuffle(rand.NewSource(time.Now().UnixNano()))
	m.setStatus("Deck shuffled")
}
