package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/stats"
	"github.com/julianstephens/lernplan/internal/tui/components/tasklist"
)

// chromeHeight is the space taken by tabs, status line and help
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateEditNote, constants.StateEditGoal, constants.StateConfirmReset:
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.taskList.SetSize(msg.Width-4, msg.Height-chromeHeight)
		m.wordList.SetSize(msg.Width-4, msg.Height-chromeHeight)
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - chromeHeight
		return m, nil

	case tasklist.OpenTaskMsg:
		m.openDetail(msg.Week, msg.Day)
		return m, nil

	case tea.KeyMsg:
		// Let list filters receive every key while typing
		if (m.state == constants.StateTasks && m.taskList.Filtering()) ||
			(m.state == constants.StateVocabulary && m.wordList.Filtering()) {
			break
		}
		if next, cmd, handled := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	return m.updateView(msg)
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil, true
	case key.Matches(msg, m.keys.Tab):
		m.state = m.nextTab(1)
		return m, nil, true
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = m.nextTab(-1)
		return m, nil, true
	case key.Matches(msg, m.keys.Start):
		m.tracker.StartPlan()
		m.setStatus("Plan started on %s", *m.tracker.Document().StartDate)
		m.refresh()
		return m, nil, true
	case key.Matches(msg, m.keys.Dark):
		on := m.tracker.ToggleDarkMode()
		m.styles = NewStyles(on)
		if on {
			m.setStatus("Dark mode on")
		} else {
			m.setStatus("Dark mode off")
		}
		m.refresh()
		return m, nil, true
	case key.Matches(msg, m.keys.Reset):
		m.formValues.Confirm = false
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all progress?").
				Description("Completed subtasks, notes, goals and the start date are lost.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(&m.formValues.Confirm),
		))
		m.enterForm(constants.StateConfirmReset)
		return m, m.form.Init(), true
	}
	return m, nil, false
}

// nextTab steps through the main tabs; the task detail counts as Tasks
func (m Model) nextTab(step int) constants.SessionState {
	current := m.state
	if current == constants.StateTaskDetail {
		current = constants.StateTasks
	}
	idx := 0
	for i, s := range constants.MainTabs {
		if s == current {
			idx = i
		}
	}
	n := len(constants.MainTabs)
	return constants.MainTabs[(idx+step+n)%n]
}

func (m *Model) enterForm(state constants.SessionState) {
	m.previousState = m.state
	m.state = state
}

func (m Model) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case constants.StateVocabulary:
		m.wordList, cmd = m.wordList.Update(msg)
	case constants.StateFlashcards:
		if msg, ok := msg.(tea.KeyMsg); ok {
			m.handleFlashcardKey(msg)
		}
	case constants.StateTaskDetail:
		if msg, ok := msg.(tea.KeyMsg); ok {
			if next, cmd, handled := m.handleDetailKey(msg); handled {
				return next, cmd
			}
		}
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleFlashcardKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Flip):
		m.deck.Flip()
	case key.Matches(msg, m.keys.Known):
		m.deck.MarkKnown()
	case key.Matches(msg, m.keys.Unknown):
		m.deck.MarkUnknown()
	case key.Matches(msg, m.keys.Next):
		m.deck.Next()
	case key.Matches(msg, m.keys.Prev):
		m.deck.Prev()
	case key.Matches(msg, m.keys.Shuffle):
		m.shuffleDeck()
	}
}

func (m *Model) openDetail(week, day int) {
	m.selected = stats.Position{Week: week, Day: day}
	m.cursor = 0
	m.state = constants.StateTaskDetail
	m.detail.SetContent(m.renderDetail())
	m.detail.GotoTop()
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	day, ok := m.tracker.Day(m.selected.Week, m.selected.Day)
	if !ok {
		m.state = constants.StateTasks
		return m, nil, true
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = constants.StateTasks
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.detail.SetContent(m.renderDetail())
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(day.Subtasks)-1 {
			m.cursor++
		}
		m.detail.SetContent(m.renderDetail())
	case key.Matches(msg, m.keys.Toggle):
		if len(day.Subtasks) == 0 {
			return m, nil, true
		}
		m.tracker.ToggleSubtask(m.selected.Week, m.selected.Day, m.cursor)
		if updated, _ := m.tracker.Day(m.selected.Week, m.selected.Day); updated.Completed && !day.Completed {
			m.setStatus("✓ Week %d Day %d complete", m.selected.Week, m.selected.Day)
		}
		m.refresh()
	case key.Matches(msg, m.keys.Note):
		m.formValues.Note = day.Notes
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title("Notes").
				Description(day.Task).
				Value(&m.formValues.Note),
		))
		m.enterForm(constants.StateEditNote)
		return m, m.form.Init(), true
	case key.Matches(msg, m.keys.Goal):
		week, _ := m.tracker.Week(m.selected.Week)
		m.formValues.Goal = week.Goal
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Goal for week %d", m.selected.Week)).
				Value(&m.formValues.Goal),
		))
		m.enterForm(constants.StateEditGoal)
		return m, m.form.Init(), true
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.finishForm()
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

// finishForm applies the values of a completed form
func (m *Model) finishForm() {
	switch m.state {
	case constants.StateEditNote:
		m.tracker.UpdateNotes(m.selected.Week, m.selected.Day, m.formValues.Note)
		m.setStatus("Notes saved")
	case constants.StateEditGoal:
		m.tracker.UpdateGoal(m.selected.Week, m.formValues.Goal)
		m.setStatus("Week %d goal saved", m.selected.Week)
	case constants.StateConfirmReset:
		if m.formValues.Confirm {
			if err := m.tracker.Reset(); err != nil {
				m.setStatus("⚠ %v", err)
			} else {
				m.setStatus("Progress reset")
			}
		}
	}
	m.state = m.previousState
	if m.state == constants.StateTaskDetail {
		if _, ok := m.tracker.Day(m.selected.Week, m.selected.Day); !ok {
			m.state = constants.StateTasks
		}
	}
	m.refresh()
}
