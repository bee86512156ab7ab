package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lernplan/internal/constants"
	"github.com/julianstephens/lernplan/internal/stats"
)

const barWidth = 20

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateTasks:
		content = m.styles.Doc.Render(m.taskList.View())
	case constants.StateVocabulary:
		content = m.styles.Doc.Render(m.wordList.View())
	case constants.StateFlashcards:
		content = m.viewFlashcards()
	case constants.StateProgress:
		content = m.viewProgress()
	case constants.StateTaskDetail:
		content = m.styles.Doc.Render(m.detail.View())
	case constants.StateEditNote, constants.StateEditGoal, constants.StateConfirmReset:
		content = m.styles.Doc.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	switch m.state {
	case constants.StateTaskDetail:
		active = constants.StateTasks
	case constants.StateEditNote, constants.StateEditGoal, constants.StateConfirmReset:
		active = m.previousState
		if active == constants.StateTaskDetail {
			active = constants.StateTasks
		}
	}

	var tabs []string
	for _, s := range constants.MainTabs {
		if s == active {
			tabs = append(tabs, m.styles.ActiveTab.Render(s.String()))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(s.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if strings.HasPrefix(m.status, "⚠") {
		return m.styles.Warning.Render(m.status)
	}
	return m.styles.Subtle.Render(m.status)
}

func (m Model) bar(percent int) string {
	filled := percent * barWidth / 100
	return m.styles.BarFull.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}

func (m Model) viewDashboard() string {
	doc := m.tracker.Document()
	overall := m.tracker.Overall()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("German Learning Plan") + "\n\n")
	if doc.Started() {
		fmt.Fprintf(&b, "Started %s\n", *doc.StartDate)
	} else {
		b.WriteString(m.styles.Subtle.Render("Not started yet. Press s to start the plan today.") + "\n")
	}
	fmt.Fprintf(&b, "\n%s %d%%  (%d/%d days)\n", m.bar(overall.Percent), overall.Percent, overall.Completed, overall.Total)

	next, ok := m.tracker.NextIncomplete()
	if !ok {
		b.WriteString("\n" + m.styles.Done.Render("✓ All tasks complete. Herzlichen Glückwunsch!") + "\n")
		return m.styles.Doc.Render(b.String())
	}
	day, _ := m.tracker.Day(next.Week, next.Day)
	b.WriteString("\n" + m.styles.Title.Render("Next up") + "\n")
	fmt.Fprintf(&b, "Week %d, Day %d · %s\n", next.Week, next.Day, m.tracker.ScheduledDate(next.Week, next.Day))
	fmt.Fprintf(&b, "%s\n", day.Task)
	fmt.Fprintf(&b, "%s\n", m.styles.Subtle.Render(fmt.Sprintf("%s · %s · %d/%d subtasks", focusLabel(string(day.Focus)), day.Level, day.CompletedSubtasks(), len(day.Subtasks))))
	if week, ok := m.tracker.Week(next.Week); ok && week.Goal != "" {
		fmt.Fprintf(&b, "\nWeek goal: %s\n", week.Goal)
	}
	return m.styles.Doc.Render(b.String())
}

func (m Model) viewProgress() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("By week") + "\n")
	for _, w := range m.tracker.ByWeek() {
		fmt.Fprintf(&b, "Week %d  %s %3d%%  %s\n", w.Week, m.bar(w.Percent), w.Percent, w.Goal)
	}

	counts := m.tracker.ByFocus()
	b.WriteString("\n" + m.styles.Title.Render("By focus") + "\n")
	for _, fc := range counts {
		fmt.Fprintf(&b, "%-10s  %s %3d%%  (%d/%d)\n", focusLabel(string(fc.Focus)), m.bar(fc.Percent()), fc.Percent(), fc.Completed, fc.Total)
	}

	if strongest, ok := stats.StrongestFocus(counts); ok {
		weakest, _ := stats.WeakestFocus(counts)
		b.WriteString("\n" + m.styles.Title.Render("Insights") + "\n")
		fmt.Fprintf(&b, "Strongest: %s (%d%%)\n", focusLabel(string(strongest.Focus)), strongest.Percent())
		fmt.Fprintf(&b, "Needs work: %s (%d%%)\n", focusLabel(string(weakest.Focus)), weakest.Percent())
	}
	return m.styles.Doc.Render(b.String())
}

func (m Model) viewFlashcards() string {
	card, ok := m.deck.Current()
	if !ok {
		return m.styles.Doc.Render("No vocabulary available.")
	}

	face := card.Word
	hint := "space to reveal"
	if m.deck.Flipped() {
		face = card.Translation
		hint = "y knew it · x didn't know"
	}

	counter := fmt.Sprintf("Card %d/%d · known %d · remaining %d",
		m.deck.Position()+1, m.deck.Len(), m.deck.Known(), m.deck.Remaining())
	return m.styles.Doc.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Subtle.Render(counter),
		"",
		m.styles.Card.Render(face),
		"",
		m.styles.Subtle.Render(fmt.Sprintf("week %d · %s · %s", card.Week, card.Focus, hint)),
	))
}

// renderDetail builds the scrollable task detail for the selected day
func (m Model) renderDetail() string {
	day, ok := m.tracker.Day(m.selected.Week, m.selected.Day)
	if !ok {
		return "Task details not found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.styles.Title.Render(fmt.Sprintf("Week %d, Day %d: %s", m.selected.Week, m.selected.Day, day.Task)))
	fmt.Fprintf(&b, "%s\n", m.styles.Subtle.Render(fmt.Sprintf("%s · %s · %s",
		focusLabel(string(day.Focus)), day.Level, m.tracker.ScheduledDate(m.selected.Week, m.selected.Day))))

	if week, ok := m.tracker.Week(m.selected.Week); ok && week.Goal != "" {
		fmt.Fprintf(&b, "Week goal: %s\n", week.Goal)
	}

	lesson := day.LessonContent
	if lesson.Title != "" {
		fmt.Fprintf(&b, "\n%s\n", m.styles.Title.Render(lesson.Title))
		for _, field := range []struct{ name, value string }{
			{"Definition", lesson.Definition},
			{"Example", lesson.Example},
			{"Tips", lesson.Tips},
		} {
			if field.value != "" {
				fmt.Fprintf(&b, "%s: %s\n", field.name, field.value)
			}
		}
	}

	b.WriteString("\n" + m.styles.Title.Render("Subtasks") + "\n")
	for i, s := range day.Subtasks {
		box := "[ ]"
		if s.Completed {
			box = m.styles.Done.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", box, s.Description)
		if i == m.cursor {
			line = m.styles.Cursor.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if len(day.Resources) > 0 {
		b.WriteString("\n" + m.styles.Title.Render("Resources") + "\n")
		for _, r := range day.Resources {
			fmt.Fprintf(&b, "- %s: %s\n", r.Name, r.URL)
		}
	}

	b.WriteString("\n" + m.styles.Title.Render("Notes") + "\n")
	if day.Notes == "" {
		b.WriteString(m.styles.Subtle.Render("No notes yet. Press n to add some.") + "\n")
	} else {
		b.WriteString(day.Notes + "\n")
	}
	return b.String()
}

func focusLabel(f string) string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(f[:1]) + f[1:]
}
