package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateDashboard SessionState = iota
	StateTasks
	StateVocabulary
	StateFlashcards
	StateProgress
	StateTaskDetail
	StateEditNote
	StateEditGoal
	StateConfirmReset
)

// MainTabs lists the top-level views in tab order
var MainTabs = []SessionState{
	StateDashboard,
	StateTasks,
	StateVocabulary,
	StateFlashcards,
	StateProgress,
}

func (s SessionState) String() string {
	switch s {
	case StateDashboard:
		return "Dashboard"
	case StateTasks:
		return "Tasks"
	case StateVocabulary:
		return "Vocabulary"
	case StateFlashcards:
		return "Flashcards"
	case StateProgress:
		return "Progress"
	case StateTaskDetail:
		return "Task"
	case StateEditNote:
		return "Notes"
	case StateEditGoal:
		return "Goal"
	case StateConfirmReset:
		return "Reset"
	default:
		return "Unknown"
	}
}
