package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/studydesk/internal/store"
)

// Stores bundles the per-slice state stores the views operate on. Each
// store is constructed once at startup and shared by reference; all calls
// happen on the Bubble Tea update goroutine.
type Stores struct {
	Calendar *store.TaskCalendarStore
	Focus    *store.FocusSessionStore
	Maps     *store.MindMapStore
	Settings *store.SettingsStore
}

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCalendar
	viewFocus
	viewMaps
	viewStats
	viewSettings
)

var viewNames = []string{"Dashboard", "Calendar", "Focus", "Maps", "Stats", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// sessionLoggedMsg is emitted after the focus timer records a completed
// interval, so stat views can rebuild.
type sessionLoggedMsg struct {
	session store.SessionType
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatFocusTime renders seconds as "1h 15m" (or "45m" under an hour).
func formatFocusTime(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

func formatMinutes(minutes int) string {
	return formatFocusTime(minutes * 60)
}

func secsToMin(secs int) int {
	return secs / 60
}

func minToSecs(minutes int) int {
	return minutes * 60
}
