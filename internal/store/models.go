package store

import "time"

// CalendarTask is a single date-stamped todo. Date is a local calendar day
// in YYYY-MM-DD form; a task belongs to exactly one day.
type CalendarTask struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionType tags which timer phase produced a focus session.
type SessionType string

const (
	SessionFocus      SessionType = "focus"
	SessionShortBreak SessionType = "short-break"
	SessionLongBreak  SessionType = "long-break"
)

// FocusSession is one completed timer interval. The log is append-only:
// sessions are never edited or individually deleted.
type FocusSession struct {
	ID          string      `json:"id"`
	Subject     string      `json:"subject"`
	Duration    int         `json:"duration"` // seconds
	Type        SessionType `json:"type"`
	CompletedAt time.Time   `json:"completedAt"`
}

// DayStat is one entry of the 7-day focus history.
type DayStat struct {
	Day     string `json:"day"` // short weekday name
	Minutes int    `json:"minutes"`
}

// SubjectStat is one slice of today's per-subject focus breakdown.
type SubjectStat struct {
	Subject string `json:"subject"`
	Minutes int    `json:"minutes"`
	Color   string `json:"color"`
}

// MapNode is a positioned node on the mind-map canvas.
type MapNode struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	Notes    string  `json:"notes,omitempty"`
	Complete bool    `json:"isComplete,omitempty"`
}

// MapEdge is a directed connection between two node ids.
type MapEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// MindMapDocument is a named node/edge graph.
type MindMapDocument struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     []MapNode `json:"nodes"`
	Edges     []MapEdge `json:"edges"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimerSettings holds the configurable pomodoro durations.
type TimerSettings struct {
	FocusSeconds      int `json:"focusSeconds"`
	ShortBreakSeconds int `json:"shortBreakSeconds"`
	LongBreakSeconds  int `json:"longBreakSeconds"`
	LongBreakInterval int `json:"longBreakInterval"` // every Nth focus interval gets a long break
}

// DefaultTimerSettings is the classic 25/5/15 pomodoro configuration.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		FocusSeconds:      1500,
		ShortBreakSeconds: 300,
		LongBreakSeconds:  900,
		LongBreakInterval: 4,
	}
}

const dateLayout = "2006-01-02"

// Subjects is the suggested subject set offered by the timer UI. Free text
// is still accepted at the data layer.
var Subjects = []string{
	"Math", "Physics", "Chemistry", "Biology", "History", "English", "General",
}

// subjectColors maps known subjects to chart colors. Unknown subjects fall
// back to neutral gray.
var subjectColors = map[string]string{
	"Math":      "#6C63FF",
	"Physics":   "#2EC4B6",
	"Chemistry": "#FF6B6B",
	"Biology":   "#2ECC71",
	"History":   "#F39C12",
	"English":   "#3498DB",
	"General":   "#9B59B6",
}

const fallbackColor = "#666666"

// SubjectColor returns the palette color for a subject.
func SubjectColor(subject string) string {
	if c, ok := subjectColors[subject]; ok {
		return c
	}
	return fallbackColor
}

// nodeColors is the palette for mind-map nodes, keyed by node role.
var nodeColors = map[string]string{
	"topic":    "#6C63FF",
	"subtopic": "#2EC4B6",
	"detail":   "#7AA2F7",
	"done":     "#2ECC71",
}

// NodeColor returns the palette color for a node role, defaulting to the
// topic color.
func NodeColor(role string) string {
	if c, ok := nodeColors[role]; ok {
		return c
	}
	return nodeColors["topic"]
}
