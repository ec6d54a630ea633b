package store

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/studydesk/internal/storage"
)

const focusKey = "focus-timer-storage"

type focusEnvelope struct {
	Version       int            `json:"version"`
	Sessions      []FocusSession `json:"sessions"`
	CurrentStreak int            `json:"currentStreak"`
	LastStudyDate string         `json:"lastStudyDate,omitempty"`
}

// FocusSessionStore owns the append-only log of completed timer intervals
// and the derived statistics behind the dashboard widgets. The day-level
// study streak is recomputed eagerly on every write so reads are O(1).
type FocusSessionStore struct {
	kv  storage.KV
	now func() time.Time

	sessions      []FocusSession
	currentStreak int
	lastStudyDate string // YYYY-MM-DD, "" when no focus session has been logged
}

// NewFocusSessionStore hydrates the session log and cached streak from
// storage.
func NewFocusSessionStore(kv storage.KV) *FocusSessionStore {
	s := &FocusSessionStore{kv: kv, now: time.Now}
	if raw, ok := kv.Get(focusKey); ok {
		var env focusEnvelope
		if err := json.Unmarshal([]byte(raw), &env); err == nil {
			s.sessions = env.Sessions
			s.currentStreak = env.CurrentStreak
			s.lastStudyDate = env.LastStudyDate
		}
	}
	return s
}

// SetNowFunc overrides the clock used for session stamps and day
// bucketing. Passing nil resets it to time.Now.
func (s *FocusSessionStore) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// AddSession appends a completed interval to the log, stamps it with a
// fresh id and the current time, and updates the study streak. This is the
// only mutation besides ClearSessions — the log is a ledger.
func (s *FocusSessionStore) AddSession(subject string, durationSecs int, typ SessionType) {
	s.sessions = append(s.sessions, FocusSession{
		ID:          uuid.NewString(),
		Subject:     subject,
		Duration:    durationSecs,
		Type:        typ,
		CompletedAt: s.now(),
	})
	s.updateStreak()
	s.persist()
}

// ClearSessions wipes the log and resets the streak. Reset flows only; not
// reachable from normal use.
func (s *FocusSessionStore) ClearSessions() {
	s.sessions = nil
	s.currentStreak = 0
	s.lastStudyDate = ""
	s.persist()
}

// Sessions returns the full log, oldest first.
func (s *FocusSessionStore) Sessions() []FocusSession {
	return s.sessions
}

// Streak returns the cached consecutive-study-day count.
func (s *FocusSessionStore) Streak() int {
	return s.currentStreak
}

// LastStudyDate returns the YYYY-MM-DD date of the most recent focus
// session, or "" if none exists.
func (s *FocusSessionStore) LastStudyDate() string {
	return s.lastStudyDate
}

// TodaySessions returns every session completed on the current local
// calendar day, breaks included.
func (s *FocusSessionStore) TodaySessions() []FocusSession {
	today := s.today()
	var out []FocusSession
	for _, sess := range s.sessions {
		if sess.CompletedAt.Format(dateLayout) == today {
			out = append(out, sess)
		}
	}
	return out
}

// TodayFocusTime sums today's focus-type durations in seconds. Breaks are
// excluded.
func (s *FocusSessionStore) TodayFocusTime() int {
	total := 0
	for _, sess := range s.TodaySessions() {
		if sess.Type == SessionFocus {
			total += sess.Duration
		}
	}
	return total
}

// TodaySessionCount is the completed-pomodoros-today metric: today's
// focus-type sessions only.
func (s *FocusSessionStore) TodaySessionCount() int {
	n := 0
	for _, sess := range s.TodaySessions() {
		if sess.Type == SessionFocus {
			n++
		}
	}
	return n
}

// WeeklyStats returns exactly 7 entries for the last 7 calendar days ending
// today, oldest first. Each entry carries the day's short weekday name and
// its focus minutes, 0 for days without sessions.
func (s *FocusSessionStore) WeeklyStats() []DayStat {
	today := s.dayStart()

	byDate := make(map[string]int) // date -> focus seconds
	for _, sess := range s.sessions {
		if sess.Type == SessionFocus {
			byDate[sess.CompletedAt.Format(dateLayout)] += sess.Duration
		}
	}

	stats := make([]DayStat, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		secs := byDate[day.Format(dateLayout)]
		stats = append(stats, DayStat{
			Day:     day.Format("Mon"),
			Minutes: (secs + 30) / 60,
		})
	}
	return stats
}

// SubjectBreakdown groups today's focus sessions by subject, sorted
// descending by minutes. It intentionally covers only the current day so
// the chart resets each morning.
func (s *FocusSessionStore) SubjectBreakdown() []SubjectStat {
	bySubject := make(map[string]int) // subject -> focus seconds
	var order []string
	for _, sess := range s.TodaySessions() {
		if sess.Type != SessionFocus {
			continue
		}
		if _, seen := bySubject[sess.Subject]; !seen {
			order = append(order, sess.Subject)
		}
		bySubject[sess.Subject] += sess.Duration
	}

	stats := make([]SubjectStat, 0, len(order))
	for _, subject := range order {
		stats = append(stats, SubjectStat{
			Subject: subject,
			Minutes: (bySubject[subject] + 30) / 60,
			Color:   SubjectColor(subject),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Minutes > stats[j].Minutes
	})
	return stats
}

// updateStreak runs after every AddSession. Same-day sessions never
// double-increment; a gap of two or more days restarts the streak at 1.
func (s *FocusSessionStore) updateStreak() {
	if s.TodaySessionCount() == 0 {
		// Break-only day: neither extends nor breaks the streak.
		return
	}

	today := s.today()
	yesterday := s.dayStart().AddDate(0, 0, -1).Format(dateLayout)

	switch {
	case s.lastStudyDate == "" || s.lastStudyDate == today:
		s.lastStudyDate = today
		s.currentStreak = max(s.currentStreak, 1)
	case s.lastStudyDate == yesterday:
		s.currentStreak++
		s.lastStudyDate = today
	default:
		s.currentStreak = 1
		s.lastStudyDate = today
	}
}

func (s *FocusSessionStore) today() string {
	return s.now().Format(dateLayout)
}

func (s *FocusSessionStore) dayStart() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *FocusSessionStore) persist() {
	b, _ := json.Marshal(focusEnvelope{
		Version:       1,
		Sessions:      s.sessions,
		CurrentStreak: s.currentStreak,
		LastStudyDate: s.lastStudyDate,
	})
	s.kv.Set(focusKey, string(b))
}
