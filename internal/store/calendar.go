package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/studydesk/internal/storage"
)

const calendarKey = "calendar-storage"

type calendarEnvelope struct {
	Version int            `json:"version"`
	Tasks   []CalendarTask `json:"tasks"`
}

// TaskCalendarStore owns the flat list of calendar tasks and answers
// date-bucketed queries. Every mutation writes the whole collection back to
// storage before returning.
type TaskCalendarStore struct {
	kv    storage.KV
	now   func() time.Time
	tasks []CalendarTask
}

// NewTaskCalendarStore hydrates the task list from storage.
func NewTaskCalendarStore(kv storage.KV) *TaskCalendarStore {
	s := &TaskCalendarStore{kv: kv, now: time.Now}
	if raw, ok := kv.Get(calendarKey); ok {
		var env calendarEnvelope
		if err := json.Unmarshal([]byte(raw), &env); err == nil {
			s.tasks = env.Tasks
		}
	}
	return s
}

// SetNowFunc overrides the clock used for createdAt stamps. Passing nil
// resets it to time.Now.
func (s *TaskCalendarStore) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// AddTask appends a new incomplete task for the given YYYY-MM-DD date.
// Title validation is the caller's job; the store never rejects input.
func (s *TaskCalendarStore) AddTask(title, date string) {
	s.tasks = append(s.tasks, CalendarTask{
		ID:        uuid.NewString(),
		Title:     title,
		Date:      date,
		Completed: false,
		CreatedAt: s.now(),
	})
	s.persist()
}

// ToggleTask flips the completed flag. Unknown ids are a silent no-op.
func (s *TaskCalendarStore) ToggleTask(id string) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.persist()
			return
		}
	}
}

// DeleteTask removes a task permanently. Unknown ids are a silent no-op.
func (s *TaskCalendarStore) DeleteTask(id string) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persist()
			return
		}
	}
}

// UpdateTask replaces a task's title. Unknown ids are a silent no-op.
func (s *TaskCalendarStore) UpdateTask(id, newTitle string) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Title = newTitle
			s.persist()
			return
		}
	}
}

// Tasks returns the whole collection in insertion order.
func (s *TaskCalendarStore) Tasks() []CalendarTask {
	return s.tasks
}

// TasksByDate returns the tasks for a YYYY-MM-DD date in insertion order.
func (s *TaskCalendarStore) TasksByDate(date string) []CalendarTask {
	var out []CalendarTask
	for _, t := range s.tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// TaskCountByDate reports how many tasks fall on a date without
// materializing the filtered slice.
func (s *TaskCalendarStore) TaskCountByDate(date string) int {
	n := 0
	for _, t := range s.tasks {
		if t.Date == date {
			n++
		}
	}
	return n
}

func (s *TaskCalendarStore) persist() {
	b, _ := json.Marshal(calendarEnvelope{Version: 1, Tasks: s.tasks})
	s.kv.Set(calendarKey, string(b))
}
