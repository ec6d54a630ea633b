package store

import (
	"testing"

	"github.com/sadopc/studydesk/internal/storage"
)

func newTestKV(t *testing.T) *storage.Store {
	t.Helper()
	kv, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("new memory storage: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestAddTask(t *testing.T) {
	s := NewTaskCalendarStore(newTestKV(t))
	s.AddTask("Read chapter 4", "2026-03-10")

	tasks := s.TasksByDate("2026-03-10")
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Title != "Read chapter 4" || task.Date != "2026-03-10" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.Completed {
		t.Fatal("new task should start incomplete")
	}
	if task.ID == "" {
		t.Fatal("expected a fresh id")
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("expected createdAt stamp")
	}
}

func TestAddTaskUniqueIDs(t *testing.T) {
	s := NewTaskCalendarStore(newTestKV(t))
	s.AddTask("a", "2026-03-10")
	s.AddTask("b", "2026-03-10")

	tasks := s.TasksByDate("2026-03-10")
	if tasks[0].ID == tasks[1].ID {
		t.Fatal("duplicate task ids")
	}
}

func TestToggleTaskIdempotentPair(t *testing.T) {
	s := NewTaskCalendarStore(newTestKV(t))
	s.AddTask("a", "2026-03-10")
	id := s.TasksByDate("2026-03-10")[0].ID

	s.ToggleTask(id)
	if !s.TasksByDate("2026-03-10")[0].Completed {
		t.Fatal("first toggle should complete the task")
	}
	s.ToggleTask(id)
	if s.TasksByDate("2026-03-10")[0].Completed {
		t.Fatal("second toggle should return to incomplete")
	}
}

func TestToggleTaskUnknownID(t *testing.T) {
	s := NewTaskCalendarStore(newTestKV(t))
	s.AddTask("a", "2026-03-10")

	// Silent no-op
	s.ToggleTask("missing")
	if s.TasksByDate("2026-03-10")[0].Completed {
		t.Fatal("no task should have been toggled")
	}
}

func TestDeleteTask(t *testing.T) {
	s := NewTaskCalendarStore(newTestKV(t))
	s.AddTask("a", "2026-03-10")
	s.AddTask("b", "2026-03-10")
	id := s.TasksByDate("2026-03-10")[0].ID

	s.DeleteTask(id)
	tasks := s.TasksByDate("2026-03-10")
	if len(tasks) != 1 || tasks[0].Title != "b" {
		t.Fatalf("unexpected tasks after delete: %+v", tasks)
	}

	s.DeleteTask("missing") // no-op
	if s.TaskCountByDate("2026-03-10") != 1 {
		t.Fatal("delete of unknown id should not remove anything")
	}
}

func TestUpdateTask(t *testing.T) {
	s := NewTaskCalendarStore(newTestKV(t))
	s.AddTask("draft", "2026-03-10")
	id := s.TasksByDate("2026-03-10")[0].ID

	s.UpdateTask(id, "final")
	if got := s.TasksByDate("2026-03-10")[0].Title; got != "final" {
		t.Fatalf("expected updated title, got %q", got)
	}

	s.UpdateTask("missing", "x") // no-op
	if got := s.TasksByDate("2026-03-10")[0].Title; got != "final" {
		t.Fatalf("unknown id update should not touch tasks, got %q", got)
	}
}

func TestTasksByDateBucketing(t *testing.T) {
	s := NewTaskCalendarStore(newTestKV(t))
	s.AddTask("mon-1", "2026-03-09")
	s.AddTask("tue-1", "2026-03-10")
	s.AddTask("mon-2", "2026-03-09")

	mon := s.TasksByDate("2026-03-09")
	if len(mon) != 2 {
		t.Fatalf("expected 2 tasks on 2026-03-09, got %d", len(mon))
	}
	// Insertion order within the day
	if mon[0].Title != "mon-1" || mon[1].Title != "mon-2" {
		t.Fatalf("insertion order lost: %+v", mon)
	}
	if s.TaskCountByDate("2026-03-09") != len(mon) {
		t.Fatal("count disagrees with filtered list")
	}
	if s.TaskCountByDate("2026-03-11") != 0 {
		t.Fatal("empty day should count 0")
	}
	if got := s.TasksByDate("2026-03-11"); len(got) != 0 {
		t.Fatalf("empty day should return no tasks, got %+v", got)
	}
}

func TestCalendarRoundTrip(t *testing.T) {
	kv := newTestKV(t)

	s := NewTaskCalendarStore(kv)
	s.AddTask("persist me", "2026-03-10")
	s.ToggleTask(s.TasksByDate("2026-03-10")[0].ID)
	want := s.TasksByDate("2026-03-10")[0]

	// A fresh store over the same storage must hydrate identical state.
	s2 := NewTaskCalendarStore(kv)
	tasks := s2.TasksByDate("2026-03-10")
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task after reload, got %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != want.ID || got.Title != want.Title || got.Date != want.Date || got.Completed != want.Completed {
		t.Fatalf("reloaded task differs:\nwant %+v\ngot  %+v", want, got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("createdAt differs: want %v got %v", want.CreatedAt, got.CreatedAt)
	}
}
