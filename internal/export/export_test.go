package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/studydesk/internal/store"
)

func sampleData() ([]store.FocusSession, []store.CalendarTask) {
	done := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.Local)
	sessions := []store.FocusSession{
		{ID: "s1", Subject: "Math", Duration: 1500, Type: store.SessionFocus, CompletedAt: done},
		{ID: "s2", Subject: "Math", Duration: 300, Type: store.SessionShortBreak, CompletedAt: done.Add(25 * time.Minute)},
	}
	tasks := []store.CalendarTask{
		{ID: "t1", Title: "Review notes", Date: "2026-03-10", Completed: true, CreatedAt: done},
	}
	return sessions, tasks
}

func TestToCSV(t *testing.T) {
	sessions, _ := sampleData()
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := ToCSV(sessions, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 { // header + 2 sessions
		t.Fatalf("expected 3 rows, got %d", len(records))
	}
	if records[0][0] != "ID" {
		t.Fatalf("missing header: %v", records[0])
	}
	if records[1][1] != "Math" || records[1][2] != "focus" || records[1][3] != "1500" {
		t.Fatalf("unexpected row: %v", records[1])
	}
	if records[1][4] != "00:25:00" {
		t.Fatalf("unexpected formatted duration: %v", records[1][4])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}

func TestToCSVBadPath(t *testing.T) {
	sessions, _ := sampleData()
	if err := ToCSV(sessions, "/nonexistent-dir/out.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSON(t *testing.T) {
	sessions, tasks := sampleData()
	path := filepath.Join(t.TempDir(), "out.json")

	if err := ToJSON(sessions, tasks, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var export jsonExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(export.Sessions) != 2 || len(export.Tasks) != 1 {
		t.Fatalf("unexpected export: %+v", export)
	}
	if export.Sessions[0].Subject != "Math" || export.Sessions[0].Duration != "00:25:00" {
		t.Fatalf("unexpected session: %+v", export.Sessions[0])
	}
	if export.Tasks[0].Date != "2026-03-10" || !export.Tasks[0].Completed {
		t.Fatalf("unexpected task: %+v", export.Tasks[0])
	}
	if _, err := time.Parse(time.RFC3339, export.ExportedAt); err != nil {
		t.Fatalf("bad exported_at stamp: %v", err)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var export jsonExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatal(err)
	}
	if len(export.Sessions) != 0 || len(export.Tasks) != 0 {
		t.Fatalf("expected empty export, got %+v", export)
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	sessions, tasks := sampleData()
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(sessions, tasks, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("expected indented output")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		secs int
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{1500, "00:25:00"},
		{3661, "01:01:01"},
	}
	for _, c := range cases {
		if got := formatDuration(c.secs); got != c.want {
			t.Errorf("formatDuration(%d) = %q, want %q", c.secs, got, c.want)
		}
	}
}
