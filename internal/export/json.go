package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/studydesk/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Sessions   []jsonSession `json:"sessions"`
	Tasks      []jsonTask    `json:"tasks"`
}

type jsonSession struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Type        string `json:"type"`
	DurationSec int    `json:"duration_seconds"`
	Duration    string `json:"duration"`
	CompletedAt string `json:"completed_at"`
}

type jsonTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

// ToJSON writes the session log and task list to a pretty-printed JSON file.
func ToJSON(sessions []store.FocusSession, tasks []store.CalendarTask, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, s := range sessions {
		export.Sessions = append(export.Sessions, jsonSession{
			ID:          s.ID,
			Subject:     s.Subject,
			Type:        string(s.Type),
			DurationSec: s.Duration,
			Duration:    formatDuration(s.Duration),
			CompletedAt: s.CompletedAt.Local().Format(time.RFC3339),
		})
	}
	for _, t := range tasks {
		export.Tasks = append(export.Tasks, jsonTask{
			ID:        t.ID,
			Title:     t.Title,
			Date:      t.Date,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt.Local().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
