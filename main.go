package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/studydesk/internal/storage"
	"github.com/sadopc/studydesk/internal/store"
	"github.com/sadopc/studydesk/internal/tui"
)

func main() {
	dbPath, err := storage.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(dbPath)
	defer logger.Sync()

	kv, err := storage.New(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	stores := tui.Stores{
		Calendar: store.NewTaskCalendarStore(kv),
		Focus:    store.NewFocusSessionStore(kv),
		Maps:     store.NewMindMapStore(kv),
		Settings: store.NewSettingsStore(kv),
	}

	app := tui.NewApp(stores)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes diagnostics to a file next to the database; stderr
// belongs to the TUI. Falls back to a no-op logger when the file can't be
// configured.
func newLogger(dbPath string) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(filepath.Dir(dbPath), "studydesk.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
