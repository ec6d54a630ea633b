package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studydesk/internal/store"
)

// settingsModel edits the timer durations kept in the settings store.
type settingsModel struct {
	stores Stores
	width  int
	height int

	formActive   bool
	form         *huh.Form
	formFocus    *string
	formShort    *string
	formLong     *string
	formInterval *string
}

func newSettingsModel(st Stores) settingsModel {
	focus, short, long, interval := "", "", "", ""
	return settingsModel{
		stores:       st,
		formFocus:    &focus,
		formShort:    &short,
		formLong:     &long,
		formInterval: &interval,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func validateMinutes(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > 180 {
		return fmt.Errorf("enter minutes between 1 and 180")
	}
	return nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cfg := s.stores.Settings.Timer()
	*s.formFocus = strconv.Itoa(secsToMin(cfg.FocusSeconds))
	*s.formShort = strconv.Itoa(secsToMin(cfg.ShortBreakSeconds))
	*s.formLong = strconv.Itoa(secsToMin(cfg.LongBreakSeconds))
	*s.formInterval = strconv.Itoa(cfg.LongBreakInterval)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (minutes)").Value(s.formFocus).Validate(validateMinutes),
			huh.NewInput().Title("Short break (minutes)").Value(s.formShort).Validate(validateMinutes),
			huh.NewInput().Title("Long break (minutes)").Value(s.formLong).Validate(validateMinutes),
			huh.NewInput().Title("Long break every N pomodoros").Value(s.formInterval).Validate(func(v string) error {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil || n < 1 || n > 12 {
					return fmt.Errorf("enter a count between 1 and 12")
				}
				return nil
			}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false

		focus, _ := strconv.Atoi(strings.TrimSpace(*s.formFocus))
		short, _ := strconv.Atoi(strings.TrimSpace(*s.formShort))
		long, _ := strconv.Atoi(strings.TrimSpace(*s.formLong))
		interval, _ := strconv.Atoi(strings.TrimSpace(*s.formInterval))

		s.stores.Settings.SetTimer(store.TimerSettings{
			FocusSeconds:      minToSecs(focus),
			ShortBreakSeconds: minToSecs(short),
			LongBreakSeconds:  minToSecs(long),
			LongBreakInterval: interval,
		})
		return s, func() tea.Msg {
			return statusMsg{text: "Settings saved"}
		}
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Timer Settings"), "", s.form.View(),
		)
		return panelStyle.Width(w).Render(content)
	}

	cfg := s.stores.Settings.Timer()
	rows := []string{
		titleStyle.Render("Settings"),
		"",
		fmt.Sprintf("  %-30s %s", "Focus interval", highlightStyle.Render(fmt.Sprintf("%d min", secsToMin(cfg.FocusSeconds)))),
		fmt.Sprintf("  %-30s %s", "Short break", highlightStyle.Render(fmt.Sprintf("%d min", secsToMin(cfg.ShortBreakSeconds)))),
		fmt.Sprintf("  %-30s %s", "Long break", highlightStyle.Render(fmt.Sprintf("%d min", secsToMin(cfg.LongBreakSeconds)))),
		fmt.Sprintf("  %-30s %s", "Long break every", highlightStyle.Render(fmt.Sprintf("%d pomodoros", cfg.LongBreakInterval))),
		"",
		mutedStyle.Render("  enter: edit"),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
