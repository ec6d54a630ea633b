package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studydesk/internal/store"
)

type focusPhase int

const (
	focusIdle focusPhase = iota
	focusWork
	focusShortBreak
	focusLongBreak
)

var phaseNames = map[focusPhase]string{
	focusIdle:       "IDLE",
	focusWork:       "FOCUS",
	focusShortBreak: "SHORT BREAK",
	focusLongBreak:  "LONG BREAK",
}

// focusModel runs the countdown timer. The timer itself owns no durable
// state: whenever an interval elapses it reports the finished session to
// the focus store and moves on.
type focusModel struct {
	stores Stores
	width  int
	height int

	phase          focusPhase
	completedCount int // focus intervals finished this sitting
	subject        string

	remaining time.Duration
	phaseEnd  time.Time

	picking      bool
	pickerCursor int
}

func newFocusModel(st Stores) focusModel {
	return focusModel{
		stores:  st,
		phase:   focusIdle,
		subject: store.Subjects[0],
	}
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f focusModel) active() bool {
	return f.phase != focusIdle
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if f.active() {
			f.remaining = time.Until(f.phaseEnd)
			if f.remaining <= 0 {
				return f.advancePhase()
			}
		}
		return f, nil

	case tea.KeyMsg:
		if f.picking {
			return f.updatePicker(msg)
		}
		switch {
		case key.Matches(msg, keys.Start):
			if f.phase == focusIdle {
				f.picking = true
				f.pickerCursor = 0
				return f, nil
			}
		case key.Matches(msg, keys.Stop):
			if f.active() {
				// Abandoned interval: nothing is logged.
				f.phase = focusIdle
				f.remaining = 0
				f.completedCount = 0
				return f, func() tea.Msg {
					return statusMsg{text: "Timer stopped"}
				}
			}
		case key.Matches(msg, keys.Skip):
			// Skipped break is not a completed interval either.
			if f.phase == focusShortBreak || f.phase == focusLongBreak {
				return f.startWorkPhase(), nil
			}
		}
	}
	return f, nil
}

func (f focusModel) updatePicker(msg tea.KeyMsg) (focusModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if f.pickerCursor > 0 {
			f.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if f.pickerCursor < len(store.Subjects)-1 {
			f.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		f.subject = store.Subjects[f.pickerCursor]
		f.picking = false
		f.completedCount = 0
		return f.startWorkPhase(), func() tea.Msg {
			return statusMsg{text: "Focus session started"}
		}
	case key.Matches(msg, keys.Back):
		f.picking = false
	}
	return f, nil
}

func (f focusModel) startWorkPhase() focusModel {
	d := f.stores.Settings.FocusDuration()
	f.phase = focusWork
	f.remaining = d
	f.phaseEnd = time.Now().Add(d)
	return f
}

// advancePhase fires when the countdown hits zero. The elapsed interval is
// recorded with its configured duration, then the next phase begins.
func (f focusModel) advancePhase() (focusModel, tea.Cmd) {
	cfg := f.stores.Settings.Timer()

	switch f.phase {
	case focusWork:
		f.stores.Focus.AddSession(f.subject, cfg.FocusSeconds, store.SessionFocus)
		f.completedCount++

		var d time.Duration
		if cfg.LongBreakInterval > 0 && f.completedCount%cfg.LongBreakInterval == 0 {
			f.phase = focusLongBreak
			d = f.stores.Settings.LongBreakDuration()
		} else {
			f.phase = focusShortBreak
			d = f.stores.Settings.ShortBreakDuration()
		}
		f.remaining = d
		f.phaseEnd = time.Now().Add(d)
		return f, tea.Batch(
			func() tea.Msg { return sessionLoggedMsg{session: store.SessionFocus} },
			func() tea.Msg { return statusMsg{text: "Pomodoro complete — break time! \a"} },
		)

	case focusShortBreak:
		f.stores.Focus.AddSession(f.subject, cfg.ShortBreakSeconds, store.SessionShortBreak)
		return f.startWorkPhase(), func() tea.Msg {
			return sessionLoggedMsg{session: store.SessionShortBreak}
		}

	case focusLongBreak:
		f.stores.Focus.AddSession(f.subject, cfg.LongBreakSeconds, store.SessionLongBreak)
		return f.startWorkPhase(), func() tea.Msg {
			return sessionLoggedMsg{session: store.SessionLongBreak}
		}
	}
	return f, nil
}

func (f focusModel) view() string {
	w := f.width - 4

	if f.picking {
		return f.renderSubjectPicker(w)
	}

	title := titleStyle.Render("Focus Timer")

	var timeDisplay, phaseLabel, indicator string
	switch f.phase {
	case focusIdle:
		timeDisplay = timerStyle.Width(w - 6).Render(formatCountdown(f.stores.Settings.FocusDuration()))
		phaseLabel = mutedStyle.Render("Ready to start")
		indicator = mutedStyle.Render("Press s to pick a subject and begin")
	case focusWork:
		timeDisplay = accentStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(f.remaining))
		phaseLabel = accentStyle.Bold(true).Render(phaseNames[f.phase])
		indicator = highlightStyle.Render(f.subject)
	case focusShortBreak, focusLongBreak:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(f.remaining))
		phaseLabel = successStyle.Bold(true).Render(phaseNames[f.phase])
		indicator = mutedStyle.Render("Step away from the desk")
	}

	today := fmt.Sprintf("today: %s focused · %d pomodoros · streak %d",
		formatFocusTime(f.stores.Focus.TodayFocusTime()),
		f.stores.Focus.TodaySessionCount(),
		f.stores.Focus.Streak(),
	)

	var controls string
	switch f.phase {
	case focusIdle:
		controls = mutedStyle.Render("s: start  q: quit")
	case focusWork:
		controls = mutedStyle.Render("x: stop")
	case focusShortBreak, focusLongBreak:
		controls = mutedStyle.Render("space: skip break  x: stop")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
		indicator,
		"",
		mutedStyle.Render(today),
		"",
		controls,
	)

	return panelStyle.Width(w).Render(content)
}

func (f focusModel) renderSubjectPicker(w int) string {
	title := titleStyle.Render("What are you studying?")

	var rows []string
	rows = append(rows, title, "")
	for i, subject := range store.Subjects {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(store.SubjectColor(subject))).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == f.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, dot, subject)))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: start  esc: cancel"))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
