package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dashboardModel is the landing view: today's focus totals, the study
// streak, today's tasks, and the subject breakdown, all read live from the
// stores.
type dashboardModel struct {
	stores Stores
	width  int
	height int
}

func newDashboardModel(st Stores) dashboardModel {
	return dashboardModel{stores: st}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderTodayPanel(contentWidth),
		d.renderTasksPanel(contentWidth),
		d.renderBreakdownPanel(contentWidth),
	)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	focus := d.stores.Focus

	timeStr := highlightStyle.Bold(true).Render(formatFocusTime(focus.TodayFocusTime()))
	pomodoros := fmt.Sprintf("%d pomodoros", focus.TodaySessionCount())

	streak := mutedStyle.Render("no streak yet — start today")
	if focus.Streak() > 0 {
		streak = warningStyle.Render(fmt.Sprintf("🔥 %d day streak", focus.Streak()))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Today"),
		"",
		timeStr,
		mutedStyle.Render(pomodoros),
		streak,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTasksPanel(w int) string {
	today := time.Now().Format("2006-01-02")
	tasks := d.stores.Calendar.TasksByDate(today)

	title := titleStyle.Render("Today's Tasks")
	if len(tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing planned. Press 2 to open the calendar."),
		)
		return panelStyle.Width(w).Render(content)
	}

	done := 0
	var rows []string
	rows = append(rows, title)
	for _, t := range tasks {
		check := "☐"
		style := normalItemStyle
		if t.Completed {
			check = "☑"
			style = doneItemStyle
			done++
		}
		rows = append(rows, fmt.Sprintf("  %s %s", check, style.Render(t.Title)))
	}
	rows = append(rows, "", mutedStyle.Render(fmt.Sprintf("  %d/%d done", done, len(tasks))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderBreakdownPanel(w int) string {
	stats := d.stores.Focus.SubjectBreakdown()

	title := titleStyle.Render("Where the time went")
	if len(stats) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No focus sessions yet. Press 3 to start the timer."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, s := range stats {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-16s %8s", dot, s.Subject, formatMinutes(s.Minutes)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
