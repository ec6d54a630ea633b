package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statsModel renders the 7-day focus history as a bar chart plus today's
// per-subject breakdown. All data is derived on demand from the focus
// store; the chart is rebuilt whenever the view activates or a session is
// logged.
type statsModel struct {
	stores Stores
	width  int
	height int

	chart barchart.Model
}

func newStatsModel(st Stores) statsModel {
	return statsModel{
		stores: st,
		chart:  barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.buildChart()
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg.(type) {
	case sessionLoggedMsg:
		s.buildChart()
		return s, nil
	}
	return s, nil
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, day := range s.stores.Focus.WeeklyStats() {
		style := barStyle
		if day.Minutes == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: day.Day,
			Values: []barchart.BarValue{{
				Name:  day.Day,
				Value: float64(day.Minutes),
				Style: style,
			}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ",
		mutedStyle.Render("last 7 days, focus minutes"),
	)

	streakLine := fmt.Sprintf("  streak: %s  ·  today: %s across %d pomodoros",
		highlightStyle.Render(fmt.Sprintf("%d days", s.stores.Focus.Streak())),
		formatFocusTime(s.stores.Focus.TodayFocusTime()),
		s.stores.Focus.TodaySessionCount(),
	)

	breakdown := s.renderBreakdown(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", s.chart.View(), "", streakLine, "", breakdown,
		),
	)
}

func (s statsModel) renderBreakdown(w int) string {
	stats := s.stores.Focus.SubjectBreakdown()
	if len(stats) == 0 {
		return mutedStyle.Render("  No focus sessions today")
	}

	var rows []string
	rows = append(rows, titleStyle.Render("  Today by subject"))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 40))))
	for _, st := range stats {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Color)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-16s %8s", dot, st.Subject, formatMinutes(st.Minutes)))
	}
	return strings.Join(rows, "\n")
}
