package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// calendarModel shows one day of tasks at a time and edits them through
// the calendar store.
type calendarModel struct {
	stores Stores
	width  int
	height int

	selected time.Time // day being viewed
	cursor   int

	formActive bool
	form       *huh.Form
	formTitle  *string
	editingID  string // task being edited, "" while creating
}

func newCalendarModel(st Stores) calendarModel {
	title := ""
	return calendarModel{
		stores:    st,
		selected:  time.Now(),
		formTitle: &title,
	}
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c calendarModel) dateStr() string {
	return c.selected.Format("2006-01-02")
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		tasks := c.stores.Calendar.TasksByDate(c.dateStr())
		switch {
		case key.Matches(msg, keys.Left):
			c.selected = c.selected.AddDate(0, 0, -1)
			c.cursor = 0
		case key.Matches(msg, keys.Right):
			c.selected = c.selected.AddDate(0, 0, 1)
			c.cursor = 0
		case key.Matches(msg, keys.Today):
			c.selected = time.Now()
			c.cursor = 0
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(tasks)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if c.cursor < len(tasks) {
				c.stores.Calendar.ToggleTask(tasks[c.cursor].ID)
			}
		case key.Matches(msg, keys.Delete):
			if c.cursor < len(tasks) {
				c.stores.Calendar.DeleteTask(tasks[c.cursor].ID)
				if c.cursor > 0 {
					c.cursor--
				}
			}
		case key.Matches(msg, keys.New):
			return c.showTaskForm("", "")
		case key.Matches(msg, keys.Edit):
			if c.cursor < len(tasks) {
				return c.showTaskForm(tasks[c.cursor].ID, tasks[c.cursor].Title)
			}
		}
	}
	return c, nil
}

func (c calendarModel) showTaskForm(id, title string) (calendarModel, tea.Cmd) {
	*c.formTitle = title
	c.editingID = id

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(c.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c calendarModel) updateForm(msg tea.Msg) (calendarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		title := strings.TrimSpace(*c.formTitle)
		if title != "" {
			if c.editingID == "" {
				c.stores.Calendar.AddTask(title, c.dateStr())
			} else {
				c.stores.Calendar.UpdateTask(c.editingID, title)
			}
		}
		return c, nil
	}

	return c, cmd
}

func (c calendarModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Task")
		if c.editingID != "" {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View())
		return panelStyle.Width(w).Render(content)
	}

	dayLabel := c.selected.Format("Monday, Jan 02 2006")
	if c.dateStr() == time.Now().Format("2006-01-02") {
		dayLabel += "  " + highlightStyle.Render("(today)")
	}
	count := c.stores.Calendar.TaskCountByDate(c.dateStr())
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Calendar"), "  ",
		dayLabel, "  ",
		mutedStyle.Render(fmt.Sprintf("%d tasks", count)),
	)

	tasks := c.stores.Calendar.TasksByDate(c.dateStr())

	var rows []string
	rows = append(rows, header, "")
	if len(tasks) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing planned. Press n to add a task."))
	}
	for i, t := range tasks {
		check := "☐"
		style := normalItemStyle
		if t.Completed {
			check = "☑"
			style = doneItemStyle
		}
		cursor := "  "
		if i == c.cursor {
			cursor = "> "
			if !t.Completed {
				style = selectedItemStyle
			}
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, check, style.Render(t.Title)))
	}

	rows = append(rows, "", mutedStyle.Render("  ←/→: day  t: today  n: new  e: edit  d: delete  enter: toggle"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
