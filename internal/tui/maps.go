package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/studydesk/internal/store"
)

var mapTemplates = []string{"Blank", "Study plan"}

// mapsModel is the mind-map library: the document list, a plain outline
// rendering of the open document, and create/rename/delete flows. The
// drawing canvas itself lives outside the terminal; nodes are edited here
// only at the completion-flag level.
type mapsModel struct {
	stores Stores
	width  int
	height int

	viewingOutline bool
	cursor         int
	nodeCursor     int

	formActive   bool
	form         *huh.Form
	formName     *string
	formTemplate *string
	formType     string // "create" or "rename"
	renamingID   string
}

func newMapsModel(st Stores) mapsModel {
	name, tmpl := "", mapTemplates[0]
	return mapsModel{
		stores:       st,
		formName:     &name,
		formTemplate: &tmpl,
	}
}

func (m *mapsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m mapsModel) update(msg tea.Msg) (mapsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.viewingOutline {
			return m.updateOutline(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m mapsModel) updateList(msg tea.KeyMsg) (mapsModel, tea.Cmd) {
	docs := m.stores.Maps.MindMaps()
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(docs)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if m.cursor < len(docs) {
			m.stores.Maps.SetCurrentMap(docs[m.cursor].ID)
			m.viewingOutline = true
			m.nodeCursor = 0
		}
	case key.Matches(msg, keys.New):
		return m.showCreateForm()
	case key.Matches(msg, keys.Rename):
		if m.cursor < len(docs) {
			return m.showRenameForm(docs[m.cursor])
		}
	case key.Matches(msg, keys.Delete):
		if m.cursor < len(docs) {
			m.stores.Maps.DeleteMindMap(docs[m.cursor].ID)
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m mapsModel) updateOutline(msg tea.KeyMsg) (mapsModel, tea.Cmd) {
	doc := m.stores.Maps.CurrentMap()
	if doc == nil {
		m.viewingOutline = false
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		m.viewingOutline = false
	case key.Matches(msg, keys.Up):
		if m.nodeCursor > 0 {
			m.nodeCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.nodeCursor < len(doc.Nodes)-1 {
			m.nodeCursor++
		}
	case key.Matches(msg, keys.Enter):
		if m.nodeCursor < len(doc.Nodes) {
			// Whole-graph replace, the only write path the store offers.
			nodes := make([]store.MapNode, len(doc.Nodes))
			copy(nodes, doc.Nodes)
			nodes[m.nodeCursor].Complete = !nodes[m.nodeCursor].Complete
			m.stores.Maps.SaveMindMap(doc.ID, nodes, doc.Edges)
		}
	}
	return m, nil
}

func (m mapsModel) showCreateForm() (mapsModel, tea.Cmd) {
	*m.formName = ""
	*m.formTemplate = mapTemplates[0]
	m.formType = "create"

	tmplOptions := make([]huh.Option[string], len(mapTemplates))
	for i, t := range mapTemplates {
		tmplOptions[i] = huh.NewOption(t, t)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Map Name").Value(m.formName),
			huh.NewSelect[string]().Title("Template").Options(tmplOptions...).Value(m.formTemplate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m mapsModel) showRenameForm(doc store.MindMapDocument) (mapsModel, tea.Cmd) {
	*m.formName = doc.Name
	m.formType = "rename"
	m.renamingID = doc.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Map Name").Value(m.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m mapsModel) updateForm(msg tea.Msg) (mapsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		name := strings.TrimSpace(*m.formName)
		if name != "" {
			switch m.formType {
			case "create":
				nodes, edges := templateGraph(*m.formTemplate, name)
				m.stores.Maps.CreateMindMap(name, nodes, edges)
			case "rename":
				m.stores.Maps.RenameMindMap(m.renamingID, name)
			}
		}
		return m, nil
	}

	return m, cmd
}

// templateGraph seeds the graph for a template choice. The blank template
// returns nil so the store synthesizes its default root node.
func templateGraph(template, name string) ([]store.MapNode, []store.MapEdge) {
	if template != "Study plan" {
		return nil, nil
	}

	root := store.MapNode{ID: uuid.NewString(), X: 400, Y: 300, Label: name, Color: store.NodeColor("topic")}
	review := store.MapNode{ID: uuid.NewString(), X: 200, Y: 450, Label: "Review notes", Color: store.NodeColor("subtopic")}
	practice := store.MapNode{ID: uuid.NewString(), X: 400, Y: 450, Label: "Practice problems", Color: store.NodeColor("subtopic")}
	mock := store.MapNode{ID: uuid.NewString(), X: 600, Y: 450, Label: "Mock exam", Color: store.NodeColor("subtopic")}

	nodes := []store.MapNode{root, review, practice, mock}
	edges := []store.MapEdge{
		{ID: uuid.NewString(), Source: root.ID, Target: review.ID},
		{ID: uuid.NewString(), Source: root.ID, Target: practice.ID},
		{ID: uuid.NewString(), Source: root.ID, Target: mock.ID},
	}
	return nodes, edges
}

func (m mapsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Mind Map")
		if m.formType == "rename" {
			title = titleStyle.Render("Rename Mind Map")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	if m.viewingOutline {
		return m.renderOutline(w)
	}
	return m.renderList(w)
}

func (m mapsModel) renderList(w int) string {
	title := titleStyle.Render("Mind Maps")
	docs := m.stores.Maps.MindMaps()

	var rows []string
	rows = append(rows, title, "")

	if len(docs) == 0 {
		rows = append(rows, mutedStyle.Render("  No maps yet. Press n to create one."))
	} else {
		current := m.stores.Maps.CurrentMap()
		for i, doc := range docs {
			cursor := "  "
			style := normalItemStyle
			if i == m.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			marker := " "
			if current != nil && current.ID == doc.ID {
				marker = highlightStyle.Render("•")
			}
			row := fmt.Sprintf("%s%s %-28s %s", cursor, marker,
				style.Render(doc.Name),
				mutedStyle.Render(fmt.Sprintf("%d nodes · %s", len(doc.Nodes), doc.UpdatedAt.Local().Format("Jan 02 15:04"))),
			)
			rows = append(rows, row)
		}
	}

	rows = append(rows, "", mutedStyle.Render("  enter: open  n: new  r: rename  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m mapsModel) renderOutline(w int) string {
	doc := m.stores.Maps.CurrentMap()
	if doc == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("No map open"))
	}

	// Count outgoing edges per node for the outline annotation.
	outgoing := make(map[string]int)
	for _, e := range doc.Edges {
		outgoing[e.Source]++
	}

	var rows []string
	rows = append(rows, titleStyle.Render(doc.Name), "")
	for i, n := range doc.Nodes {
		check := "○"
		style := normalItemStyle
		if n.Complete {
			check = "●"
			style = doneItemStyle
		}
		cursor := "  "
		if i == m.nodeCursor {
			cursor = "> "
			if !n.Complete {
				style = selectedItemStyle
			}
		}
		label := style.Render(n.Label)
		if c := outgoing[n.ID]; c > 0 {
			label += mutedStyle.Render(fmt.Sprintf("  (%d branches)", c))
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, check, label))
		if n.Notes != "" && i == m.nodeCursor {
			rows = append(rows, mutedStyle.Render("      "+n.Notes))
		}
	}

	rows = append(rows, "", mutedStyle.Render("  enter: toggle done  esc: back"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
