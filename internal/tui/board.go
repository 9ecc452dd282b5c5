// Package tui is the interactive terminal board.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/board/internal/model"
	"github.com/idilsaglam/board/internal/state"
	"github.com/idilsaglam/board/internal/ui"
	"github.com/idilsaglam/board/internal/validate"
)

type mode int

const (
	modeBoard mode = iota
	modeForm
	modeDetail
)

// column is one status list. It re-derives its cards from every snapshot.
type column struct {
	status model.Status
	list   list.Model
}

// drag is a card that has been picked up and not dropped yet.
type drag struct {
	id    string
	title string
	from  int
}

// Model is the root Bubble Tea model of the board.
type Model struct {
	board *state.Projects
	rules validate.Rules
	inbox *mailbox

	keys KeyMap
	help help.Model

	items  []model.Project // last snapshot
	cols   [2]column
	focus  int
	drag   *drag
	follow string // card to select once the next snapshot lands

	mode   mode
	form   form
	detail string

	width, height int
	status        string
}

// New builds a board view over p. It does not subscribe; Run does.
func New(p *state.Projects, rules validate.Rules) Model {
	m := Model{
		board:  p,
		rules:  rules,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		form:   newForm(),
		width:  80,
		height: 24,
	}
	m.help.Styles.ShortKey = helpStyle
	m.help.Styles.ShortDesc = helpStyle
	for i, st := range []model.Status{model.Active, model.Finished} {
		l := list.New(nil, cardDelegate{}, 0, 0)
		l.Title = ui.BucketTitle(st)
		l.Styles.Title = titleStyle
		l.SetShowHelp(false)
		l.SetFilteringEnabled(false)
		l.SetShowStatusBar(true)
		l.SetStatusBarItemName("project", "projects")
		l.DisableQuitKeybindings()
		m.cols[i] = column{status: st, list: l}
	}
	m.resize()
	m.apply(p.Snapshot())
	return m
}

// Run subscribes a board view to p and blocks until the user quits.
func Run(p *state.Projects, rules validate.Rules) error {
	inbox := newMailbox()
	unsubscribe := p.Watch(inbox.put)
	defer unsubscribe()
	defer inbox.close()

	m := New(p, rules)
	m.inbox = inbox
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	if m.inbox == nil {
		return nil
	}
	return m.inbox.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case snapshotMsg:
		m.apply(msg)
		if m.inbox != nil {
			return m, m.inbox.wait()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeDetail:
			if key.Matches(msg, m.keys.Cancel, m.keys.View, m.keys.Quit) {
				m.mode = modeBoard
				m.detail = ""
			}
			return m, nil
		}
		return m.updateBoard(msg)
	}

	if m.mode == modeForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		m.focus = (m.focus + len(m.cols) - 1) % len(m.cols)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.focus = (m.focus + 1) % len(m.cols)
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Add):
		if m.drag != nil {
			return m, nil
		}
		m.mode = modeForm
		m.status = ""
		return m, m.form.open()

	case key.Matches(msg, m.keys.View):
		if c, ok := m.selected(); ok {
			m.mode = modeDetail
			m.detail = renderDetail(c.project, m.width-4)
		}
		return m, nil

	case key.Matches(msg, m.keys.Grab):
		if m.drag != nil {
			return m, nil
		}
		if c, ok := m.selected(); ok {
			m.drag = &drag{id: c.project.ID, title: c.project.Title, from: m.focus}
			m.status = fmt.Sprintf("picked up %q; move to a list and press enter", c.project.Title)
			m.render()
		}
		return m, nil

	case key.Matches(msg, m.keys.Drop):
		if m.drag == nil {
			return m, nil
		}
		d := *m.drag
		m.drag = nil
		target := m.cols[m.focus].status
		m.board.MoveProject(d.id, target)
		if d.from == m.focus {
			m.status = ""
		} else {
			m.status = fmt.Sprintf("moved %q to %s", d.title, target)
			m.follow = d.id
		}
		m.render()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.drag != nil {
			m.focus = m.drag.from
			m.drag = nil
			m.status = ""
			m.render()
		}
		return m, nil

	case key.Matches(msg, m.keys.Move):
		if m.drag != nil {
			return m, nil
		}
		if c, ok := m.selected(); ok {
			target := c.project.Status.Other()
			m.board.MoveProject(c.project.ID, target)
			m.status = fmt.Sprintf("moved %q to %s", c.project.Title, target)
		}
		return m, nil
	}

	var cmd tea.Cmd
	col := &m.cols[m.focus]
	col.list, cmd = col.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.clear()
		m.mode = modeBoard
		return m, nil
	case "tab", "down":
		return m, m.form.cycle(1)
	case "shift+tab", "up":
		return m, m.form.cycle(-1)
	case "enter":
		title, desc, people, err := m.form.values(m.rules)
		if err != nil {
			m.form.errs = validate.Messages(err)
			return m, nil
		}
		m.board.AddProject(title, desc, people)
		m.form.clear()
		m.mode = modeBoard
		m.focus = 0
		m.status = fmt.Sprintf("added %q", title)
		return m, nil
	}
	return m, m.form.update(msg)
}

// apply takes a new snapshot and re-derives both lists from it.
func (m *Model) apply(items []model.Project) {
	m.items = items
	if m.drag != nil {
		if _, ok := find(items, m.drag.id); !ok {
			m.drag = nil
		}
	}
	m.render()
	if m.follow != "" {
		col := &m.cols[m.focus]
		for i, it := range col.list.Items() {
			if c, ok := it.(card); ok && c.project.ID == m.follow {
				col.list.Select(i)
				break
			}
		}
		m.follow = ""
	}
}

// render rebuilds the cards of each column from the last snapshot,
// keeping each column's selection on the same card where possible.
func (m *Model) render() {
	for i := range m.cols {
		col := &m.cols[i]
		prevID := ""
		if c, ok := col.list.SelectedItem().(card); ok {
			prevID = c.project.ID
		}
		prevIdx := col.list.Index()

		bucket := state.Filter(m.items, col.status)
		cards := make([]list.Item, 0, len(bucket))
		sel := -1
		for j, p := range bucket {
			c := card{project: p, dragging: m.drag != nil && m.drag.id == p.ID}
			if p.ID == prevID {
				sel = j
			}
			cards = append(cards, c)
		}
		col.list.SetItems(cards)
		if sel < 0 {
			sel = min(prevIdx, len(cards)-1)
		}
		col.list.Select(max(sel, 0))
	}
}

func (m *Model) resize() {
	colWidth := (m.width - 2) / 2
	listHeight := m.height - 6
	if listHeight < 4 {
		listHeight = 4
	}
	for i := range m.cols {
		m.cols[i].list.SetSize(colWidth-4, listHeight)
	}
	m.help.Width = m.width
}

func (m Model) selected() (card, bool) {
	c, ok := m.cols[m.focus].list.SelectedItem().(card)
	return c, ok
}

func find(items []model.Project, id string) (model.Project, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Project{}, false
}

func (m Model) View() string {
	if m.mode == modeDetail {
		return m.detail + "\n" + helpStyle.Render("esc back")
	}

	a, f := state.Counts(m.items)
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Projects"),
		pendingStyle.Render("•"), a,
		successStyle.Render("✔"), f,
		accentStyle.Render("Total"), len(m.items),
	)

	views := make([]string, len(m.cols))
	for i, col := range m.cols {
		style := columnStyle
		switch {
		case m.drag != nil && i == m.focus && i != m.drag.from:
			style = droppableColumnStyle
		case i == m.focus:
			style = focusedColumnStyle
		}
		views[i] = style.Render(col.list.View())
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views...))
	b.WriteString("\n")
	if m.mode == modeForm {
		b.WriteString(m.form.view())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
