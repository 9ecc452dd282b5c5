package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/board/internal/model"
)

// card adapts a project to bubbles/list.Item
type card struct {
	project  model.Project
	dragging bool
}

func (c card) Title() string       { return c.project.Title }
func (c card) Description() string { return c.project.PeopleLabel() + " · " + c.project.Description }
func (c card) FilterValue() string { return c.project.Title }

// Custom delegate: title line plus a muted detail line.
type cardDelegate struct{}

func (d cardDelegate) Height() int                               { return 2 }
func (d cardDelegate) Spacing() int                              { return 1 }
func (d cardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(card)
	if !ok {
		return
	}
	width := m.Width() - 2
	if width < 10 {
		width = 10
	}

	title := truncate(c.project.Title, width)
	prefix := "  "
	switch {
	case c.dragging:
		prefix = draggingStyle.Render("⇄ ")
		title = draggingStyle.Render(title)
	case index == m.Index():
		prefix = selectedStyle.Render("> ")
	}
	bullet := pendingStyle.Render("•")
	if c.project.Status == model.Finished {
		bullet = successStyle.Render("✔")
	}
	fmt.Fprintf(w, "%s%s %s\n", prefix, bullet, title)
	fmt.Fprint(w, "    "+mutedStyle.Render(truncate(c.Description(), width-2)))
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
