package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/idilsaglam/board/internal/model"
)

// detailMarkdown is the card shown by the view key. Descriptions may use markdown.
func detailMarkdown(p model.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**%s** · %s · `%s`\n\n", p.PeopleLabel(), p.Status, p.ShortID())
	b.WriteString(p.Description)
	b.WriteString("\n")
	return b.String()
}

func renderDetail(p model.Project, width int) string {
	md := detailMarkdown(p)
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
