package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/board/internal/validate"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldPeople
	fieldCount
)

// form collects a new project's title, description and people count.
type form struct {
	inputs [fieldCount]textinput.Model
	focus  int
	errs   []string
}

func newForm() form {
	var f form
	labels := [fieldCount]struct{ prompt, placeholder string }{
		{"Title       > ", "What is the project called?"},
		{"Description > ", "At least a few words"},
		{"People      > ", "1-5"},
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = labels[i].prompt
		ti.Placeholder = labels[i].placeholder
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldPeople].CharLimit = 3
	return f
}

// open clears the inputs and focuses the title.
func (f *form) open() tea.Cmd {
	f.clear()
	f.focus = fieldTitle
	return f.inputs[fieldTitle].Focus()
}

func (f *form) clear() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.errs = nil
}

func (f *form) cycle(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// values validates the inputs. All failures are reported together.
func (f *form) values(rules validate.Rules) (title, description string, people int, err error) {
	title = strings.TrimSpace(f.inputs[fieldTitle].Value())
	description = strings.TrimSpace(f.inputs[fieldDescription].Value())
	people, err = validate.FormInput(title, description, f.inputs[fieldPeople].Value(), rules)
	return title, description, people, err
}

func (f form) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add project"))
	b.WriteString("\n")
	for i := range f.inputs {
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	for _, e := range f.errs {
		b.WriteString(errorStyle.Render("✖ " + e))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab next field · enter save · esc cancel"))
	return formStyle.Render(b.String())
}
