package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/board/internal/model"
	"github.com/idilsaglam/board/internal/state"
	"github.com/idilsaglam/board/internal/validate"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p-%d", n)
	}
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

// harness wires a Model to a board the way Run does, minus the program:
// snapshots are collected by a listener and fed back through Update.
type harness struct {
	t       *testing.T
	board   *state.Projects
	m       Model
	pending [][]model.Project
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{t: t, board: state.NewProjects(state.WithIDGenerator(seqIDs()))}
	h.board.Subscribe(func(items []model.Project) { h.pending = append(h.pending, items) })
	h.m = New(h.board, validate.DefaultRules())
	return h
}

func (h *harness) send(msgs ...tea.Msg) {
	h.t.Helper()
	for _, msg := range msgs {
		next, _ := h.m.Update(msg)
		h.m = next.(Model)
		for len(h.pending) > 0 {
			snap := h.pending[0]
			h.pending = h.pending[1:]
			next, _ = h.m.Update(snapshotMsg(snap))
			h.m = next.(Model)
		}
	}
}

func columnIDs(m Model, i int) []string {
	var ids []string
	for _, it := range m.cols[i].list.Items() {
		ids = append(ids, it.(card).project.ID)
	}
	return ids
}

func TestNewRendersExistingBoard(t *testing.T) {
	board := state.NewProjects(state.WithProjects([]model.Project{
		{ID: "a", Title: "Alpha", Status: model.Active},
		{ID: "b", Title: "Beta", Status: model.Finished},
		{ID: "c", Title: "Gamma", Status: model.Active},
	}))
	m := New(board, validate.DefaultRules())

	if got := strings.Join(columnIDs(m, 0), ","); got != "a,c" {
		t.Errorf("active column = %s, want a,c", got)
	}
	if got := strings.Join(columnIDs(m, 1), ","); got != "b" {
		t.Errorf("finished column = %s, want b", got)
	}
	view := m.View()
	for _, want := range []string{"ACTIVE PROJECTS", "FINISHED PROJECTS", "Alpha", "Beta"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestSnapshotUpdatesColumns(t *testing.T) {
	h := newHarness(t)
	h.board.AddProject("One", "first project", 2)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	if got := columnIDs(h.m, 0); len(got) != 1 || got[0] != "p-1" {
		t.Errorf("active column = %v, want [p-1]", got)
	}
}

func TestDragAndDropMovesCard(t *testing.T) {
	h := newHarness(t)
	h.board.AddProject("One", "first project", 2)
	h.board.AddProject("Two", "second project", 3)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	h.pending = nil

	h.send(keySpace)
	if h.m.drag == nil || h.m.drag.id != "p-1" {
		t.Fatalf("drag = %+v, want p-1 picked up", h.m.drag)
	}
	if c := h.m.cols[0].list.Items()[0].(card); !c.dragging {
		t.Error("picked up card not marked as dragging")
	}

	h.send(keyRight, keyEnter)

	if h.m.drag != nil {
		t.Error("drag still active after drop")
	}
	if p, _ := h.board.Find("p-1"); p.Status != model.Finished {
		t.Errorf("board status = %v, want finished", p.Status)
	}
	if got := strings.Join(columnIDs(h.m, 1), ","); got != "p-1" {
		t.Errorf("finished column = %s, want p-1", got)
	}
	if got := strings.Join(columnIDs(h.m, 0), ","); got != "p-2" {
		t.Errorf("active column = %s, want p-2", got)
	}
	if c, ok := h.m.selected(); !ok || c.project.ID != "p-1" {
		t.Errorf("selection did not follow the dropped card: %+v", c)
	}
}

func TestDropOnOriginListDoesNothing(t *testing.T) {
	h := newHarness(t)
	h.board.AddProject("One", "first project", 2)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	notified := 0
	h.board.Subscribe(func([]model.Project) { notified++ })

	h.send(keySpace, keyEnter)
	if notified != 0 {
		t.Errorf("drop on origin list notified %d times, want 0", notified)
	}
	if h.m.drag != nil {
		t.Error("drag still active after drop")
	}
}

func TestEscCancelsDrag(t *testing.T) {
	h := newHarness(t)
	h.board.AddProject("One", "first project", 2)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	h.send(keySpace, keyRight, keyEsc)
	if h.m.drag != nil {
		t.Fatal("esc did not cancel the drag")
	}
	if h.m.focus != 0 {
		t.Errorf("focus = %d, want back on origin list", h.m.focus)
	}
	if p, _ := h.board.Find("p-1"); p.Status != model.Active {
		t.Errorf("status = %v after cancelled drag, want active", p.Status)
	}
}

func TestMoveKeyFlipsBucket(t *testing.T) {
	h := newHarness(t)
	h.board.AddProject("One", "first project", 2)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	h.send(runes("m"))
	if p, _ := h.board.Find("p-1"); p.Status != model.Finished {
		t.Errorf("status = %v, want finished", p.Status)
	}
}

func TestAddFormValidation(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	h.send(runes("a"))
	if h.m.mode != modeForm {
		t.Fatalf("mode = %v, want form", h.m.mode)
	}

	h.send(runes("Board"), keyTab, runes("tiny"), keyTab, runes("9"), keyEnter)
	if h.board.Len() != 0 {
		t.Fatalf("invalid input was added")
	}
	want := []string{"description must be at least 5 characters", "people must be at most 5"}
	if strings.Join(h.m.form.errs, "|") != strings.Join(want, "|") {
		t.Errorf("form errors = %q, want %q", h.m.form.errs, want)
	}
	if !strings.Contains(h.m.View(), "people must be at most 5") {
		t.Error("View() does not show validation errors")
	}
}

func TestAddFormSubmits(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	h.send(runes("a"), runes("Board"), keyTab, runes("Build the board"), keyTab, runes("3"), keyEnter)

	if h.m.mode != modeBoard {
		t.Errorf("mode = %v after submit, want board", h.m.mode)
	}
	snap := h.board.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("board has %d projects, want 1", len(snap))
	}
	want := model.Project{ID: "p-1", Title: "Board", Description: "Build the board", People: 3, Status: model.Active}
	if snap[0] != want {
		t.Errorf("added %+v, want %+v", snap[0], want)
	}
	if got := columnIDs(h.m, 0); len(got) != 1 {
		t.Errorf("active column = %v, want the new card", got)
	}
	for i := range h.m.form.inputs {
		if v := h.m.form.inputs[i].Value(); v != "" {
			t.Errorf("input %d not cleared: %q", i, v)
		}
	}
}

func TestAddFormEscCancels(t *testing.T) {
	h := newHarness(t)
	h.send(runes("a"), runes("Board"), keyEsc)
	if h.m.mode != modeBoard {
		t.Errorf("mode = %v, want board", h.m.mode)
	}
	if h.board.Len() != 0 {
		t.Error("esc added a project")
	}
}

func TestViewDetail(t *testing.T) {
	h := newHarness(t)
	h.board.AddProject("Board", "Build the **board**", 1)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	h.send(runes("v"))
	if h.m.mode != modeDetail {
		t.Fatalf("mode = %v, want detail", h.m.mode)
	}
	if !strings.Contains(h.m.View(), "Board") {
		t.Error("detail view missing title")
	}
	h.send(keyEsc)
	if h.m.mode != modeBoard {
		t.Errorf("mode = %v after esc, want board", h.m.mode)
	}
}

func TestDetailMarkdown(t *testing.T) {
	md := detailMarkdown(model.Project{ID: "0123456789", Title: "T", Description: "D", People: 1, Status: model.Finished})
	want := "# T\n\n**1 person** · finished · `01234567`\n\nD\n"
	if md != want {
		t.Errorf("detailMarkdown() = %q, want %q", md, want)
	}
}

func TestMailboxLatestWins(t *testing.T) {
	mb := newMailbox()
	mb.put([]model.Project{{ID: "old"}})
	mb.put([]model.Project{{ID: "new"}})

	msg := mb.wait()()
	snap, ok := msg.(snapshotMsg)
	if !ok || len(snap) != 1 || snap[0].ID != "new" {
		t.Errorf("wait() = %#v, want the newest snapshot", msg)
	}

	mb.close()
	mb.close()
	if msg := mb.wait()(); msg != nil {
		t.Errorf("wait() after close = %#v, want nil", msg)
	}
}

func TestQuit(t *testing.T) {
	m := New(state.NewProjects(), validate.DefaultRules())
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
