package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idilsaglam/board/internal/model"
)

func sample() []model.Project {
	return []model.Project{
		{ID: "aaaaaaaa-1111", Title: "Write plan", Description: "the first one", People: 1, Status: model.Active},
		{ID: "bbbbbbbb-2222", Title: "Ship it", Description: "the second one", People: 3, Status: model.Finished},
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 5, "░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 5, "█████ 100%"},
		{9, 3, 5, "█████ 300%"},
		{1, 4, 1, "█░░░░  25%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d,%d,%d) = %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestBoardLinesGrouped(t *testing.T) {
	SetTheme("mono")
	defer SetColorMode("auto")

	got := BoardLines(sample(), true)
	want := []string{
		"ACTIVE PROJECTS",
		"aaaaaaaa - Write plan (1 person)",
		"",
		"FINISHED PROJECTS",
		"bbbbbbbb x Ship it (3 persons)",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("BoardLines() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestBoardLinesEmptyBucket(t *testing.T) {
	SetTheme("mono")
	defer SetColorMode("auto")

	got := BoardLines(sample()[:1], true)
	if got[len(got)-1] != "(none)" {
		t.Errorf("last line = %q, want (none)", got[len(got)-1])
	}
}

func TestBoardLinesFlat(t *testing.T) {
	SetTheme("mono")
	defer SetColorMode("auto")

	got := BoardLines(sample(), false)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}
	if !strings.HasSuffix(got[1], "finished") {
		t.Errorf("flat line %q lacks status column", got[1])
	}
	if empty := BoardLines(nil, false); empty[0] != "no projects" {
		t.Errorf("empty flat listing = %q", empty)
	}
}

func TestPanelPadsToWidestLine(t *testing.T) {
	SetTheme("mono")
	defer SetColorMode("auto")

	var buf bytes.Buffer
	Panel(&buf, []string{"ab", "wider"})
	want := "+-------+\n| ab    |\n| wider |\n+-------+\n"
	if buf.String() != want {
		t.Errorf("Panel() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestOKAndFail(t *testing.T) {
	if err := SetColorMode("never"); err != nil {
		t.Fatal(err)
	}
	defer SetColorMode("auto")

	var buf bytes.Buffer
	OK(&buf, "saved")
	Fail(&buf, "broken")
	if got := buf.String(); got != "✔ saved\n✖ broken\n" {
		t.Errorf("output = %q", got)
	}
}

func TestSetColorMode(t *testing.T) {
	defer SetColorMode("auto")

	tests := []struct {
		mode  string
		color bool
	}{
		{"always", true},
		{"Never", false},
		{"auto", false}, // a buffer is not a terminal
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if err := SetColorMode(tt.mode); err != nil {
				t.Fatalf("SetColorMode(%q) error = %v", tt.mode, err)
			}
			var buf bytes.Buffer
			Fail(&buf, "broken")
			if got := strings.Contains(buf.String(), fgRed); got != tt.color {
				t.Errorf("coloured = %v, want %v (output %q)", got, tt.color, buf.String())
			}
		})
	}

	if err := SetColorMode("sometimes"); err == nil {
		t.Error("SetColorMode(sometimes) error = nil")
	}
}
