package ui

import (
	"fmt"

	"github.com/idilsaglam/board/internal/model"
	"github.com/idilsaglam/board/internal/state"
)

const maxTitle = 60

// Header is the count line plus progress bar shown above a listing.
func Header(items []model.Project) []string {
	t := Current()
	a, f := state.Counts(items)
	return []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			C(t.Title, "Projects"),
			C(t.Pending, t.SymActive), a,
			C(t.Success, t.SymFinished), f,
			C(t.Accent, "Total"), len(items),
		),
		C(t.Muted, ProgressBar(f, a+f, 28)),
	}
}

// BoardLines renders the board either as two buckets or one flat list.
func BoardLines(items []model.Project, group bool) []string {
	if !group {
		return flatLines(items, true)
	}
	var lines []string
	for i, st := range []model.Status{model.Active, model.Finished} {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, C(Current().Accent, BucketTitle(st)))
		bucket := state.Filter(items, st)
		if len(bucket) == 0 {
			lines = append(lines, C(Current().Muted, "(none)"))
			continue
		}
		lines = append(lines, flatLines(bucket, false)...)
	}
	return lines
}

// BucketTitle is the heading of a status list, e.g. "ACTIVE PROJECTS".
func BucketTitle(st model.Status) string {
	if st == model.Finished {
		return "FINISHED PROJECTS"
	}
	return "ACTIVE PROJECTS"
}

func flatLines(items []model.Project, withStatus bool) []string {
	t := Current()
	if len(items) == 0 {
		return []string{C(t.Muted, "no projects")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		sym, color := t.SymActive, t.Pending
		if it.Status == model.Finished {
			sym, color = t.SymFinished, t.Success
		}
		title := it.Title
		if r := []rune(title); len(r) > maxTitle {
			title = string(r[:maxTitle-3]) + "..."
		}
		line := fmt.Sprintf("%s %s %s %s",
			Dim(it.ShortID()), C(color, sym), title, C(t.Muted, "("+it.PeopleLabel()+")"))
		if withStatus {
			line += " " + C(t.Muted, it.Status.String())
		}
		out = append(out, line)
	}
	return out
}
