package jsonstore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/idilsaglam/board/internal/model"
	"github.com/idilsaglam/board/internal/state"
)

func TestLoadMissingFile(t *testing.T) {
	items, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("Load() = %#v, want empty non-nil slice", items)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	want := []model.Project{
		{ID: "a", Title: "A", Description: "first", People: 1, Status: model.Active},
		{ID: "b", Title: "B", Description: "second", People: 2, Status: model.Finished},
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the data file", len(entries))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() on corrupt file returned nil error")
	}
}

func TestObserverPersistsBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	board := state.NewProjects()

	var errs []error
	board.Subscribe(Observer(path, func(err error) { errs = append(errs, err) }))

	board.AddProject("T", "description", 2)
	id := board.Snapshot()[0].ID
	board.MoveProject(id, model.Finished)

	if len(errs) != 0 {
		t.Fatalf("observer errors: %v", errs)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, board.Snapshot()) {
		t.Errorf("file = %+v, want %+v", got, board.Snapshot())
	}
}

func TestObserverReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", DefaultFileName)
	var errs []error
	fn := Observer(path, func(err error) { errs = append(errs, err) })
	fn([]model.Project{{ID: "x"}})
	if len(errs) != 1 {
		t.Errorf("got %d errors, want 1", len(errs))
	}
}

func TestAutosaveKeepsLatestResult(t *testing.T) {
	dir := t.TempDir()
	a := NewAutosave(filepath.Join(dir, "missing-dir", DefaultFileName), nil)
	if a.Err() != nil {
		t.Fatalf("Err() before any save = %v", a.Err())
	}

	board := state.NewProjects()
	board.Subscribe(a.Observe)
	board.AddProject("T", "description", 2)
	if a.Err() == nil {
		t.Fatal("Err() = nil after saving into a missing directory")
	}

	if err := os.Mkdir(filepath.Join(dir, "missing-dir"), 0o755); err != nil {
		t.Fatal(err)
	}
	board.AddProject("U", "description", 1)
	if err := a.Err(); err != nil {
		t.Errorf("Err() = %v after a successful save", err)
	}
}
