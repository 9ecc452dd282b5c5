package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/idilsaglam/board/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// The in-memory board stays the source of truth; this file is only
// written by an observer and read once at startup.

const DefaultFileName = "projects.json"

func Load(path string) ([]model.Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Project{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.Project
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Project{}
	}
	return items, nil
}

// Save writes to a temp file next to path and renames it into place.
func Save(path string, items []model.Project) error {
	if items == nil {
		items = []model.Project{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".projects-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Observer returns a board listener that saves every snapshot to path.
// Save errors go to onErr, which may be nil.
func Observer(path string, onErr func(error)) func([]model.Project) {
	return NewAutosave(path, onErr).Observe
}

// Autosave is an Observer that remembers the outcome of its latest save,
// so a caller that just changed the board can tell whether it reached disk.
type Autosave struct {
	path  string
	onErr func(error)

	mu  sync.Mutex
	err error
}

func NewAutosave(path string, onErr func(error)) *Autosave {
	return &Autosave{path: path, onErr: onErr}
}

// Observe is the board listener.
func (a *Autosave) Observe(items []model.Project) {
	err := Save(a.path, items)
	a.mu.Lock()
	a.err = err
	a.mu.Unlock()
	if err != nil && a.onErr != nil {
		a.onErr(err)
	}
}

// Err is the error of the latest save, nil if it succeeded or none ran yet.
func (a *Autosave) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}
