package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/board/internal/model"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrAmbiguous = errors.New("ambiguous project id")
)

// Projects is the board state. Build one per running application and pass it
// to whatever needs it.
type Projects struct {
	list  *List[model.Project]
	newID func() string
}

type Option func(*Projects)

// WithIDGenerator replaces the uuid-based id source.
func WithIDGenerator(gen func() string) Option {
	return func(p *Projects) { p.newID = gen }
}

// WithProjects restores a previously saved board. No observer is told.
func WithProjects(items []model.Project) Option {
	return func(p *Projects) { p.list = NewList(items) }
}

func NewProjects(opts ...Option) *Projects {
	p := &Projects{
		list:  NewList[model.Project](nil),
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// AddProject appends a new Active project and notifies observers.
// Input is expected to be validated by the caller.
func (p *Projects) AddProject(title, description string, people int) {
	p.list.Append(model.Project{
		ID:          p.newID(),
		Title:       title,
		Description: description,
		People:      people,
		Status:      model.Active,
	})
}

// MoveProject sets the status of the project with the given id.
// Unknown ids and same-status moves are ignored without notifying.
func (p *Projects) MoveProject(id string, status model.Status) {
	p.list.Update(
		func(it model.Project) bool { return it.ID == id },
		func(it *model.Project) bool {
			if it.Status == status {
				return false
			}
			it.Status = status
			return true
		},
	)
}

func (p *Projects) Subscribe(fn func([]model.Project)) (unsubscribe func()) {
	return p.list.Subscribe(fn)
}

// Watch subscribes fn and hands it the current board straight away.
func (p *Projects) Watch(fn func([]model.Project)) (unsubscribe func()) {
	return p.list.Watch(fn)
}

func (p *Projects) Snapshot() []model.Project { return p.list.Snapshot() }

func (p *Projects) Len() int { return p.list.Len() }

func (p *Projects) Find(id string) (model.Project, bool) {
	return p.list.Find(func(it model.Project) bool { return it.ID == id })
}

// ResolveID maps a full id or a unique id prefix to a full id.
func (p *Projects) ResolveID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("resolve %q: %w", prefix, ErrNotFound)
	}
	var matches []string
	for _, it := range p.list.Snapshot() {
		if it.ID == prefix {
			return it.ID, nil
		}
		if strings.HasPrefix(it.ID, prefix) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("resolve %q: %w", prefix, ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("resolve %q: %w", prefix, ErrAmbiguous)
}

// Filter keeps the projects in one bucket, preserving order.
func Filter(items []model.Project, status model.Status) []model.Project {
	out := make([]model.Project, 0, len(items))
	for _, it := range items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}

// Counts returns how many projects sit in each bucket.
func Counts(items []model.Project) (active, finished int) {
	for _, it := range items {
		if it.Status == model.Finished {
			finished++
		} else {
			active++
		}
	}
	return
}
