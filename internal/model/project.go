package model

import (
	"fmt"
	"strings"
)

// Status is the bucket a project card lives in.
type Status int

const (
	Active Status = iota
	Finished
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Other returns the opposite bucket.
func (s Status) Other() Status {
	if s == Active {
		return Finished
	}
	return Active
}

// ParseStatus accepts "active" or "finished" in any case.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return Active, nil
	case "finished":
		return Finished, nil
	}
	return Active, fmt.Errorf("unknown status %q (want active or finished)", s)
}

func (s Status) MarshalText() ([]byte, error) {
	if s != Active && s != Finished {
		return nil, fmt.Errorf("marshal status: invalid value %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Project is the domain model for a board card.
// Only the status field ever changes after creation.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
	Status      Status `json:"status"`
}

func (p Project) PeopleLabel() string {
	if p.People == 1 {
		return "1 person"
	}
	return fmt.Sprintf("%d persons", p.People)
}

// ShortID is the id prefix shown in listings.
func (p Project) ShortID() string {
	if len(p.ID) <= 8 {
		return p.ID
	}
	return p.ID[:8]
}
