// Package validate checks form input before it reaches the board.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrInvalid = errors.New("invalid input")

// Rule describes the constraints on one field. Nil bounds are not checked.
// Length bounds apply to strings, Min/Max to ints.
type Rule struct {
	Required  bool `yaml:"required"`
	MinLength *int `yaml:"min_length"`
	MaxLength *int `yaml:"max_length"`
	Min       *int `yaml:"min"`
	Max       *int `yaml:"max"`
}

// Rules holds the rules for the three project form fields.
type Rules struct {
	Title       Rule `yaml:"title"`
	Description Rule `yaml:"description"`
	People      Rule `yaml:"people"`
}

func intp(n int) *int { return &n }

// DefaultRules: title required, description at least 5 chars, 1 to 5 people.
func DefaultRules() Rules {
	return Rules{
		Title:       Rule{Required: true},
		Description: Rule{Required: true, MinLength: intp(5)},
		People:      Rule{Required: true, Min: intp(1), Max: intp(5)},
	}
}

// Check validates a string or int value against r.
func Check(field string, value any, r Rule) error {
	switch v := value.(type) {
	case string:
		return checkString(field, v, r)
	case int:
		return checkInt(field, v, r)
	}
	return fmt.Errorf("%s: unsupported value type %T: %w", field, value, ErrInvalid)
}

func checkString(field, v string, r Rule) error {
	if r.Required && strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required: %w", field, ErrInvalid)
	}
	n := utf8.RuneCountInString(v)
	if r.MinLength != nil && n < *r.MinLength {
		return fmt.Errorf("%s must be at least %d characters: %w", field, *r.MinLength, ErrInvalid)
	}
	if r.MaxLength != nil && n > *r.MaxLength {
		return fmt.Errorf("%s must be at most %d characters: %w", field, *r.MaxLength, ErrInvalid)
	}
	return nil
}

func checkInt(field string, v int, r Rule) error {
	if r.Min != nil && v < *r.Min {
		return fmt.Errorf("%s must be at least %d: %w", field, *r.Min, ErrInvalid)
	}
	if r.Max != nil && v > *r.Max {
		return fmt.Errorf("%s must be at most %d: %w", field, *r.Max, ErrInvalid)
	}
	return nil
}

// ProjectInput validates every field and reports all failures at once.
func ProjectInput(title, description string, people int, rules Rules) error {
	return errors.Join(
		Check("title", title, rules.Title),
		Check("description", description, rules.Description),
		Check("people", people, rules.People),
	)
}

// FormInput validates the raw form fields, people still as text. A people
// value that is not a number is reported alongside the other failures.
func FormInput(title, description, people string, rules Rules) (int, error) {
	n, err := ParsePeople(people)
	if err != nil {
		return 0, errors.Join(
			Check("title", title, rules.Title),
			Check("description", description, rules.Description),
			err,
		)
	}
	return n, ProjectInput(title, description, n, rules)
}

// ParsePeople reads the people form field. Blank input is an error.
func ParsePeople(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("people is required: %w", ErrInvalid)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("people: not a number: %q: %w", s, ErrInvalid)
	}
	return n, nil
}

// Messages flattens a (possibly joined) error into one line per failure.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var out []string
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			out = append(out, Messages(e)...)
		}
		return out
	}
	msg := strings.TrimSuffix(err.Error(), ": "+ErrInvalid.Error())
	return []string{msg}
}
