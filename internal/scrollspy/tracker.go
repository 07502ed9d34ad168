// Package scrollspy decides which page section the viewport is over so
// the navigation bar can highlight it.
package scrollspy

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMargin is how far above its top a section becomes active. It
// matches the height of the fixed navigation bar.
const DefaultMargin = 100

var (
	ErrEmptySectionID   = errors.New("scrollspy: section id is empty")
	ErrDuplicateSection = errors.New("scrollspy: duplicate section id")
	ErrInvalidGeometry  = errors.New("scrollspy: invalid section geometry")
)

// Section is a named vertical region of the page. Top is measured from
// the document origin.
type Section struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithMargin overrides DefaultMargin.
func WithMargin(margin float64) Option {
	return func(t *Tracker) { t.margin = margin }
}

// WithOnChange registers fn to be called whenever the active section
// changes.
func WithOnChange(fn func(previous, current string)) Option {
	return func(t *Tracker) { t.onChange = fn }
}

// Tracker holds a fixed section registry and the last active id. It is
// meant to be fed from a single event source and is not safe for
// concurrent use.
type Tracker struct {
	sections []Section
	margin   float64
	active   string
	onChange func(previous, current string)
}

// New copies sections into a Tracker. Overlapping or unsorted sections
// are accepted.
func New(sections []Section, opts ...Option) (*Tracker, error) {
	seen := make(map[string]struct{}, len(sections))
	for i, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: index %d", ErrEmptySectionID, i)
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, s.ID)
		}
		seen[s.ID] = struct{}{}
		if math.IsNaN(s.Top) || math.IsNaN(s.Height) || math.IsInf(s.Top, 0) || math.IsInf(s.Height, 0) || s.Height < 0 {
			return nil, fmt.Errorf("%w: %q top=%v height=%v", ErrInvalidGeometry, s.ID, s.Top, s.Height)
		}
	}

	t := &Tracker{
		sections: append([]Section(nil), sections...),
		margin:   DefaultMargin,
	}
	for _, opt := range opts {
		opt(t)
	}
	if math.IsNaN(t.margin) || math.IsInf(t.margin, 0) {
		return nil, fmt.Errorf("%w: margin=%v", ErrInvalidGeometry, t.margin)
	}
	return t, nil
}

// OnScroll updates the active section for a scroll offset and returns
// it. A section matches when
//
//	top-margin < scrollY <= top-margin+height
//
// and the last match in registration order wins. When nothing matches
// the previous active section is kept. ok is false only if no section
// has ever matched.
func (t *Tracker) OnScroll(scrollY float64) (id string, ok bool) {
	match := ""
	for _, s := range t.sections {
		start := s.Top - t.margin
		if scrollY > start && scrollY <= start+s.Height {
			match = s.ID
		}
	}
	if match != "" && match != t.active {
		previous := t.active
		t.active = match
		if t.onChange != nil {
			t.onChange(previous, match)
		}
	}
	return t.active, t.active != ""
}

// Active returns the active section id, or "" if none has matched yet.
func (t *Tracker) Active() string { return t.active }

// Sections returns a copy of the registry.
func (t *Tracker) Sections() []Section {
	return append([]Section(nil), t.sections...)
}
