package typewriter

import (
	"errors"
	"fmt"
	"time"
)

// Default timings used by the hero banner.
const (
	DefaultTypingSpeed       = 80 * time.Millisecond
	DefaultDeletingSpeed     = 40 * time.Millisecond
	DefaultPauseAfterTyped   = 1500 * time.Millisecond
	DefaultPauseAfterDeleted = 500 * time.Millisecond
)

var (
	// ErrNoPhrases is returned when a Config has nothing to type.
	ErrNoPhrases = errors.New("typewriter: phrase list is empty")
	// ErrNonPositiveDelay is returned when any speed or pause is <= 0.
	ErrNonPositiveDelay = errors.New("typewriter: delays must be positive")
)

// Config describes one text cycler. It is fixed for the life of the
// Machine built from it; changing phrases means building a new one.
type Config struct {
	// Phrases are typed in order and wrap back to the first.
	Phrases []string

	// TypingSpeed is the delay between characters while typing.
	TypingSpeed time.Duration
	// DeletingSpeed is the delay between characters while deleting.
	DeletingSpeed time.Duration
	// PauseAfterTyped is the dwell once a phrase is fully typed.
	PauseAfterTyped time.Duration
	// PauseAfterDeleted is the dwell once a phrase is fully deleted.
	PauseAfterDeleted time.Duration

	// Loop keeps cycling forever. When false the machine stops with the
	// last phrase fully typed.
	Loop bool
}

// DefaultConfig returns a looping Config over phrases with the hero
// banner timings.
func DefaultConfig(phrases ...string) Config {
	return Config{
		Phrases:           phrases,
		TypingSpeed:       DefaultTypingSpeed,
		DeletingSpeed:     DefaultDeletingSpeed,
		PauseAfterTyped:   DefaultPauseAfterTyped,
		PauseAfterDeleted: DefaultPauseAfterDeleted,
		Loop:              true,
	}
}

// Validate reports the first configuration error, if any.
func (c Config) Validate() error {
	if len(c.Phrases) == 0 {
		return ErrNoPhrases
	}
	delays := []struct {
		name  string
		value time.Duration
	}{
		{"typing speed", c.TypingSpeed},
		{"deleting speed", c.DeletingSpeed},
		{"pause after typed", c.PauseAfterTyped},
		{"pause after deleted", c.PauseAfterDeleted},
	}
	for _, d := range delays {
		if d.value <= 0 {
			return fmt.Errorf("%w: %s is %v", ErrNonPositiveDelay, d.name, d.value)
		}
	}
	return nil
}
