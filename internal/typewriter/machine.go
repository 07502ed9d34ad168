package typewriter

import "time"

// Phase is one state of the typing state machine.
type Phase int

const (
	Typing Phase = iota
	PausingFull
	Deleting
	PausingEmpty
	// Done is terminal and only reachable when Config.Loop is false.
	Done
)

func (p Phase) String() string {
	switch p {
	case Typing:
		return "typing"
	case PausingFull:
		return "pausing-full"
	case Deleting:
		return "deleting"
	case PausingEmpty:
		return "pausing-empty"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// State is a snapshot of a Machine.
type State struct {
	PhraseIndex int
	Cursor      int
	Phase       Phase
	// Typing is true while typing and false while deleting. Pauses keep
	// the last value.
	Typing bool
}

// Frame is what the presentation layer renders: the visible prefix and
// whether the caret should show as actively typing.
type Frame struct {
	Text   string `json:"text"`
	Typing bool   `json:"typing"`
}

// Machine is the typing state machine. It knows nothing about time
// passing: callers invoke Tick after waiting Delay, so tests can step it
// synchronously. A Machine is not safe for concurrent use.
type Machine struct {
	cfg     Config
	phrases [][]rune

	index  int
	cursor int
	phase  Phase
	typing bool
}

// NewMachine validates cfg and returns a Machine in its initial state.
func NewMachine(cfg Config) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	phrases := make([][]rune, len(cfg.Phrases))
	for i, p := range cfg.Phrases {
		phrases[i] = []rune(p)
	}
	m := &Machine{
		cfg:     cfg,
		phrases: phrases,
		phase:   Typing,
		typing:  true,
	}
	m.settle()
	return m, nil
}

// Tick advances the machine by one step and reports whether the
// displayed text changed. Ticking a finished machine does nothing.
func (m *Machine) Tick() bool {
	switch m.phase {
	case Typing:
		m.cursor++
		m.settle()
		return true
	case PausingFull:
		m.enter(Deleting)
		return false
	case Deleting:
		m.cursor--
		m.settle()
		return true
	case PausingEmpty:
		m.index = (m.index + 1) % len(m.phrases)
		m.cursor = 0
		m.enter(Typing)
		return false
	}
	return false
}

func (m *Machine) enter(p Phase) {
	m.phase = p
	switch p {
	case Typing:
		m.typing = true
	case Deleting:
		m.typing = false
	}
	m.settle()
}

// settle applies the transitions that take no time: a fully typed
// phrase starts its pause (or finishes the run), a fully deleted one
// starts the empty pause. An empty phrase passes through both without
// a character tick.
func (m *Machine) settle() {
	switch m.phase {
	case Typing:
		if m.cursor < len(m.phrases[m.index]) {
			return
		}
		if !m.cfg.Loop && m.index == len(m.phrases)-1 {
			m.phase = Done
			return
		}
		m.phase = PausingFull
	case Deleting:
		if m.cursor == 0 {
			m.phase = PausingEmpty
		}
	}
}

// Delay is how long to wait before the next Tick. It is zero once the
// machine is done.
func (m *Machine) Delay() time.Duration {
	switch m.phase {
	case Typing:
		return m.cfg.TypingSpeed
	case PausingFull:
		return m.cfg.PauseAfterTyped
	case Deleting:
		return m.cfg.DeletingSpeed
	case PausingEmpty:
		return m.cfg.PauseAfterDeleted
	}
	return 0
}

// Done reports whether the machine has reached its terminal state.
func (m *Machine) Done() bool { return m.phase == Done }

// Text returns the visible prefix of the current phrase.
func (m *Machine) Text() string {
	return string(m.phrases[m.index][:m.cursor])
}

func (m *Machine) Frame() Frame {
	return Frame{Text: m.Text(), Typing: m.typing}
}

func (m *Machine) State() State {
	return State{
		PhraseIndex: m.index,
		Cursor:      m.cursor,
		Phase:       m.phase,
		Typing:      m.typing,
	}
}
