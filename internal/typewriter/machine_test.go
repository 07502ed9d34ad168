package typewriter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(loop bool, phrases ...string) Config {
	return Config{
		Phrases:           phrases,
		TypingSpeed:       10 * time.Millisecond,
		DeletingSpeed:     5 * time.Millisecond,
		PauseAfterTyped:   100 * time.Millisecond,
		PauseAfterDeleted: 50 * time.Millisecond,
		Loop:              loop,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultConfig("a").Validate())
	assert.ErrorIs(t, DefaultConfig().Validate(), ErrNoPhrases)

	cases := map[string]func(*Config){
		"typing":        func(c *Config) { c.TypingSpeed = 0 },
		"deleting":      func(c *Config) { c.DeletingSpeed = -time.Millisecond },
		"pause typed":   func(c *Config) { c.PauseAfterTyped = 0 },
		"pause deleted": func(c *Config) { c.PauseAfterDeleted = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig("a")
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrNonPositiveDelay)
			_, err := NewMachine(cfg)
			assert.ErrorIs(t, err, ErrNonPositiveDelay)
		})
	}
}

func TestMachine_InitialState(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(testConfig(true, "Hi"))
	require.NoError(t, err)

	assert.Equal(t, State{PhraseIndex: 0, Cursor: 0, Phase: Typing, Typing: true}, m.State())
	assert.Equal(t, "", m.Text())
	assert.Equal(t, 10*time.Millisecond, m.Delay())
}

func TestMachine_TypeThenDeleteIsMonotonic(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(testConfig(true, "Hello"))
	require.NoError(t, err)

	for want := 1; want <= 5; want++ {
		require.Equal(t, Typing, m.State().Phase)
		assert.True(t, m.Tick())
		assert.Len(t, m.Text(), want)
		assert.True(t, m.Frame().Typing)
	}
	assert.Equal(t, PausingFull, m.State().Phase)
	assert.Equal(t, 100*time.Millisecond, m.Delay())

	assert.False(t, m.Tick())
	assert.Equal(t, Deleting, m.State().Phase)
	assert.Equal(t, 5*time.Millisecond, m.Delay())

	for want := 4; want >= 0; want-- {
		require.Equal(t, Deleting, m.State().Phase)
		assert.True(t, m.Tick())
		assert.Len(t, m.Text(), want)
		assert.False(t, m.Frame().Typing)
	}
	assert.Equal(t, PausingEmpty, m.State().Phase)
	assert.Equal(t, 50*time.Millisecond, m.Delay())
	assert.False(t, m.Frame().Typing, "pause keeps the deleting flag")
}

func TestMachine_VisitsPhrasesInOrder(t *testing.T) {
	t.Parallel()

	phrases := []string{"a", "bb", "ccc"}
	m, err := NewMachine(testConfig(true, phrases...))
	require.NoError(t, err)

	var visited []int
	var seen []string
	last := -1
	for i := 0; i < 200 && len(visited) < 7; i++ {
		s := m.State()
		if s.Phase == Typing && s.PhraseIndex != last {
			visited = append(visited, s.PhraseIndex)
			last = s.PhraseIndex
		}
		if m.Tick() {
			assert.Contains(t, phrases[m.State().PhraseIndex], m.Text())
			seen = append(seen, m.Text())
		}
	}
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 0}, visited)
	assert.Equal(t, []string{"a", ""}, seen[:2])
}

func TestMachine_EmptyPhraseSkipsTyping(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(testConfig(true, "", "x"))
	require.NoError(t, err)

	assert.Equal(t, State{Phase: PausingFull, Typing: true}, m.State())
	assert.Equal(t, 100*time.Millisecond, m.Delay())

	// The pause ends, and with nothing to delete the empty pause follows.
	assert.False(t, m.Tick())
	assert.Equal(t, PausingEmpty, m.State().Phase)

	assert.False(t, m.Tick())
	assert.Equal(t, State{PhraseIndex: 1, Phase: Typing, Typing: true}, m.State())

	assert.True(t, m.Tick())
	assert.Equal(t, "x", m.Text())
}

func TestMachine_NoLoopStopsOnLastPhrase(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(testConfig(false, "A", "BC"))
	require.NoError(t, err)

	var frames []string
	for i := 0; i < 50 && !m.Done(); i++ {
		if m.Tick() {
			frames = append(frames, m.Text())
		}
	}

	require.True(t, m.Done())
	assert.Equal(t, []string{"A", "", "B", "BC"}, frames)
	assert.Equal(t, "BC", m.Text())
	assert.Zero(t, m.Delay())

	before := m.State()
	assert.False(t, m.Tick())
	assert.Equal(t, before, m.State())
}

func TestMachine_NoLoopSinglePhrase(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(testConfig(false, "ok"))
	require.NoError(t, err)

	m.Tick()
	m.Tick()
	assert.True(t, m.Done())
	assert.Equal(t, "ok", m.Text())
}

func TestMachine_SinglePhraseRoundTrip(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(testConfig(true, "Hi"))
	require.NoError(t, err)
	initial := m.State()

	// type 2, pause, delete 2, pause
	for i := 0; i < 6; i++ {
		m.Tick()
	}
	assert.Equal(t, initial, m.State())

	for i := 0; i < 6; i++ {
		m.Tick()
	}
	assert.Equal(t, initial, m.State())
}

func TestMachine_CountsCodePoints(t *testing.T) {
	t.Parallel()

	m, err := NewMachine(testConfig(true, "héllo✓"))
	require.NoError(t, err)

	m.Tick()
	m.Tick()
	assert.Equal(t, "hé", m.Text())
	for i := 0; i < 4; i++ {
		m.Tick()
	}
	assert.Equal(t, "héllo✓", m.Text())
	assert.Equal(t, PausingFull, m.State().Phase)
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "typing", Typing.String())
	assert.Equal(t, "pausing-empty", PausingEmpty.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
