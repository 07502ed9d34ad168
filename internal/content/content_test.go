package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knightofkalki/portfolio/internal/typewriter"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	assert.Equal(t, "Ujjwal Aggarwal", c.Profile.Name)
	assert.Equal(t, []string{"Full-Stack Developer", "Problem Solver", "Tech Explorer"}, c.Hero.Phrases)
	require.Len(t, c.Sections, 6)
	assert.Equal(t, "home", c.Sections[0].ID)

	cfg, err := c.HeroConfig()
	require.NoError(t, err)
	assert.Equal(t, typewriter.DefaultConfig(c.Hero.Phrases...), cfg)
}

func TestAnimatedConfig(t *testing.T) {
	t.Parallel()

	c := Default()

	journey, ok := c.FindAnimated("journey")
	require.True(t, ok)
	cfg, err := journey.Config()
	require.NoError(t, err)
	assert.Equal(t, []string{"My Journey"}, cfg.Phrases)
	assert.False(t, cfg.Loop)
	assert.Equal(t, AnimatedTypingSpeed, cfg.TypingSpeed)
	assert.Equal(t, AnimatedPauseAfterTyped, cfg.PauseAfterTyped)

	contact, ok := c.FindAnimated("contact")
	require.True(t, ok)
	cfg, err = contact.Config()
	require.NoError(t, err)
	assert.True(t, cfg.Loop)

	_, ok = c.FindAnimated("missing")
	assert.False(t, ok)
}

func TestParse_TimingOverrides(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(`
profile: {name: Test}
hero:
  phrases: [a, b]
  typing_speed_ms: 20
  pause_after_deleted_ms: 7
  loop: false
`))
	require.NoError(t, err)

	cfg, err := c.HeroConfig()
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.TypingSpeed)
	assert.Equal(t, typewriter.DefaultDeletingSpeed, cfg.DeletingSpeed)
	assert.Equal(t, 7*time.Millisecond, cfg.PauseAfterDeleted)
	assert.False(t, cfg.Loop)
}

func TestParse_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"missing name", `hero: {phrases: [a]}`, "profile.name"},
		{"no phrases", `profile: {name: x}`, "hero"},
		{"zero speed", "profile: {name: x}\nhero: {phrases: [a], typing_speed_ms: 0}", "hero"},
		{"animated slug", "profile: {name: x}\nhero: {phrases: [a]}\nanimated: [{text: hi}]", "animated[0].slug"},
		{"animated dup", "profile: {name: x}\nhero: {phrases: [a]}\nanimated: [{slug: s, text: a}, {slug: s, text: b}]", "animated[1].slug"},
		{"animated delay", "profile: {name: x}\nhero: {phrases: [a]}\nanimated: [{slug: s, text: a, deleting_speed_ms: -5}]", "animated[0]"},
		{"section dup", "profile: {name: x}\nhero: {phrases: [a]}\nsections: [{id: a}, {id: a}]", "sections[1].id"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.yaml))
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("profile: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse content")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: {name: File}\nhero: {phrases: [one]}\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "File", c.Profile.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
