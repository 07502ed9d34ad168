// Package content loads the portfolio's static content: profile, hero
// phrases, animated taglines, projects, experience and the navigation
// sections.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/knightofkalki/portfolio/internal/typewriter"
)

//go:embed default.yaml
var defaultYAML []byte

// Timing defaults for animated taglines, slower than the hero banner.
const (
	AnimatedTypingSpeed     = 100 * time.Millisecond
	AnimatedDeletingSpeed   = 50 * time.Millisecond
	AnimatedPauseAfterTyped = 2000 * time.Millisecond
)

// ValidationError represents a content validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Content is everything the page renders.
type Content struct {
	Profile        Profile         `yaml:"profile" json:"profile"`
	Hero           Hero            `yaml:"hero" json:"hero"`
	Animated       []Animated      `yaml:"animated" json:"animated"`
	About          string          `yaml:"about" json:"about"`
	Projects       []Project       `yaml:"projects" json:"projects"`
	Experience     []Experience    `yaml:"experience" json:"experience"`
	Education      []Education     `yaml:"education" json:"education"`
	Certifications []Certification `yaml:"certifications" json:"certifications"`
	Sections       []NavSection    `yaml:"sections" json:"sections"`
}

type Profile struct {
	Name     string `yaml:"name" json:"name"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	GitHub   string `yaml:"github" json:"github,omitempty"`
	LinkedIn string `yaml:"linkedin" json:"linkedin,omitempty"`
	Email    string `yaml:"email" json:"email,omitempty"`
}

// Timing holds typewriter timings in milliseconds. Nil fields take the
// defaults of whichever widget uses them.
type Timing struct {
	TypingSpeedMS       *int  `yaml:"typing_speed_ms" json:"typing_speed_ms,omitempty"`
	DeletingSpeedMS     *int  `yaml:"deleting_speed_ms" json:"deleting_speed_ms,omitempty"`
	PauseAfterTypedMS   *int  `yaml:"pause_after_typed_ms" json:"pause_after_typed_ms,omitempty"`
	PauseAfterDeletedMS *int  `yaml:"pause_after_deleted_ms" json:"pause_after_deleted_ms,omitempty"`
	Loop                *bool `yaml:"loop" json:"loop,omitempty"`
}

// Hero is the cycling list of descriptors under the name.
type Hero struct {
	Phrases []string `yaml:"phrases" json:"phrases"`
	Timing  `yaml:",inline"`
}

// Animated is a single phrase typed by a reusable widget, addressed by
// slug.
type Animated struct {
	Slug   string `yaml:"slug" json:"slug"`
	Text   string `yaml:"text" json:"text"`
	Timing `yaml:",inline"`
}

type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Image       string   `yaml:"image" json:"image,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
	LiveURL     string   `yaml:"live_url" json:"live_url,omitempty"`
	RepoURL     string   `yaml:"repo_url" json:"repo_url,omitempty"`
	Features    []string `yaml:"features" json:"features,omitempty"`
}

type Experience struct {
	Date         string `yaml:"date" json:"date"`
	Title        string `yaml:"title" json:"title"`
	Organization string `yaml:"organization" json:"organization"`
	Description  string `yaml:"description" json:"description"`
}

type Education struct {
	Date        string `yaml:"date" json:"date"`
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Description string `yaml:"description" json:"description"`
}

type Certification struct {
	Title         string `yaml:"title" json:"title"`
	Issuer        string `yaml:"issuer" json:"issuer"`
	Date          string `yaml:"date" json:"date"`
	CredentialURL string `yaml:"credential_url" json:"credential_url,omitempty"`
	Description   string `yaml:"description" json:"description"`
}

// NavSection is one page section linked from the navigation bar.
type NavSection struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Load reads content from path, or the embedded default when path is
// empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Parse(defaultYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded content. It panics if the embedded file
// is invalid, which only a broken build can cause.
func Default() *Content {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates YAML content.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the content for errors the page cannot render around.
func (c *Content) Validate() error {
	if c.Profile.Name == "" {
		return ValidationError{Field: "profile.name", Message: "must not be empty"}
	}
	if _, err := c.HeroConfig(); err != nil {
		return ValidationError{Field: "hero", Message: err.Error()}
	}

	slugs := make(map[string]struct{}, len(c.Animated))
	for i, a := range c.Animated {
		field := fmt.Sprintf("animated[%d]", i)
		if a.Slug == "" {
			return ValidationError{Field: field + ".slug", Message: "must not be empty"}
		}
		if _, ok := slugs[a.Slug]; ok {
			return ValidationError{Field: field + ".slug", Message: fmt.Sprintf("duplicate slug %q", a.Slug)}
		}
		slugs[a.Slug] = struct{}{}
		if _, err := a.Config(); err != nil {
			return ValidationError{Field: field, Message: err.Error()}
		}
	}

	ids := make(map[string]struct{}, len(c.Sections))
	for i, s := range c.Sections {
		field := fmt.Sprintf("sections[%d].id", i)
		if s.ID == "" {
			return ValidationError{Field: field, Message: "must not be empty"}
		}
		if _, ok := ids[s.ID]; ok {
			return ValidationError{Field: field, Message: fmt.Sprintf("duplicate id %q", s.ID)}
		}
		ids[s.ID] = struct{}{}
	}
	return nil
}

// HeroConfig builds the hero banner's typewriter configuration.
func (c *Content) HeroConfig() (typewriter.Config, error) {
	cfg := typewriter.DefaultConfig(c.Hero.Phrases...)
	c.Hero.apply(&cfg)
	return cfg, cfg.Validate()
}

// FindAnimated returns the animated tagline with the given slug.
func (c *Content) FindAnimated(slug string) (Animated, bool) {
	for _, a := range c.Animated {
		if a.Slug == slug {
			return a, true
		}
	}
	return Animated{}, false
}

// Config builds the widget's typewriter configuration.
func (a Animated) Config() (typewriter.Config, error) {
	cfg := typewriter.Config{
		Phrases:           []string{a.Text},
		TypingSpeed:       AnimatedTypingSpeed,
		DeletingSpeed:     AnimatedDeletingSpeed,
		PauseAfterTyped:   AnimatedPauseAfterTyped,
		PauseAfterDeleted: typewriter.DefaultPauseAfterDeleted,
		Loop:              true,
	}
	a.apply(&cfg)
	return cfg, cfg.Validate()
}

func (t Timing) apply(cfg *typewriter.Config) {
	ms := func(v *int, dst *time.Duration) {
		if v != nil {
			*dst = time.Duration(*v) * time.Millisecond
		}
	}
	ms(t.TypingSpeedMS, &cfg.TypingSpeed)
	ms(t.DeletingSpeedMS, &cfg.DeletingSpeed)
	ms(t.PauseAfterTypedMS, &cfg.PauseAfterTyped)
	ms(t.PauseAfterDeletedMS, &cfg.PauseAfterDeleted)
	if t.Loop != nil {
		cfg.Loop = *t.Loop
	}
}
