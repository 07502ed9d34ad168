// Command heroterm plays the portfolio's hero typewriter in a terminal.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	flag "github.com/spf13/pflag"

	"github.com/knightofkalki/portfolio/internal/content"
	"github.com/knightofkalki/portfolio/internal/typewriter"
)

const blinkInterval = 530 * time.Millisecond

var (
	nameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#78C6BB"))
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5EEAD4"))
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

type tickMsg struct{}

type blinkMsg struct{}

type model struct {
	name    string
	machine *typewriter.Machine
	caretOn bool
}

func newModel(name string, cfg typewriter.Config) (model, error) {
	machine, err := typewriter.NewMachine(cfg)
	if err != nil {
		return model{}, err
	}
	return model{name: name, machine: machine, caretOn: true}, nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.nextTick(), blink())
}

// nextTick asks the runtime for the machine's next step. Bubble Tea
// delivers messages one at a time, so the machine needs no locking.
func (m model) nextTick() tea.Cmd {
	if m.machine.Done() {
		return nil
	}
	return tea.Tick(m.machine.Delay(), func(time.Time) tea.Msg { return tickMsg{} })
}

func blink() tea.Cmd {
	return tea.Tick(blinkInterval, func(time.Time) tea.Msg { return blinkMsg{} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.machine.Tick()
		return m, m.nextTick()
	case blinkMsg:
		m.caretOn = !m.caretOn
		return m, blink()
	}
	return m, nil
}

func (m model) View() string {
	caret := " "
	// The caret stays solid while typing and blinks otherwise.
	if m.machine.State().Phase == typewriter.Typing || m.caretOn {
		caret = caretStyle.Render("▌")
	}
	return fmt.Sprintf("\n  Hi, I'm %s\n  %s%s\n\n  %s\n",
		nameStyle.Render(m.name),
		textStyle.Render(m.machine.Text()),
		caret,
		hintStyle.Render("q to quit"),
	)
}

func main() {
	site := content.Default()
	cfg, err := site.HeroConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	phrases := flag.StringSlice("phrases", cfg.Phrases, "phrases to cycle through")
	name := flag.String("name", site.Profile.Name, "name shown above the typewriter")
	once := flag.Bool("once", false, "stop after typing the last phrase")
	typing := flag.Duration("typing-speed", cfg.TypingSpeed, "delay between typed characters")
	deleting := flag.Duration("deleting-speed", cfg.DeletingSpeed, "delay between deleted characters")
	flag.Parse()

	cfg.Phrases = *phrases
	cfg.Loop = !*once
	cfg.TypingSpeed = *typing
	cfg.DeletingSpeed = *deleting

	m, err := newModel(*name, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "heroterm:", err)
		os.Exit(2)
	}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "heroterm:", err)
		os.Exit(1)
	}
}
