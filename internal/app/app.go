// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ordkort/ordkort/internal/deck"
	"github.com/ordkort/ordkort/internal/hints"
	"github.com/ordkort/ordkort/internal/history"
	"github.com/ordkort/ordkort/internal/router"
	"github.com/ordkort/ordkort/internal/screen"
	"github.com/ordkort/ordkort/internal/screens/home"
	"github.com/ordkort/ordkort/internal/ui/layout"
)

// Options carries the wired services into the TUI.
type Options struct {
	Store     *deck.Store
	Recorder  history.Recorder
	Reader    history.Reader
	Hints     *hints.Service // nil when no LLM provider is configured
	FlipDelay time.Duration
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Deps{
		Store:     opts.Store,
		Recorder:  opts.Recorder,
		Reader:    opts.Reader,
		Hints:     opts.Hints,
		FlipDelay: opts.FlipDelay,
	})
	return AppModel{
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is screen business (the card screen turns it into a session
		// end); only ctrl+c is global.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	counters := ""
	if active != nil {
		title = active.Title()
		if cp, ok := active.(screen.CounterProvider); ok {
			counters = cp.Counters()
		}
	}

	header := layout.RenderHeader(title, counters, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
