// Package home is the entry screen: a small menu over the deck's learning
// progress.
package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ordkort/ordkort/internal/deck"
	"github.com/ordkort/ordkort/internal/hints"
	"github.com/ordkort/ordkort/internal/history"
	"github.com/ordkort/ordkort/internal/router"
	"github.com/ordkort/ordkort/internal/screen"
	"github.com/ordkort/ordkort/internal/screens/card"
	"github.com/ordkort/ordkort/internal/screens/stats"
	"github.com/ordkort/ordkort/internal/ui/components"
	"github.com/ordkort/ordkort/internal/ui/theme"
)

// Deps carries everything the home screen hands down to the other screens.
type Deps struct {
	Store     *deck.Store
	Recorder  history.Recorder
	Reader    history.Reader
	Hints     *hints.Service
	FlipDelay time.Duration
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps Deps
	menu components.Menu
	note string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	items := []components.MenuItem{
		{Label: "START DRILLING", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: card.New(deps.Store, deps.Recorder, deps.Hints, deps.FlipDelay),
				}
			}
		}},
		{Label: "STATISTICS", Disabled: deps.Reader == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(deps.Reader)}
			}
		}},
		{Label: "RESET PROGRESS", Action: func() tea.Cmd {
			deps.Store.Reset()
			if err := deps.Store.Persist(); err != nil {
				h.note = "Reset failed: progress file not writable"
			} else {
				h.note = "Progress reset — all words are pending again"
			}
			return nil
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("O R D K O R T")
	subtitle := theme.Subtitle.Width(width).Render("Vocabulary flashcards")
	sections = append(sections, title+"\n"+subtitle)

	total := h.deps.Store.Total()
	remaining := h.deps.Store.Remaining()
	learned := total - remaining
	var ratio float64
	if total > 0 {
		ratio = float64(learned) / float64(total)
	}
	bar := components.NewProgressBar("Learned", ratio, true, min(width-8, 50))
	progressLine := fmt.Sprintf("%s\n%s",
		bar.View(),
		theme.Hint.Render(fmt.Sprintf("%d of %d words learned, %d pending", learned, total, remaining)))
	sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(progressLine))

	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	if h.note != "" {
		sections = append(sections, theme.Subtitle.Width(width).Render(h.note))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
