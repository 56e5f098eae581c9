// Package stats renders lifetime drilling totals from the history database.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ordkort/ordkort/internal/history"
	"github.com/ordkort/ordkort/internal/router"
	"github.com/ordkort/ordkort/internal/screen"
	"github.com/ordkort/ordkort/internal/ui/layout"
	"github.com/ordkort/ordkort/internal/ui/theme"
)

const recentLimit = 10

// statsLoadedMsg carries the query results into the screen.
type statsLoadedMsg struct {
	Stats  *history.Stats
	Recent []history.SessionSummary
	Err    error
}

// StatsScreen shows lifetime totals and recent sessions.
type StatsScreen struct {
	reader history.Reader
	stats  *history.Stats
	recent []history.SessionSummary
	errMsg string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(reader history.Reader) *StatsScreen {
	return &StatsScreen{reader: reader}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := s.reader.Stats(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		recent, err := s.reader.RecentSessions(ctx, recentLimit)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Stats: stats, Recent: recent}
	}
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.stats = msg.Stats
		s.recent = msg.Recent
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render("Could not load statistics: "+s.errMsg))
	}
	if s.stats == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading..."))
	}

	var b strings.Builder

	totals := fmt.Sprintf("Sessions: %d        Cards answered: %d        Known: %d        Accuracy: %.0f%%",
		s.stats.Sessions, s.stats.Answers, s.stats.Known, s.stats.Accuracy*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(totals))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent sessions")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	if len(s.recent) == 0 {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("No sessions yet — start drilling!"))
	}

	for _, sum := range s.recent {
		when := sum.StartedAt.Local().Format("2006-01-02 15:04")
		status := "unfinished"
		if sum.Finished {
			status = fmt.Sprintf("%d shown, %d known, %d left",
				sum.CardsShown, sum.CardsKnown, sum.PoolEnd)
		}
		line := fmt.Sprintf("  %s    %s", when, status)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, b.String())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
