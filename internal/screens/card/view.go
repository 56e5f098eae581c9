package card

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ordkort/ordkort/internal/ui/theme"
)

func (c *CardScreen) View(width, height int) string {
	if c.ctrl.Exhausted() {
		return c.renderExhausted(width, height)
	}
	return c.renderCard(width, height)
}

// renderCard draws the flashcard, front or back.
func (c *CardScreen) renderCard(width, height int) string {
	cur, ok := c.ctrl.Current()
	if !ok {
		return ""
	}

	cardWidth := min(width-8, 60)

	var inner strings.Builder
	inner.WriteString(lipgloss.NewStyle().
		Width(cardWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(cur.Source))

	if c.revealed {
		inner.WriteString("\n\n")
		inner.WriteString(lipgloss.NewStyle().
			Width(cardWidth).
			Align(lipgloss.Center).
			Foreground(theme.Primary).
			Bold(true).
			Render(cur.Target))
		if c.example != "" {
			inner.WriteString("\n\n")
			inner.WriteString(theme.Hint.
				Width(cardWidth).
				Align(lipgloss.Center).
				Render(c.example))
		}
	}

	box := theme.Card.Width(cardWidth).Render(inner.String())

	var below string
	if c.revealed {
		if c.input.Value() != "" {
			below = lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Render("Your guess: " + c.input.View())
		} else {
			below = theme.Hint.Width(width).Align(lipgloss.Center).
				Render("Did you know it?")
		}
	} else {
		below = lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(c.input.View())
	}

	var sections []string
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, box))
	sections = append(sections, below)

	if err := c.ctrl.PersistErr(); err != nil {
		sections = append(sections, theme.Incorrect.
			Width(width).
			Align(lipgloss.Center).
			Render("Progress could not be saved — the session continues in memory"))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, content)
}

// renderExhausted draws the all-words-learned state.
func (c *CardScreen) renderExhausted(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Correct.
		Width(width).
		Align(lipgloss.Center).
		Render("All words learned!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.
		Width(width).
		Render("Press R to start over with the full list, or Esc to finish."))
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, b.String())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
