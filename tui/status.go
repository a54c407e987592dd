package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/questline/engine/quest"
)

// renderStatusBar produces a full-width inverted status line showing the
// location (or the creature being fought), the player's vitals, and the
// active quest when it fits.
func (m Model) renderStatusBar() string {
	w := m.engine.World
	p := w.Player

	place := w.Current().Name
	style := styleStatusBar
	if enc := m.engine.Encounter(); enc != nil {
		c := enc.Creature
		place = fmt.Sprintf("Fighting %s %d/%d", c.Name, c.Health, c.MaxHealth)
		style = styleStatusCombat
	}

	left := fmt.Sprintf(" %s | HP %d/%d | Lv %d | Gold %d", place, p.Health, p.MaxHealth, p.Level, p.Gold)
	right := fmt.Sprintf("T:%d ", m.engine.TurnCount)

	if q := questSummary(m); q != "" {
		candidate := fmt.Sprintf("%s | T:%d ", q, m.engine.TurnCount)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return style.Width(m.width).Render(bar)
}

// questSummary describes the active quest in a few words.
func questSummary(m Model) string {
	p := m.engine.World.Player
	if q := quest.ActiveCombat(p); q != nil {
		return fmt.Sprintf("%s %d/%d", q.Description, p.QuestProgress, q.Combat.Count)
	}
	if q := quest.ActiveStory(p); q != nil {
		return fmt.Sprintf("%s %d/%d", q.Description, q.Story.CurrentStep, len(q.Story.Steps))
	}
	return ""
}
