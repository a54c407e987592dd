package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/questline/engine/pacing"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusCombat = lipgloss.NewStyle().
				Background(lipgloss.Color("52")).
				Foreground(lipgloss.Color("252")).
				Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleChoice = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindChoice
	kindDialogue
	kindCombat
	kindReward
	kindSystem
	kindError
	kindTrace
	kindInput
)

var (
	errorPrefixes = []string{
		"You can't", "You don't", "You need", "There is no", "Not enough",
		"Invalid choice", "I don't understand", "This area is locked",
		"Game over",
	}
	rewardPrefixes = []string{
		"Quest Complete", "Quest Progress", "Rewards:", "Area unlocked",
		"New quest unlocked", "You received", "You have found", "Victory!",
	}
	combatMarkers = []string{
		" attacks ", " has been defeated", " appeared", "You encounter",
		" fled from ", " blocked the escape", "You have died",
	}
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case isChoice(line):
		return kindChoice
	case hasAnyPrefix(line, errorPrefixes):
		return kindError
	case pacing.IsReveal(line):
		return kindDialogue
	case hasAnyPrefix(line, rewardPrefixes), strings.Contains(line, " leveled up "):
		return kindReward
	case containsAny(line, combatMarkers):
		return kindCombat
	default:
		return kindNarrative
	}
}

// isChoice matches numbered menu lines: "3. Check Status".
func isChoice(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && strings.HasPrefix(line[i:], ". ")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var kindStyles = map[lineKind]lipgloss.Style{
	kindNarrative: styleNarrative,
	kindChoice:    styleChoice,
	kindDialogue:  styleDialogue,
	kindCombat:    styleCombat,
	kindReward:    styleReward,
	kindSystem:    styleSystem,
	kindError:     styleError,
	kindTrace:     styleTrace,
	kindInput:     stylePlayerInput,
}

// renderEntry styles a transcript line, word-wrapping it to width.
func renderEntry(e entry, width int) string {
	style, ok := kindStyles[e.kind]
	if !ok {
		style = styleNarrative
	}
	return style.Width(width).Render(e.text)
}
