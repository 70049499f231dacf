package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleLive = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	styleBlank = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	styleRound = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	styleItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	stylePrompt = lipgloss.NewStyle().
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleHPFull = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	styleHPLow = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindLive
	kindBlank
	kindRound
	kindItem
	kindPrompt
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.Contains(line, "→ LIVE!"):
		return kindLive
	case strings.Contains(line, "→ BLANK."):
		return kindBlank
	case strings.HasPrefix(line, "Round "), strings.HasPrefix(line, "---"):
		return kindRound
	case strings.HasPrefix(line, "Fatal:"),
		strings.HasPrefix(line, "you don't have"),
		strings.HasPrefix(line, "which "):
		return kindError
	case strings.HasSuffix(line, "?") || strings.Contains(line, "? ("):
		return kindPrompt
	case strings.HasPrefix(line, "  ["), strings.Contains(line, " receives"):
		return kindItem
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	default:
		return kindNarration
	}
}

// renderLineKind styles a (possibly wrapped) line by its kind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindLive:
		return styleLive.Render(line)
	case kindBlank:
		return styleBlank.Render(line)
	case kindRound:
		return styleRound.Render(line)
	case kindItem:
		return styleItem.Render(line)
	case kindPrompt:
		return stylePrompt.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	if strings.HasPrefix(text, "[trace]") {
		return styleTrace.Render(text)
	}
	return styleSystem.Render("[" + text + "]")
}
