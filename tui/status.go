package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/tuberoulette/engine"
)

// hpBar draws hp out of max as filled and empty pips, e.g. "■■■□".
func hpBar(hp, max int) string {
	if max < 1 {
		return ""
	}
	if hp < 0 {
		hp = 0
	}
	if hp > max {
		hp = max
	}
	return strings.Repeat("■", hp) + strings.Repeat("□", max-hp)
}

// seatLabel renders a seat's name, HP pips, and status flags.
func seatLabel(s engine.Seat, styled bool) string {
	bar := hpBar(s.HP, s.MaxHP)
	if styled {
		if s.HP*2 <= s.MaxHP {
			bar = styleHPLow.Render(bar)
		} else {
			bar = styleHPFull.Render(bar)
		}
	}
	label := fmt.Sprintf("%s %s", s.Name, bar)
	if s.Cuffed {
		label += " (cuffed)"
	}
	if s.SawReady {
		label += " (saw)"
	}
	return label
}

// renderStatusBar produces a full-width inverted status line showing
// both seats, the round, the shells left, and whose turn it is.
func (m Model) renderStatusBar() string {
	b := m.board

	left := fmt.Sprintf(" %s | %s", seatLabel(b.Player, true), seatLabel(b.Dealer, true))
	right := fmt.Sprintf("R:%d | Shells: %d (L:%d B:%d) | %s ", b.Round, b.Remaining, b.Live, b.Blank, b.Turn)

	// Fall back to a shorter right side on narrow terminals.
	if lipgloss.Width(left)+lipgloss.Width(right)+2 >= m.width {
		right = fmt.Sprintf("R:%d | %dL/%dB ", b.Round, b.Live, b.Blank)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
