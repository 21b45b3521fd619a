package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Arise theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconSystem  = "⚙️"
	IconSword   = "🗡️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconCoin    = "🪙"
	IconFire    = "🔥"
	IconFrozen  = "🧊"
	IconChest   = "📦"
	IconScale   = "⚖️"
	IconScroll  = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// RankText colors a hunter rank letter.
func RankText(rank string) string {
	switch strings.ToUpper(strings.TrimSpace(rank)) {
	case "S":
		return Gold.Render("S")
	case "A", "B":
		return Good.Render(strings.ToUpper(rank))
	case "C", "D":
		return Warn.Render(strings.ToUpper(rank))
	default:
		return Muted.Render(strings.ToUpper(rank))
	}
}

// XPBar renders a fixed-width progress bar for xp out of maxXP.
func XPBar(xp, maxXP, width int) string {
	if width <= 0 {
		width = 20
	}
	if maxXP <= 0 {
		maxXP = 1
	}
	filled := xp * width / maxXP
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}
