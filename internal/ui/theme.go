package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ritualist theme. Kept intentionally small: reusable styles and a few
// emojis.

const (
	IconRitual  = "🕯️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconMiss    = "▫️"
	IconTrophy  = "🏆"
	IconFlame   = "🔥"
	IconClock   = "🕐"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconRest    = "🌙"
	IconLoop    = "🔁"
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
	Dim   = lipgloss.NewStyle().Foreground(cMuted)
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

// Slot renders an HH:MM time slot, or a muted placeholder for unscheduled
// rituals.
func Slot(t string) string {
	if t == "" {
		return Muted.Render("--:--")
	}
	return Key.Render(t)
}
