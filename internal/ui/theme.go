package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CareerTrack theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconGrad   = "🎓"
	IconChart  = "📈"
	IconSpark  = "✨"
	IconTarget = "🎯"
	IconSync   = "🔄"
	IconCoach  = "🧭"
	IconFlame  = "🔥"
	IconInfo   = "ℹ️"
	IconWarn   = "⚠️"
	IconError  = "🧨"
	IconPerson = "👤"
	IconRoster = "🗂️"
	IconDaily  = "📅"
	IconCheck  = "✅"
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

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
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

// RiskText colors a model risk level (Low/Medium/High).
func RiskText(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "low":
		return Good.Render("Low")
	case "medium":
		return Warn.Render("Medium")
	case "high":
		return Bad.Render("High")
	default:
		return Muted.Render(level)
	}
}

// DifficultyText colors a challenge difficulty the way the platforms do.
func DifficultyText(difficulty string) string {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "easy":
		return Good.Render("Easy")
	case "medium":
		return Warn.Render("Medium")
	case "hard":
		return Bad.Render("Hard")
	default:
		return Muted.Render(difficulty)
	}
}

// SignedPercent renders a probability delta with its sign, green for gains
// and red for losses. A negative delta is never dressed up as a win.
func SignedPercent(delta int) string {
	switch {
	case delta > 0:
		return Good.Render(fmt.Sprintf("+%d%%", delta))
	case delta < 0:
		return Bad.Render(fmt.Sprintf("%d%%", delta))
	default:
		return Muted.Render("±0%")
	}
}

// ProgressBar renders a fixed-width bar for a 0-100 value.
func ProgressBar(value float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := int(value / 100 * float64(width))
	return Good.Render(strings.Repeat("█", filled)) + Dim.Render(strings.Repeat("░", width-filled))
}
