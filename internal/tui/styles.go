// Package tui implements the Bubble Tea chat view for gab.
package tui

import (
	"hash/fnv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	colorGreen  = lipgloss.Color("#9ece6a") // green
	colorYellow = lipgloss.Color("#e0af68") // yellow
	colorBlue   = lipgloss.Color("#7aa2f7") // blue
	colorRed    = lipgloss.Color("#f7768e") // red
	colorGray   = lipgloss.Color("#565f89") // comment
	colorWhite  = lipgloss.Color("#c0caf5") // foreground
)

// authorPalette is cycled by ColorForString so each author keeps a stable color.
var authorPalette = []lipgloss.Color{
	colorGreen,
	colorYellow,
	colorBlue,
	lipgloss.Color("#bb9af7"), // magenta
	lipgloss.Color("#7dcfff"), // cyan
	lipgloss.Color("#ff9e64"), // orange
}

var (
	// Title style for the header bar.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			PaddingLeft(1)

	// Welcome line next to the title.
	welcomeStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(1)

	// Border around the message log.
	logStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray)

	// Sidebar with the active users list.
	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			PaddingLeft(1)

	sidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite)

	bodyStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	// Non-blocking error notice.
	noticeStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(1)
)

// iconDot marks an active user in the sidebar.
const iconDot = "•"

// ColorForString returns a stable palette color for s.
func ColorForString(s string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return authorPalette[h.Sum32()%uint32(len(authorPalette))]
}

// FormTheme returns the huh theme matching the palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = t.Focused.Title.Foreground(colorBlue).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(colorGray)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(colorRed)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(colorRed)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(colorBlue)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(colorBlue)
	t.Blurred = t.Focused
	return t
}
