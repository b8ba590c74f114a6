package tui

import (
	"github.com/charmbracelet/lipgloss"

	"chatvault/internal/query"
)

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray

	// Input area
	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// Filter chips in the header
	styleFilterLabel = lipgloss.NewStyle().
				Foreground(colorDim)

	styleFilterValue = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	styleMatchCount = lipgloss.NewStyle().
			Foreground(colorHighlight)
)

// senderStyles renders aliases in their palette color, one style per slot.
var senderStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(query.Palette))
	for i, hex := range query.Palette {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
	}
	return styles
}()

func senderStyle(sender string) lipgloss.Style {
	return senderStyles[query.PaletteIndex(sender)]
}
