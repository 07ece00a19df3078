package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
	colorTagBg  = lipgloss.AdaptiveColor{Light: "#d0e8ff", Dark: "#1f3a5f"}
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleLabel = lipgloss.NewStyle().
			Bold(true)

	styleTag = lipgloss.NewStyle().
			Background(colorTagBg).
			Padding(0, 1).
			MarginRight(1)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			Padding(0, 2)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(colorGray).
				Border(lipgloss.HiddenBorder(), true, true, false, true).
				Padding(0, 2)

	styleButton = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}).
			Background(colorCyan).
			Padding(0, 2)

	styleButtonDisabled = lipgloss.NewStyle().
				Foreground(colorGray).
				Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#303030"}).
				Padding(0, 2)

	styleErrorBox = lipgloss.NewStyle().
			Foreground(colorRed).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorRed).
			PaddingLeft(1)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)
