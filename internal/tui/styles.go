package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	// Background colors
	ColorBgHighlight = lipgloss.Color("#2C313C")

	// Foreground colors
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	// Syntax colors
	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")

	// UI colors
	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	// Header style
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			PaddingLeft(1)

	HeaderSubtitleStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	// Pane styles (module list and parameter pane)
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PaneFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBlue).
				Padding(0, 1)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	// Module list items
	ModuleStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	ModuleSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Background(ColorBgHighlight).
				Bold(true)

	// Parameter rows
	ParamNameStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	ParamNameSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Background(ColorBgHighlight).
				Bold(true)

	ParamValueStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ParamDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment).
			Italic(true)

	ParamPersistedStyle = lipgloss.NewStyle().
				Foreground(ColorCyan)

	WritableTagStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	ReadOnlyTagStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	// Search input
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	// Edit dialog
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(ColorBlue).
			Padding(1, 2)

	DialogTitleStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	// Help footer
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Notice styles
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
