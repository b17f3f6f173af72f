package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - document text
	TextColor        = defaultColors[TokenTextPrimary]
	PlaceholderColor = defaultColors[TokenTextPlaceholder]
	VoidColor        = defaultColors[TokenTextVoid]
	CodeColor        = defaultColors[TokenTextCode]

	// Semantic color names - selection
	SelectionBgColor = defaultColors[TokenSelectionBackground]

	// Semantic color names - chrome
	StatusColor        = defaultColors[TokenStatusText]
	ReadOnlyBadgeColor = defaultColors[TokenStatusBadge]

	TextStyle        = lipgloss.NewStyle().Foreground(TextColor)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(PlaceholderColor).Italic(true)
	VoidStyle        = lipgloss.NewStyle().Foreground(VoidColor)
	SelectionStyle   = lipgloss.NewStyle().Background(SelectionBgColor)
	CursorStyle      = lipgloss.NewStyle().Reverse(true)

	// Mark styles keyed by the model mark name.
	StrongStyle = lipgloss.NewStyle().Bold(true)
	EmStyle     = lipgloss.NewStyle().Italic(true)
	CodeStyle   = lipgloss.NewStyle().Foreground(CodeColor)

	StatusStyle        = lipgloss.NewStyle().Foreground(StatusColor)
	ReadOnlyBadgeStyle = lipgloss.NewStyle().Foreground(ReadOnlyBadgeColor).Bold(true)
)
