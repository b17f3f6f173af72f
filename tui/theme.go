package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme carries the theme settings the terminal adapter can apply: a forced
// light/dark mode and per-token color overrides.
type Theme struct {
	Mode   string
	Colors map[string]string
}

// Color tokens accepted in Theme.Colors.
const (
	TokenTextPrimary         = "text.primary"
	TokenTextPlaceholder     = "text.placeholder"
	TokenTextVoid            = "text.void"
	TokenTextCode            = "text.code"
	TokenSelectionBackground = "selection.background"
	TokenStatusText          = "status.text"
	TokenStatusBadge         = "status.badge"
)

var defaultColors = map[string]lipgloss.AdaptiveColor{
	TokenTextPrimary:         {Light: "#1A1A1A", Dark: "#CCCCCC"},
	TokenTextPlaceholder:     {Light: "#666666", Dark: "#777777"},
	TokenTextVoid:            {Light: "#AAAAAA", Dark: "#696969"},
	TokenTextCode:            {Light: "#179299", Dark: "#94E2D5"},
	TokenSelectionBackground: {Light: "#BBDDFF", Dark: "#264F78"},
	TokenStatusText:          {Light: "#D9DCCF", Dark: "#696969"},
	TokenStatusBadge:         {Light: "#FECA57", Dark: "#FECA57"},
}

// ApplyTheme rebuilds the package style variables from the defaults plus
// cfg's overrides, so ApplyTheme(Theme{}) restores the defaults. It mutates
// package-level state; call it from the dispatch loop only.
func ApplyTheme(cfg Theme) error {
	switch cfg.Mode {
	case "":
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	default:
		return fmt.Errorf("theme mode must be \"light\", \"dark\", or empty, got %q", cfg.Mode)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(defaultColors))
	for token, c := range defaultColors {
		colors[token] = c
	}
	for token, hex := range cfg.Colors {
		if _, ok := colors[token]; !ok {
			return fmt.Errorf("unknown color token: %s", token)
		}
		if !isValidHexColor(hex) {
			return fmt.Errorf("invalid hex color for %s: %s", token, hex)
		}
		// An explicit override applies in both modes.
		colors[token] = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	TextColor = colors[TokenTextPrimary]
	PlaceholderColor = colors[TokenTextPlaceholder]
	VoidColor = colors[TokenTextVoid]
	CodeColor = colors[TokenTextCode]
	SelectionBgColor = colors[TokenSelectionBackground]
	StatusColor = colors[TokenStatusText]
	ReadOnlyBadgeColor = colors[TokenStatusBadge]

	rebuildStyles()
	return nil
}

// rebuildStyles recreates the Style objects; lipgloss styles capture colors
// at creation time.
func rebuildStyles() {
	TextStyle = lipgloss.NewStyle().Foreground(TextColor)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(PlaceholderColor).Italic(true)
	VoidStyle = lipgloss.NewStyle().Foreground(VoidColor)
	SelectionStyle = lipgloss.NewStyle().Background(SelectionBgColor)
	CodeStyle = lipgloss.NewStyle().Foreground(CodeColor)
	StatusStyle = lipgloss.NewStyle().Foreground(StatusColor)
	ReadOnlyBadgeStyle = lipgloss.NewStyle().Foreground(ReadOnlyBadgeColor).Bold(true)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
