// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewTheme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme holds all the styled components for the application.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// Layout
	App  lipgloss.Style
	Card lipgloss.Style

	// Headings
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Greeting lipgloss.Style

	// Forms
	Label        lipgloss.Style
	FieldFocused lipgloss.Style
	FieldBlurred lipgloss.Style
	FieldError   lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	Link         lipgloss.Style

	// OTP row
	OTPCell        lipgloss.Style
	OTPCellFocused lipgloss.Style

	// Toasts
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style

	// Footer
	Help    lipgloss.Style
	Spinner lipgloss.Style
}

// NewTheme creates a theme. name is "auto", "dark" or "light"; anything
// else is treated as auto.
func NewTheme(name string) *Theme {
	profile := termenv.ColorProfile()

	var isDark bool
	switch name {
	case ThemeDark:
		isDark = true
	case ThemeLight:
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{IsDark: isDark, ColorProfile: profile}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(1, 2)

	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 3)

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		MarginBottom(1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Greeting = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FieldFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(FocusRing).
		Padding(0, 1)

	t.FieldBlurred = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose)

	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SurfaceBright).
		Padding(0, 2)

	t.ButtonActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 2)

	t.Link = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	t.OTPCell = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Width(3).
		Align(lipgloss.Center)

	t.OTPCellFocused = t.OTPCell.
		BorderForeground(FocusRing).
		Bold(true)

	t.ToastSuccess = lipgloss.NewStyle().
		Foreground(Emerald).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(0, 1)

	t.ToastError = t.ToastSuccess.
		Foreground(Rose).
		BorderForeground(Rose)

	t.ToastInfo = t.ToastSuccess.
		Foreground(Amber).
		BorderForeground(Amber)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Indigo)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// CardWidth is the form card width for the current terminal size.
func (t *Theme) CardWidth() int {
	switch {
	case t.Width <= 0:
		return 48
	case t.Width < 56:
		return t.Width - 4
	case t.Width < 100:
		return 48
	default:
		return 60
	}
}

// =============================================================================
// SPINNER
// =============================================================================

// SpinnerConfig holds the frames of an in-flight indicator.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration of each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Frame returns frame i, wrapping around.
func (s SpinnerConfig) Frame(i int) string {
	if len(s.Frames) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return s.Frames[i%len(s.Frames)]
}

// DotsSpinner is shown while a request is in flight.
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    8,
}
