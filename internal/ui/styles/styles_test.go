// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewTheme_Pinned(t *testing.T) {
	if theme := NewTheme(ThemeDark); !theme.IsDark {
		t.Error("dark theme should report IsDark")
	}
	if theme := NewTheme(ThemeLight); theme.IsDark {
		t.Error("light theme should not report IsDark")
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme(ThemeAuto)

	// OTP cells are one character wide; wider content wraps.
	styles := []struct {
		name    string
		style   lipgloss.Style
		content string
	}{
		{"Title", theme.Title, "test"},
		{"Card", theme.Card, "test"},
		{"FieldFocused", theme.FieldFocused, "test"},
		{"OTPCell", theme.OTPCell, "7"},
		{"OTPCellFocused", theme.OTPCellFocused, "7"},
		{"ToastError", theme.ToastError, "test"},
		{"ButtonActive", theme.ButtonActive, "test"},
	}

	for _, s := range styles {
		if rendered := s.style.Render(s.content); !strings.Contains(rendered, s.content) {
			t.Errorf("%s style lost its content: %q", s.name, rendered)
		}
	}
}

func TestOTPCellFixedWidth(t *testing.T) {
	theme := NewTheme(ThemeDark)
	for _, style := range []lipgloss.Style{theme.OTPCell, theme.OTPCellFocused} {
		rendered := style.Render("7")
		if !strings.Contains(rendered, "7") {
			t.Errorf("OTP cell lost its digit: %q", rendered)
		}
		if lipgloss.Width(rendered) != lipgloss.Width(style.Render(" ")) {
			t.Errorf("OTP cell width changes with content: %q", rendered)
		}
	}
}

func TestCardWidth(t *testing.T) {
	theme := NewTheme(ThemeDark)

	tests := []struct {
		width int
		want  int
	}{
		{0, 48},
		{40, 36},
		{80, 48},
		{120, 60},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.CardWidth(); got != tt.want {
			t.Errorf("CardWidth() at %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}

// =============================================================================
// STATUS HELPERS
// =============================================================================

func TestRenderStatus(t *testing.T) {
	if got := RenderStatus(true, "saved"); !strings.Contains(got, "[OK] saved") {
		t.Errorf("RenderStatus(true) = %q", got)
	}
	if got := RenderStatus(false, "failed"); !strings.Contains(got, "[X] failed") {
		t.Errorf("RenderStatus(false) = %q", got)
	}
	if got := RenderInfo("note"); !strings.Contains(got, "[i] note") {
		t.Errorf("RenderInfo = %q", got)
	}
	if got := RenderKey("tab"); !strings.Contains(got, "[tab]") {
		t.Errorf("RenderKey = %q", got)
	}
}

// =============================================================================
// SPINNER
// =============================================================================

func TestSpinnerConfig(t *testing.T) {
	if got := DotsSpinner.Duration(); got != time.Second/8 {
		t.Errorf("Duration() = %v", got)
	}
	if DotsSpinner.Frame(0) != DotsSpinner.Frame(len(DotsSpinner.Frames)) {
		t.Error("Frame should wrap")
	}
	if got := (SpinnerConfig{}).Frame(3); got != "" {
		t.Errorf("empty spinner frame = %q", got)
	}
	if got := (SpinnerConfig{}).Duration(); got != time.Second {
		t.Errorf("zero FPS duration = %v", got)
	}
}
