// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authfront-tui/internal/otp"
	"github.com/jeranaias/authfront-tui/internal/ui/styles"
)

// OTPRow renders an otp.Input and maps keys onto it.
type OTPRow struct {
	Input *otp.Input
	theme *styles.Theme

	// readClipboard is swapped in tests.
	readClipboard func() (string, error)
}

// NewOTPRow creates an empty row.
func NewOTPRow(theme *styles.Theme) *OTPRow {
	return &OTPRow{
		Input:         otp.New(),
		theme:         theme,
		readClipboard: clipboard.ReadAll,
	}
}

// SetClipboardReader replaces the ctrl+v source.
func (r *OTPRow) SetClipboardReader(fn func() (string, error)) {
	r.readClipboard = fn
}

// HandleKey applies msg to the row and reports whether it was consumed.
//
//	one rune         store in the focused cell, advance
//	several runes    distribute from cell 0 (a terminal paste)
//	ctrl+v           paste from the system clipboard
//	backspace        clear cell, or step back when empty
//	left/right       move focus
//	tab/shift+tab    move focus
func (r *OTPRow) HandleKey(msg tea.KeyMsg) bool {
	in := r.Input
	switch msg.Type {
	case tea.KeyRunes:
		// A paste arrives as one message carrying every rune.
		if len(msg.Runes) > 1 {
			in.Paste(string(msg.Runes))
			return true
		}
		in.Input(in.Focus(), string(msg.Runes))
		return true
	case tea.KeyCtrlV:
		if r.readClipboard == nil {
			return true
		}
		if text, err := r.readClipboard(); err == nil {
			in.Paste(strings.TrimSpace(text))
		}
		return true
	case tea.KeyBackspace:
		in.Backspace(in.Focus())
		return true
	case tea.KeyLeft, tea.KeyShiftTab:
		in.SetFocus(in.Focus() - 1)
		return true
	case tea.KeyRight, tea.KeyTab:
		in.SetFocus(in.Focus() + 1)
		return true
	}
	return false
}

// View renders the cells side by side. focused controls whether the
// focused cell is highlighted.
func (r *OTPRow) View(focused bool) string {
	cells := make([]string, 0, otp.Length)
	for i := 0; i < otp.Length; i++ {
		style := r.theme.OTPCell
		if focused && i == r.Input.Focus() {
			style = r.theme.OTPCellFocused
		}
		c := r.Input.Cell(i)
		if c == "" {
			c = " "
		}
		cells = append(cells, style.Render(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
