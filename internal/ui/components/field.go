// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authfront-tui/internal/ui/styles"
)

// Field is a labeled single-line text input.
type Field struct {
	Label string
	Err   string

	input textinput.Model
	theme *styles.Theme
}

// NewField creates a field. Password fields echo '*'.
func NewField(theme *styles.Theme, label, placeholder string, password bool) *Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 36
	ti.Prompt = ""

	ti.TextStyle = lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	ti.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	ti.Cursor.Style = lipgloss.NewStyle().
		Foreground(styles.FocusRing)
	// Static cursor: Focus then returns no blink command.
	_ = ti.Cursor.SetMode(cursor.CursorStatic)

	if password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}

	return &Field{Label: label, input: ti, theme: theme}
}

// Focus focuses the field.
func (f *Field) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes focus.
func (f *Field) Blur() {
	f.input.Blur()
}

// Focused reports whether the field has focus.
func (f *Field) Focused() bool {
	return f.input.Focused()
}

// Value returns the text.
func (f *Field) Value() string {
	return f.input.Value()
}

// SetValue replaces the text.
func (f *Field) SetValue(v string) {
	f.input.SetValue(v)
}

// SetWidth sets the visible width of the text area.
func (f *Field) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	f.input.Width = width
}

// Reset clears the text and the error.
func (f *Field) Reset() {
	f.input.Reset()
	f.Err = ""
}

// Update forwards msg to the text input. Typing clears the error.
func (f *Field) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok && f.input.Focused() {
		f.Err = ""
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// View renders the label, the boxed input and the error line if any.
func (f *Field) View() string {
	box := f.theme.FieldBlurred
	if f.input.Focused() {
		box = f.theme.FieldFocused
	}
	out := f.theme.Label.Render(f.Label) + "\n" + box.Render(f.input.View())
	if f.Err != "" {
		out += "\n" + f.theme.FieldError.Render(f.Err)
	}
	return out
}
