// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for CLI output.

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authfront-tui/internal/notify"
)

func init() {
	lipgloss.SetColorProfile(ColorProfile())
}

var (
	// TitleStyle is used for command headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")). // Cyan
			MarginBottom(1)

	// LabelStyle is used for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14)

	// ValueStyle is used for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// SuccessStyle is used for success markers.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	// ErrorStyle is used for error markers.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// InfoStyle is used for informational markers.
	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	// DimStyle is used for hints and unset values.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// PromptStyle is used for prompt labels.
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)
)

// printField writes one aligned "label value" line.
func printField(w io.Writer, label, value string) {
	if value == "" {
		value = DimStyle.Render("-")
	} else {
		value = ValueStyle.Render(value)
	}
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render(label), value)
}

// yesNo renders a boolean as a colored yes or no.
func yesNo(v bool) string {
	if v {
		return SuccessStyle.Render("yes")
	}
	return ErrorStyle.Render("no")
}

// lineNotifier prints notifications as status lines. Errors go to errOut.
func lineNotifier(out, errOut io.Writer) notify.Notifier {
	return notify.Func(func(n notify.Notification) {
		switch n.Kind {
		case notify.KindError:
			fmt.Fprintf(errOut, "%s %s\n", ErrorStyle.Render("[X]"), n.Text)
		case notify.KindSuccess:
			fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("[OK]"), n.Text)
		default:
			fmt.Fprintf(out, "%s %s\n", InfoStyle.Render("[i]"), n.Text)
		}
	})
}
