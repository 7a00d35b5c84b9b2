// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth shortens s to at most maxWidth cells, appending "..." when
// anything was cut.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// WrapWidth word-wraps text so no line exceeds maxWidth cells. Words wider
// than maxWidth get a line of their own and are truncated.
func WrapWidth(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var current strings.Builder
	currentWidth := 0

	for _, word := range words {
		w := runewidth.StringWidth(word)
		if w > maxWidth {
			word = TruncateWidth(word, maxWidth)
			w = runewidth.StringWidth(word)
		}

		switch {
		case currentWidth == 0:
			current.WriteString(word)
			currentWidth = w
		case currentWidth+1+w <= maxWidth:
			current.WriteString(" ")
			current.WriteString(word)
			currentWidth += 1 + w
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			currentWidth = w
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return strings.Join(lines, "\n")
}
