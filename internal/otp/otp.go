// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package otp models the six-cell one-time-password entry row.
//
// The model is independent of rendering: screens translate key presses into
// Input, Paste and Backspace calls and read Code when the user submits.
package otp

import "strings"

// Length is the number of cells in an OTP row.
const Length = 6

// Input is a row of single-character cells with one focused cell.
// The zero value is an empty row focused on cell 0.
type Input struct {
	cells [Length]string
	focus int
}

// New returns an empty row.
func New() *Input {
	return &Input{}
}

// Focus returns the focused cell index.
func (in *Input) Focus() int {
	return in.focus
}

// SetFocus moves focus to i, clamped to the row.
func (in *Input) SetFocus(i int) {
	in.focus = clamp(i)
}

// Cell returns the content of cell i ("" when unset or out of range).
func (in *Input) Cell(i int) string {
	if i < 0 || i >= Length {
		return ""
	}
	return in.cells[i]
}

// Cells returns a copy of all cells.
func (in *Input) Cells() [Length]string {
	return in.cells
}

// Input stores the last character of s in cell i and moves focus to the
// next cell if there is one. Empty s is ignored.
func (in *Input) Input(i int, s string) {
	if i < 0 || i >= Length {
		return
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return
	}
	in.cells[i] = string(runes[len(runes)-1])
	if i+1 < Length {
		in.focus = i + 1
	}
}

// Paste distributes text across the cells starting at cell 0, one
// character each. Extra characters are dropped, cells past the pasted
// length keep their content, and focus does not move.
func (in *Input) Paste(text string) {
	for i, r := range []rune(text) {
		if i >= Length {
			break
		}
		in.cells[i] = string(r)
	}
}

// Backspace on an empty cell moves focus back one cell. On a filled cell
// it clears the cell and keeps focus.
func (in *Input) Backspace(i int) {
	if i < 0 || i >= Length {
		return
	}
	if in.cells[i] == "" {
		if i > 0 {
			in.focus = i - 1
		}
		return
	}
	in.cells[i] = ""
}

// Code concatenates the cells in order. Unset cells contribute nothing.
func (in *Input) Code() string {
	var b strings.Builder
	for _, c := range in.cells {
		b.WriteString(c)
	}
	return b.String()
}

// Complete reports whether every cell is set.
func (in *Input) Complete() bool {
	for _, c := range in.cells {
		if c == "" {
			return false
		}
	}
	return true
}

// Clear empties every cell and focuses cell 0.
func (in *Input) Clear() {
	*in = Input{}
}

func clamp(i int) int {
	switch {
	case i < 0:
		return 0
	case i >= Length:
		return Length - 1
	default:
		return i
	}
}
