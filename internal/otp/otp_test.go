// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_StoresLastCharAndAdvances(t *testing.T) {
	in := New()

	in.Input(0, "1")
	assert.Equal(t, "1", in.Cell(0))
	assert.Equal(t, 1, in.Focus())

	in.Input(1, "34")
	assert.Equal(t, "4", in.Cell(1))
	assert.Equal(t, 2, in.Focus())

	in.Input(2, "")
	assert.Equal(t, "", in.Cell(2))
	assert.Equal(t, 2, in.Focus())
}

func TestInput_LastCellKeepsFocus(t *testing.T) {
	in := New()
	in.SetFocus(5)
	in.Input(5, "9")
	assert.Equal(t, 5, in.Focus())
	assert.Equal(t, "9", in.Cell(5))
}

func TestInput_MultibyteRune(t *testing.T) {
	in := New()
	in.Input(0, "aé")
	assert.Equal(t, "é", in.Cell(0))
}

func TestInput_OutOfRangeIgnored(t *testing.T) {
	in := New()
	in.Input(-1, "1")
	in.Input(Length, "1")
	assert.Equal(t, "", in.Code())
	assert.Equal(t, 0, in.Focus())
}

func TestCode_ConcatenatesInOrder(t *testing.T) {
	in := New()
	in.Input(0, "1")
	in.Input(2, "3")
	in.Input(5, "6")
	assert.Equal(t, "136", in.Code())
	assert.False(t, in.Complete())
}

func TestPaste(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		cells [Length]string
	}{
		{"full", "123456", [Length]string{"1", "2", "3", "4", "5", "6"}},
		{"short", "12", [Length]string{"1", "2", "", "", "", ""}},
		{"long truncated", "12345678", [Length]string{"1", "2", "3", "4", "5", "6"}},
		{"empty", "", [Length]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			in.SetFocus(3)
			in.Paste(tt.text)
			assert.Equal(t, tt.cells, in.Cells())
			assert.Equal(t, 3, in.Focus(), "paste does not move focus")
		})
	}
}

func TestPaste_LeavesLaterCellsUntouched(t *testing.T) {
	in := New()
	for i := 0; i < Length; i++ {
		in.Input(i, "x")
	}
	in.Paste("12")
	assert.Equal(t, "12xxxx", in.Code())
	assert.True(t, in.Complete())
}

func TestPaste_FillsOnlyPastedCells(t *testing.T) {
	for k := 0; k <= Length; k++ {
		in := New()
		in.Paste("987654"[:k])
		for i := 0; i < Length; i++ {
			if i < k {
				assert.NotEmpty(t, in.Cell(i), "k=%d i=%d", k, i)
			} else {
				assert.Empty(t, in.Cell(i), "k=%d i=%d", k, i)
			}
		}
	}
}

func TestBackspace(t *testing.T) {
	in := New()
	in.Input(0, "1")
	in.Input(1, "2")
	assert.Equal(t, 2, in.Focus())

	// Empty cell: move back.
	in.Backspace(2)
	assert.Equal(t, 1, in.Focus())
	assert.Equal(t, "12", in.Code())

	// Filled cell: clear it, stay.
	in.Backspace(1)
	assert.Equal(t, 1, in.Focus())
	assert.Equal(t, "1", in.Code())

	in.Backspace(1)
	assert.Equal(t, 0, in.Focus())
}

func TestBackspace_FirstEmptyCellIsNoop(t *testing.T) {
	in := New()
	in.Backspace(0)
	assert.Equal(t, 0, in.Focus())
	assert.Equal(t, "", in.Code())
}

func TestCompleteAndClear(t *testing.T) {
	in := New()
	in.Paste("123456")
	assert.True(t, in.Complete())
	assert.Equal(t, "123456", in.Code())

	in.Clear()
	assert.False(t, in.Complete())
	assert.Equal(t, 0, in.Focus())
	assert.Equal(t, "", in.Code())
}

func TestSetFocus_Clamps(t *testing.T) {
	in := New()
	in.SetFocus(-4)
	assert.Equal(t, 0, in.Focus())
	in.SetFocus(40)
	assert.Equal(t, Length-1, in.Focus())
}
