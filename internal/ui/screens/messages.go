// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"github.com/jeranaias/authfront-tui/internal/session"
)

// Owned is implemented by messages that belong to one screen lifetime.
type Owned interface {
	Owner() uint64
}

// ResultMsg carries the outcome of a flow operation started by a screen.
type ResultMsg struct {
	owner uint64
	Op    string
	Err   error
}

// Owner returns the lifetime ID of the screen that started the operation.
func (m ResultMsg) Owner() uint64 { return m.owner }

// StateMsg delivers a session store change.
type StateMsg struct {
	State session.State
}

// BootDoneMsg is sent when the bootstrapper and its profile refresh finish.
type BootDoneMsg struct{}
