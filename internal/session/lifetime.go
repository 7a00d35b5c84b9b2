// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync/atomic"
)

var lifetimeSeq atomic.Uint64

// Lifetime scopes async work to a screen. Ending it cancels the context
// handed to in-flight requests, and its ID lets the host drop results that
// arrive after the screen is gone.
type Lifetime struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// NewLifetime starts a lifetime derived from parent.
func NewLifetime(parent context.Context) *Lifetime {
	ctx, cancel := context.WithCancel(parent)
	return &Lifetime{
		id:     lifetimeSeq.Add(1),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ID is unique per lifetime within the process.
func (l *Lifetime) ID() uint64 {
	return l.id
}

// Context is canceled when the lifetime ends.
func (l *Lifetime) Context() context.Context {
	return l.ctx
}

// End cancels outstanding work. Safe to call more than once.
func (l *Lifetime) End() {
	l.cancel()
}

// Alive reports whether End has not been called (and the parent is live).
func (l *Lifetime) Alive() bool {
	return l.ctx.Err() == nil
}

// Owns reports whether a result tagged with id belongs to this lifetime and
// may still be applied.
func (l *Lifetime) Owns(id uint64) bool {
	return l != nil && l.id == id && l.Alive()
}
