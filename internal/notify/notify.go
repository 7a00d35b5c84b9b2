// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify defines the user-visible notification contract.
//
// Every failed user action ends in exactly one notification. Nothing is
// rethrown to a caller or a global handler; the UI decides how to render
// what arrives here (toasts in the TUI, styled lines in the CLI).
package notify

import (
	"errors"
	"strings"
	"sync"
)

// Kind is the severity of a notification.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Notification is one user-visible message.
type Notification struct {
	Kind Kind
	Text string
}

// Notifier receives notifications. Implementations must be safe for
// concurrent use since network results arrive on command goroutines.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(Notification)

// Notify calls f(n).
func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Error emits an error notification.
func Error(n Notifier, text string) {
	n.Notify(Notification{Kind: KindError, Text: text})
}

// Success emits a success notification.
func Success(n Notifier, text string) {
	n.Notify(Notification{Kind: KindSuccess, Text: text})
}

// Info emits an informational notification.
func Info(n Notifier, text string) {
	n.Notify(Notification{Kind: KindInfo, Text: text})
}

// =============================================================================
// MESSAGE EXTRACTION
// =============================================================================

// BackendMessager is implemented by errors that carry a message from the
// remote API (api.ClientError does). reported is true when the API answered
// normally but declared failure; such errors have no transport-level text of
// their own, so an empty msg goes straight to the fallback.
type BackendMessager interface {
	BackendMessage() (msg string, reported bool)
}

// UnknownErrorText is shown when nothing better is available.
const UnknownErrorText = "An unknown error occurred"

// Message picks the best user-facing text for err, in priority order:
// the backend-reported message, the error's own message, then fallback.
// An empty fallback becomes UnknownErrorText.
func Message(err error, fallback string) string {
	if fallback == "" {
		fallback = UnknownErrorText
	}
	if err == nil {
		return fallback
	}

	var bm BackendMessager
	if errors.As(err, &bm) {
		msg, reported := bm.BackendMessage()
		if msg = strings.TrimSpace(msg); msg != "" {
			return msg
		}
		if reported {
			return fallback
		}
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

// =============================================================================
// RECORDER
// =============================================================================

// Recorder keeps every notification it receives. The CLI uses it to print
// after a command finishes, and tests use it for assertions.
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

// Notify records n.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

// All returns a copy of the recorded notifications, oldest first.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.all))
	copy(out, r.all)
	return out
}

// Errors returns the text of each error notification.
func (r *Recorder) Errors() []string {
	return r.texts(KindError)
}

// Successes returns the text of each success notification.
func (r *Recorder) Successes() []string {
	return r.texts(KindSuccess)
}

func (r *Recorder) texts(kind Kind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.all {
		if n.Kind == kind {
			out = append(out, n.Text)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = nil
}
