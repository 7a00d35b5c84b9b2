// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"strings"
	"sync"
)

// Paths of the screens.
const (
	PathHome          = "/"
	PathLogin         = "/login"
	PathEmailVerify   = "/email-verify"
	PathResetPassword = "/reset-password"
)

// =============================================================================
// SCREENS
// =============================================================================

// Screen identifies a top-level screen.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenLogin
	ScreenEmailVerify
	ScreenResetPassword
)

// String returns the screen's display name.
func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "Login"
	case ScreenEmailVerify:
		return "Email Verify"
	case ScreenResetPassword:
		return "Reset Password"
	default:
		return "Home"
	}
}

// Route is one row of the path table.
type Route struct {
	Path   string
	Screen Screen
}

var routes = []Route{
	{Path: PathHome, Screen: ScreenHome},
	{Path: PathLogin, Screen: ScreenLogin},
	{Path: PathEmailVerify, Screen: ScreenEmailVerify},
	{Path: PathResetPassword, Screen: ScreenResetPassword},
}

// Routes returns the path table in declaration order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds the route for path. A trailing slash and any query string
// are ignored. Unknown paths resolve to Home.
func Lookup(path string) Route {
	path = Normalize(path)
	for _, r := range routes {
		if r.Path == path {
			return r
		}
	}
	return routes[0]
}

// Known reports whether path names a screen.
func Known(path string) bool {
	path = Normalize(path)
	for _, r := range routes {
		if r.Path == path {
			return true
		}
	}
	return false
}

// Normalize strips the query and trailing slash and ensures a leading one.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// =============================================================================
// NAVIGATION
// =============================================================================

// Navigator moves the app to another path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// History records navigations and optionally forwards them.
type History struct {
	mu    sync.Mutex
	paths []string
	next  Navigator
}

// NewHistory returns a History that forwards to next (which may be nil).
func NewHistory(next Navigator) *History {
	return &History{next: next}
}

// Navigate records path and forwards it.
func (h *History) Navigate(path string) {
	path = Normalize(path)
	h.mu.Lock()
	h.paths = append(h.paths, path)
	next := h.next
	h.mu.Unlock()

	if next != nil {
		next.Navigate(path)
	}
}

// Paths returns every recorded path, oldest first.
func (h *History) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.paths))
	copy(out, h.paths)
	return out
}

// Last returns the most recent path, or "" if none.
func (h *History) Last() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.paths) == 0 {
		return ""
	}
	return h.paths[len(h.paths)-1]
}
