// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package apitest provides an in-process fake of the auth backend for tests.
//
// Each endpoint path is scripted with a canned JSON response. The fake
// records call counts, decoded request bodies and the Cookie header of each
// request, so tests can assert on traffic as well as client state.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jeranaias/authfront-tui/internal/api"
)

// SessionCookie is the cookie name the fake issues on login.
const SessionCookie = "token"

// Response is a scripted reply.
type Response struct {
	Status int
	Body   any
	// SetSession issues the session cookie with this reply.
	SetSession bool
}

// Request is what the fake saw.
type Request struct {
	Method string
	Body   map[string]any
	Cookie string
}

// Backend is a scripted fake of the auth API.
type Backend struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]Response
	requests  map[string][]Request
	gates     map[string]chan struct{}
}

// New starts a fake backend that is closed when the test ends. Unscripted
// paths answer 404 with a JSON envelope.
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		responses: make(map[string]Response),
		requests:  make(map[string][]Request),
		gates:     make(map[string]chan struct{}),
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(func() {
		b.releaseAll()
		b.server.Close()
	})
	return b
}

// URL is the fake's base URL.
func (b *Backend) URL() string {
	return b.server.URL
}

// Client returns a fresh api.Client pointed at the fake.
func (b *Backend) Client() *api.Client {
	return api.NewClient(b.server.URL)
}

// Respond scripts a 200 reply with body for path.
func (b *Backend) Respond(path string, body any) {
	b.Script(path, Response{Status: http.StatusOK, Body: body})
}

// Script sets the reply for path.
func (b *Backend) Script(path string, r Response) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.Status == 0 {
		r.Status = http.StatusOK
	}
	b.responses[path] = r
}

// Block makes requests to path wait until the returned release func is
// called (or the test ends).
func (b *Backend) Block(path string) (release func()) {
	gate := make(chan struct{})
	b.mu.Lock()
	b.gates[path] = gate
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			// releaseAll may have closed it already.
			if b.gates[path] == gate {
				delete(b.gates, path)
				close(gate)
			}
		})
	}
}

// Calls returns how many requests hit path.
func (b *Backend) Calls(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests[path])
}

// Requests returns the requests seen on path, oldest first.
func (b *Backend) Requests(path string) []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests[path]))
	copy(out, b.requests[path])
	return out
}

// LastBody returns the decoded JSON body of the latest request to path.
func (b *Backend) LastBody(path string) map[string]any {
	reqs := b.Requests(path)
	if len(reqs) == 0 {
		return nil
	}
	return reqs[len(reqs)-1].Body
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &body)
	}

	b.mu.Lock()
	b.requests[r.URL.Path] = append(b.requests[r.URL.Path], Request{
		Method: r.Method,
		Body:   body,
		Cookie: r.Header.Get("Cookie"),
	})
	resp, ok := b.responses[r.URL.Path]
	gate := b.gates[r.URL.Path]
	b.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	if !ok {
		resp = Response{
			Status: http.StatusNotFound,
			Body:   map[string]any{"success": false, "message": "not found"},
		}
	}

	if resp.SetSession {
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "session-1", Path: "/", HttpOnly: true})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)

	switch v := resp.Body.(type) {
	case nil:
	case string:
		_, _ = io.WriteString(w, v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (b *Backend) releaseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for path, gate := range b.gates {
		close(gate)
		delete(b.gates, path)
	}
}

// =============================================================================
// CANNED BODIES
// =============================================================================

// OK is {"success": true, "message": msg}.
func OK(msg string) map[string]any {
	return map[string]any{"success": true, "message": msg}
}

// Fail is {"success": false, "message": msg}.
func Fail(msg string) map[string]any {
	return map[string]any{"success": false, "message": msg}
}

// User is a /api/user/data success body.
func User(name string, verified bool) map[string]any {
	return map[string]any{
		"success": true,
		"userData": map[string]any{
			"name":              name,
			"isAccountVerified": verified,
		},
	}
}
