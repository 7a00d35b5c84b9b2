// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jeranaias/authfront-tui/internal/api"
)

// newHeaderServer reports the request ID header of each request on seen.
func newHeaderServer(t *testing.T, seen chan<- string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case seen <- r.Header.Get(api.RequestIDHeader):
		default:
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(server.Close)
	return server.URL
}
