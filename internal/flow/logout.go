// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/router"
)

// LogoutAPI ends the backend session.
type LogoutAPI interface {
	Logout(ctx context.Context) (api.Envelope, error)
}

// Logout clears the backend session and the local store.
type Logout struct {
	deps Deps
	api  LogoutAPI
}

// NewLogout creates the flow.
func NewLogout(client LogoutAPI, deps Deps) *Logout {
	return &Logout{deps: deps.withDefaults("logout"), api: client}
}

// Submit logs out. The store is only reset once the backend agrees.
func (l *Logout) Submit(ctx context.Context) error {
	env, err := l.api.Logout(ctx)
	if err != nil {
		return l.deps.fail(err, "", "logout failed")
	}
	l.deps.Store.Reset()
	l.deps.succeed(env.Message, "")
	l.deps.Nav.Navigate(router.PathHome)
	return nil
}
