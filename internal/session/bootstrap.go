// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/notify"
)

// FallbackAuthStatus is shown when is-auth fails without a message.
const FallbackAuthStatus = "Failed to get authentication status"

// AuthChecker asks the backend whether the session cookie is valid.
type AuthChecker interface {
	IsAuth(ctx context.Context) (api.Envelope, error)
}

// Bootstrapper populates the store once when the app mounts.
type Bootstrapper struct {
	checker  AuthChecker
	store    *Store
	notifier notify.Notifier
	logger   *zap.Logger

	once sync.Once
	done chan struct{}
}

// NewBootstrapper wires a bootstrapper to the store it fills.
func NewBootstrapper(checker AuthChecker, store *Store, notifier notify.Notifier, logger *zap.Logger) *Bootstrapper {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bootstrapper{
		checker:  checker,
		store:    store,
		notifier: notifier,
		logger:   logger.Named("bootstrap"),
		done:     make(chan struct{}),
	}
}

// Run checks is-auth and, if the user is logged in, starts a profile
// refresh without waiting for it. Only the first call does anything.
func (b *Bootstrapper) Run(ctx context.Context) {
	b.once.Do(func() { b.run(ctx) })
}

func (b *Bootstrapper) run(ctx context.Context) {
	env, err := b.checker.IsAuth(ctx)
	if err != nil {
		defer close(b.done)
		if ctx.Err() != nil {
			b.logger.Debug("auth check abandoned", zap.Error(err))
			return
		}
		b.logger.Info("auth check failed", zap.Error(err))
		notify.Error(b.notifier, notify.Message(err, FallbackAuthStatus))
		return
	}

	b.logger.Debug("session is authenticated", zap.String("message", env.Message))
	b.store.SetLoggedIn(true)

	refreshed := b.store.RefreshProfileAsync(ctx)
	go func() {
		<-refreshed
		close(b.done)
	}()
}

// Wait blocks until Run and the refresh it started have finished. It must
// only be called after Run.
func (b *Bootstrapper) Wait() {
	<-b.done
}

// Done is closed once Run and its refresh have finished.
func (b *Bootstrapper) Done() <-chan struct{} {
	return b.done
}
