// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/notify"
	"github.com/jeranaias/authfront-tui/internal/router"
	"github.com/jeranaias/authfront-tui/internal/session"
)

var (
	// ErrRequired is returned when a form field is empty. No request is made.
	ErrRequired = errors.New("required field is empty")

	// ErrWrongStage is returned when a reset step is called out of order.
	ErrWrongStage = errors.New("reset password: wrong stage")
)

// Deps are the collaborators every flow shares.
type Deps struct {
	Store    *session.Store
	Notifier notify.Notifier
	Nav      router.Navigator
	Logger   *zap.Logger
}

func (d Deps) withDefaults(name string) Deps {
	if d.Notifier == nil {
		d.Notifier = notify.Discard
	}
	if d.Nav == nil {
		d.Nav = router.NavigatorFunc(func(string) {})
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	d.Logger = d.Logger.Named(name)
	return d
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: %w", field, ErrRequired)
	}
	return nil
}

// fail notifies once and hands err back. Canceled requests belong to a
// screen that is gone, so they are only logged.
func (d Deps) fail(err error, fallback, msg string) error {
	if errors.Is(err, api.ErrCanceled) {
		d.Logger.Debug(msg, zap.Error(err))
		return err
	}
	d.Logger.Info(msg, zap.Error(err))
	notify.Error(d.Notifier, notify.Message(err, fallback))
	return err
}

func (d Deps) succeed(message, fallback string) {
	if message == "" {
		message = fallback
	}
	if message != "" {
		notify.Success(d.Notifier, message)
	}
}
