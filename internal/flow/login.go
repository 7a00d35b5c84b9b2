// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"

	"go.uber.org/zap"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/router"
	"github.com/jeranaias/authfront-tui/internal/session"
)

// LoginAPI is the part of the backend Login needs.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (api.Envelope, error)
	Register(ctx context.Context, name, email, password string) (api.Envelope, error)
}

// Mode selects between account creation and sign-in.
type Mode int

const (
	ModeSignUp Mode = iota
	ModeLogin
)

func (m Mode) String() string {
	if m == ModeLogin {
		return "Login"
	}
	return "Sign Up"
}

// Credentials is the login form. Name is only used for sign up.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// Login signs the user up or in.
type Login struct {
	deps Deps
	api  LoginAPI
	mode Mode
}

// NewLogin starts in sign-up mode, like the web form.
func NewLogin(client LoginAPI, deps Deps) *Login {
	return &Login{deps: deps.withDefaults("login"), api: client, mode: ModeSignUp}
}

// Mode returns the current mode.
func (l *Login) Mode() Mode { return l.mode }

// SetMode switches mode.
func (l *Login) SetMode(m Mode) { l.mode = m }

// Toggle flips between sign up and login.
func (l *Login) Toggle() {
	if l.mode == ModeLogin {
		l.mode = ModeSignUp
	} else {
		l.mode = ModeLogin
	}
}

// Guard sends an already logged-in user home. It reports whether it did.
func (l *Login) Guard(st session.State) bool {
	if !st.LoggedIn {
		return false
	}
	l.deps.Nav.Navigate(router.PathHome)
	return true
}

// Submit posts the form for the current mode. On success the store is
// marked logged in, the profile is loaded and the app goes home.
func (l *Login) Submit(ctx context.Context, c Credentials) error {
	if l.mode == ModeSignUp {
		if err := required("name", c.Name); err != nil {
			return err
		}
	}
	if err := required("email", c.Email); err != nil {
		return err
	}
	if err := required("password", c.Password); err != nil {
		return err
	}

	var err error
	if l.mode == ModeSignUp {
		_, err = l.api.Register(ctx, c.Name, c.Email, c.Password)
	} else {
		_, err = l.api.Login(ctx, c.Email, c.Password)
	}
	if err != nil {
		return l.deps.fail(err, "", "login failed")
	}

	l.deps.Logger.Info("logged in", zap.Stringer("mode", l.mode))
	l.deps.Store.SetLoggedIn(true)
	// A failed refresh has already notified; still logged in.
	_ = l.deps.Store.RefreshProfile(ctx)
	l.deps.Nav.Navigate(router.PathHome)
	return nil
}
