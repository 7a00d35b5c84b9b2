// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/otp"
	"github.com/jeranaias/authfront-tui/internal/router"
	"github.com/jeranaias/authfront-tui/internal/session"
)

// VerifyAPI is the part of the backend EmailVerify needs.
type VerifyAPI interface {
	VerifyAccount(ctx context.Context, otp string) (api.Envelope, error)
	SendVerifyOTP(ctx context.Context) (api.Envelope, error)
}

// EmailVerify checks the account verification OTP.
type EmailVerify struct {
	deps Deps
	api  VerifyAPI
}

// NewEmailVerify creates the flow.
func NewEmailVerify(client VerifyAPI, deps Deps) *EmailVerify {
	return &EmailVerify{deps: deps.withDefaults("verify"), api: client}
}

// Guard sends a logged-in user with a verified profile home. While the
// profile is unknown nothing happens. It reports whether it navigated.
func (v *EmailVerify) Guard(st session.State) bool {
	if !st.LoggedIn || !st.Profile.Verified() {
		return false
	}
	v.deps.Nav.Navigate(router.PathHome)
	return true
}

// SendOTP asks the backend to email a verification code and opens the
// verification screen.
func (v *EmailVerify) SendOTP(ctx context.Context) error {
	env, err := v.api.SendVerifyOTP(ctx)
	if err != nil {
		return v.deps.fail(err, "", "send verify otp failed")
	}
	v.deps.succeed(env.Message, "")
	v.deps.Nav.Navigate(router.PathEmailVerify)
	return nil
}

// Submit verifies code. On success the profile is reloaded before going
// home so the home screen sees the verified state.
func (v *EmailVerify) Submit(ctx context.Context, code string) error {
	if n := utf8.RuneCountInString(code); n != otp.Length {
		return fmt.Errorf("otp has %d of %d digits: %w", n, otp.Length, ErrRequired)
	}

	env, err := v.api.VerifyAccount(ctx, code)
	if err != nil {
		return v.deps.fail(err, "", "verify account failed")
	}
	v.deps.succeed(env.Message, "")
	_ = v.deps.Store.RefreshProfile(ctx)
	v.deps.Nav.Navigate(router.PathHome)
	return nil
}
