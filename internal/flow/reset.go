// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/otp"
	"github.com/jeranaias/authfront-tui/internal/router"
)

// ResetAPI is the part of the backend ResetPassword needs.
type ResetAPI interface {
	SendResetOTP(ctx context.Context, email string) (api.Envelope, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (api.Envelope, error)
}

// Stage is the step the reset flow is waiting on.
type Stage int

const (
	AwaitingEmail Stage = iota
	AwaitingOTP
	AwaitingNewPassword
)

func (s Stage) String() string {
	switch s {
	case AwaitingOTP:
		return "awaiting_otp"
	case AwaitingNewPassword:
		return "awaiting_new_password"
	default:
		return "awaiting_email"
	}
}

// ResetPassword walks email, OTP and new password in order. There is no
// way back; a failed step stays where it is. State reads are safe while a
// step is in flight on another goroutine.
type ResetPassword struct {
	deps Deps
	api  ResetAPI

	mu           sync.Mutex
	email        string
	code         string
	emailSent    bool
	otpSubmitted bool
}

// NewResetPassword creates the flow at AwaitingEmail.
func NewResetPassword(client ResetAPI, deps Deps) *ResetPassword {
	return &ResetPassword{deps: deps.withDefaults("reset"), api: client}
}

// Stage derives the current step.
func (r *ResetPassword) Stage() Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stage()
}

func (r *ResetPassword) stage() Stage {
	switch {
	case !r.emailSent:
		return AwaitingEmail
	case !r.otpSubmitted:
		return AwaitingOTP
	default:
		return AwaitingNewPassword
	}
}

// Email returns the address the code was sent to.
func (r *ResetPassword) Email() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.email
}

func (r *ResetPassword) expect(s Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if got := r.stage(); got != s {
		return fmt.Errorf("%w: at %s, want %s", ErrWrongStage, got, s)
	}
	return nil
}

// SubmitEmail requests a reset code for email.
func (r *ResetPassword) SubmitEmail(ctx context.Context, email string) error {
	if err := r.expect(AwaitingEmail); err != nil {
		return err
	}
	if err := required("email", email); err != nil {
		return err
	}

	env, err := r.api.SendResetOTP(ctx, email)
	if err != nil {
		return r.deps.fail(err, "", "send reset otp failed")
	}
	r.deps.succeed(env.Message, "")
	r.mu.Lock()
	r.email = email
	r.emailSent = true
	r.mu.Unlock()
	return nil
}

// SubmitOTP records the code. The backend checks it with the new password.
func (r *ResetPassword) SubmitOTP(code string) error {
	if err := r.expect(AwaitingOTP); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(code); n != otp.Length {
		return fmt.Errorf("otp has %d of %d digits: %w", n, otp.Length, ErrRequired)
	}
	r.mu.Lock()
	r.code = code
	r.otpSubmitted = true
	r.mu.Unlock()
	return nil
}

// SubmitNewPassword resets the password and sends the user to login.
func (r *ResetPassword) SubmitNewPassword(ctx context.Context, password string) error {
	if err := r.expect(AwaitingNewPassword); err != nil {
		return err
	}
	if err := required("password", password); err != nil {
		return err
	}

	r.mu.Lock()
	email, code := r.email, r.code
	r.mu.Unlock()

	env, err := r.api.ResetPassword(ctx, email, code, password)
	if err != nil {
		return r.deps.fail(err, "", "reset password failed")
	}
	r.deps.succeed(env.Message, "")
	r.deps.Nav.Navigate(router.PathLogin)
	return nil
}
