// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authfront-tui/internal/flow"
	"github.com/jeranaias/authfront-tui/internal/router"
	"github.com/jeranaias/authfront-tui/internal/session"
	"github.com/jeranaias/authfront-tui/internal/ui/components"
)

// ResetPassword shows one form per stage of the reset flow.
type ResetPassword struct {
	base
	flow *flow.ResetPassword

	email    *components.Field
	row      *components.OTPRow
	password *components.Field
	formErr  string
}

// NewResetPassword creates the screen at the email stage.
func NewResetPassword(env *Env, life *session.Lifetime, queue *navQueue) *ResetPassword {
	r := &ResetPassword{base: newBase(env, life, queue)}
	r.flow = flow.NewResetPassword(env.Client, r.deps())
	r.email = components.NewField(env.Theme, "Email", "you@example.com", false)
	r.row = components.NewOTPRow(env.Theme)
	r.password = components.NewField(env.Theme, "New password", "", true)
	return r
}

// Stage reports the flow stage.
func (r *ResetPassword) Stage() flow.Stage { return r.flow.Stage() }

func (r *ResetPassword) Init() tea.Cmd {
	return r.email.Focus()
}

func (r *ResetPassword) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		r.busy = false
		if msg.Err == nil && msg.Op == "send-reset-otp" {
			r.email.Blur()
		}
		return r, nil
	case tea.KeyMsg:
		if r.busy {
			return r, nil
		}
		keys := r.env.Keys
		switch {
		case key.Matches(msg, keys.Back):
			r.nav.Navigate(router.PathHome)
			return r, nil
		case key.Matches(msg, keys.Submit):
			return r, r.submit()
		}
		r.formErr = ""
		switch r.flow.Stage() {
		case flow.AwaitingEmail:
			return r, r.email.Update(msg)
		case flow.AwaitingOTP:
			r.row.HandleKey(msg)
			return r, nil
		default:
			return r, r.password.Update(msg)
		}
	}
	return r, nil
}

func (r *ResetPassword) submit() tea.Cmd {
	switch r.flow.Stage() {
	case flow.AwaitingEmail:
		email := strings.TrimSpace(r.email.Value())
		if email == "" {
			r.email.Err = "Email is required"
			return nil
		}
		return r.run("send-reset-otp", func(ctx context.Context) error {
			return r.flow.SubmitEmail(ctx, email)
		})

	case flow.AwaitingOTP:
		if !r.row.Input.Complete() {
			r.formErr = "Enter all 6 digits"
			return nil
		}
		// No request: the code is checked together with the new password.
		if err := r.flow.SubmitOTP(r.row.Input.Code()); err != nil {
			r.formErr = err.Error()
			return nil
		}
		return r.password.Focus()

	default:
		password := r.password.Value()
		if password == "" {
			r.password.Err = "Password is required"
			return nil
		}
		return r.run("reset-password", func(ctx context.Context) error {
			return r.flow.SubmitNewPassword(ctx, password)
		})
	}
}

func (r *ResetPassword) View() string {
	theme := r.env.Theme

	var b strings.Builder
	switch r.flow.Stage() {
	case flow.AwaitingEmail:
		b.WriteString(theme.Title.Render("Reset password"))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("Enter your registered email address"))
		b.WriteString("\n\n")
		r.email.SetWidth(theme.CardWidth() - 12)
		b.WriteString(r.email.View())
		b.WriteString("\n\n" + theme.ButtonActive.Render("Submit"))

	case flow.AwaitingOTP:
		b.WriteString(theme.Title.Render("Reset password OTP"))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("Enter the 6-digit code sent to " + r.flow.Email()))
		b.WriteString("\n\n")
		b.WriteString(r.row.View(!r.busy))
		b.WriteString("\n\n" + theme.ButtonActive.Render("Submit"))

	default:
		b.WriteString(theme.Title.Render("New password"))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("Enter the new password below"))
		b.WriteString("\n\n")
		r.password.SetWidth(theme.CardWidth() - 12)
		b.WriteString(r.password.View())
		b.WriteString("\n\n" + theme.ButtonActive.Render("Submit"))
	}

	if r.formErr != "" {
		b.WriteString("\n" + theme.FieldError.Render(r.formErr))
	}
	if s := r.status(); s != "" {
		b.WriteString("\n" + s)
	}
	keys := r.env.Keys
	b.WriteString("\n" + r.help.ShortHelpView([]key.Binding{keys.Submit, keys.Back}))
	return theme.Card.Width(theme.CardWidth()).Render(b.String())
}
