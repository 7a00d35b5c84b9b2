// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authfront-tui/internal/flow"
	"github.com/jeranaias/authfront-tui/internal/otp"
	"github.com/jeranaias/authfront-tui/internal/router"
	"github.com/jeranaias/authfront-tui/internal/session"
	"github.com/jeranaias/authfront-tui/internal/ui/components"
)

// EmailVerify asks for the code emailed to the user.
type EmailVerify struct {
	base
	flow    *flow.EmailVerify
	row     *components.OTPRow
	formErr string
}

// NewEmailVerify creates the screen. A verified user is sent home; while
// the profile is still loading the screen stays and re-checks on each
// store change.
func NewEmailVerify(env *Env, life *session.Lifetime, queue *navQueue) *EmailVerify {
	v := &EmailVerify{base: newBase(env, life, queue)}
	v.flow = flow.NewEmailVerify(env.Client, v.deps())
	v.row = components.NewOTPRow(env.Theme)
	v.flow.Guard(env.Store.State())
	return v
}

// OTP exposes the cell model.
func (v *EmailVerify) OTP() *otp.Input { return v.row.Input }

func (v *EmailVerify) Init() tea.Cmd { return nil }

func (v *EmailVerify) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		// The message may trail a newer write; the store is authoritative.
		v.flow.Guard(v.env.Store.State())
	case ResultMsg:
		v.busy = false
	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		keys := v.env.Keys
		switch {
		case key.Matches(msg, keys.Back):
			v.nav.Navigate(router.PathHome)
		case key.Matches(msg, keys.Resend):
			return v, v.run("send-verify-otp", v.flow.SendOTP)
		case key.Matches(msg, keys.Submit):
			return v, v.submit()
		default:
			if v.row.HandleKey(msg) {
				v.formErr = ""
			}
		}
	}
	return v, nil
}

func (v *EmailVerify) submit() tea.Cmd {
	if !v.row.Input.Complete() {
		v.formErr = "Enter all 6 digits"
		return nil
	}
	code := v.row.Input.Code()
	return v.run("verify-account", func(ctx context.Context) error {
		return v.flow.Submit(ctx, code)
	})
}

func (v *EmailVerify) View() string {
	theme := v.env.Theme

	var b strings.Builder
	b.WriteString(theme.Title.Render("Email Verify OTP"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Enter the 6-digit code sent to your email id."))
	b.WriteString("\n\n")
	b.WriteString(v.row.View(!v.busy))
	b.WriteString("\n")
	if v.formErr != "" {
		b.WriteString(theme.FieldError.Render(v.formErr) + "\n")
	}
	b.WriteString("\n" + theme.ButtonActive.Render("Verify email"))

	if s := v.status(); s != "" {
		b.WriteString("\n" + s)
	}
	keys := v.env.Keys
	b.WriteString("\n" + v.help.ShortHelpView([]key.Binding{keys.Submit, keys.Resend, keys.Back}))
	return theme.Card.Width(theme.CardWidth()).Render(b.String())
}
