// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authfront-tui/internal/flow"
	"github.com/jeranaias/authfront-tui/internal/router"
	"github.com/jeranaias/authfront-tui/internal/session"
	"github.com/jeranaias/authfront-tui/internal/ui/components"
)

// Login is the sign up / log in form.
type Login struct {
	base
	flow *flow.Login

	name     *components.Field
	email    *components.Field
	password *components.Field
	focus    int
	formErr  string
}

// NewLogin creates the login screen. A logged-in user is sent home at once.
func NewLogin(env *Env, life *session.Lifetime, queue *navQueue) *Login {
	l := &Login{base: newBase(env, life, queue)}
	l.flow = flow.NewLogin(env.Client, l.deps())
	l.name = components.NewField(env.Theme, "Full Name", "Ada Lovelace", false)
	l.email = components.NewField(env.Theme, "Email", "you@example.com", false)
	l.password = components.NewField(env.Theme, "Password", "", true)
	l.flow.Guard(env.Store.State())
	return l
}

// Mode returns the form mode.
func (l *Login) Mode() flow.Mode { return l.flow.Mode() }

func (l *Login) fields() []*components.Field {
	if l.flow.Mode() == flow.ModeSignUp {
		return []*components.Field{l.name, l.email, l.password}
	}
	return []*components.Field{l.email, l.password}
}

func (l *Login) Init() tea.Cmd {
	return l.setFocus(0)
}

func (l *Login) setFocus(i int) tea.Cmd {
	fields := l.fields()
	if i < 0 {
		i = len(fields) - 1
	}
	if i >= len(fields) {
		i = 0
	}
	l.focus = i
	var cmd tea.Cmd
	for j, f := range fields {
		if j == i {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	return cmd
}

func (l *Login) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		l.busy = false
		if errors.Is(msg.Err, flow.ErrRequired) {
			l.formErr = msg.Err.Error()
		}
		return l, nil
	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		keys := l.env.Keys
		switch {
		case key.Matches(msg, keys.Back):
			l.nav.Navigate(router.PathHome)
			return l, nil
		case key.Matches(msg, keys.ToggleMode):
			l.flow.Toggle()
			l.formErr = ""
			return l, l.setFocus(0)
		case key.Matches(msg, keys.Forgot):
			l.nav.Navigate(router.PathResetPassword)
			return l, nil
		case key.Matches(msg, keys.Next):
			return l, l.setFocus(l.focus + 1)
		case key.Matches(msg, keys.Prev):
			return l, l.setFocus(l.focus - 1)
		case key.Matches(msg, keys.Submit):
			return l, l.submit()
		}
		l.formErr = ""
	}
	return l, l.fields()[l.focus].Update(msg)
}

func (l *Login) submit() tea.Cmd {
	for i, f := range l.fields() {
		if strings.TrimSpace(f.Value()) == "" {
			f.Err = f.Label + " is required"
			return l.setFocus(i)
		}
	}
	creds := flow.Credentials{
		Name:     l.name.Value(),
		Email:    strings.TrimSpace(l.email.Value()),
		Password: l.password.Value(),
	}
	return l.run("login", func(ctx context.Context) error {
		return l.flow.Submit(ctx, creds)
	})
}

func (l *Login) View() string {
	theme := l.env.Theme
	mode := l.flow.Mode()

	var b strings.Builder
	if mode == flow.ModeSignUp {
		b.WriteString(theme.Title.Render("Create account"))
	} else {
		b.WriteString(theme.Title.Render("Login"))
	}
	b.WriteString("\n")

	for _, f := range l.fields() {
		f.SetWidth(theme.CardWidth() - 12)
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	if l.formErr != "" {
		b.WriteString(theme.FieldError.Render(l.formErr) + "\n")
	}

	b.WriteString("\n" + theme.ButtonActive.Render(mode.String()) + "\n\n")
	if mode == flow.ModeSignUp {
		b.WriteString(theme.Help.Render("Already have an account? ") + theme.Link.Render("Login here"))
	} else {
		b.WriteString(theme.Help.Render("Don't have an account? ") + theme.Link.Render("Sign up"))
	}

	if s := l.status(); s != "" {
		b.WriteString("\n" + s)
	}
	keys := l.env.Keys
	b.WriteString("\n" + l.help.ShortHelpView([]key.Binding{keys.Next, keys.Submit, keys.ToggleMode, keys.Forgot, keys.Back}))
	return theme.Card.Width(theme.CardWidth()).Render(b.String())
}
