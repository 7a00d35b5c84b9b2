// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/authfront-tui/internal/flow"
	"github.com/jeranaias/authfront-tui/internal/router"
	"github.com/jeranaias/authfront-tui/internal/session"
)

// Home actions.
const (
	actionLogin  = "Login"
	actionVerify = "Verify email"
	actionReset  = "Reset password"
	actionLogout = "Logout"
	actionQuit   = "Quit"
)

// Greeting is the home headline for a session state.
func Greeting(st session.State) string {
	name := strings.TrimSpace(st.Profile.Name())
	if name == "" {
		return "Hey Developer!"
	}
	return "Hey " + cases.Title(language.English).String(name) + "!"
}

// Home greets the user and lists what they can do.
type Home struct {
	base
	verify *flow.EmailVerify
	logout *flow.Logout
	cursor int
}

// NewHome creates the home screen.
func NewHome(env *Env, life *session.Lifetime, queue *navQueue) *Home {
	h := &Home{base: newBase(env, life, queue)}
	h.verify = flow.NewEmailVerify(env.Client, h.deps())
	h.logout = flow.NewLogout(env.Client, h.deps())
	return h
}

func (h *Home) Init() tea.Cmd { return nil }

// Actions lists the menu entries for the current state.
func (h *Home) Actions() []string {
	st := h.env.Store.State()
	if !st.LoggedIn {
		return []string{actionLogin, actionReset, actionQuit}
	}
	actions := make([]string, 0, 3)
	if !st.Profile.Verified() {
		actions = append(actions, actionVerify)
	}
	return append(actions, actionLogout, actionQuit)
}

func (h *Home) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		h.busy = false
		return h, nil
	case StateMsg:
		h.clampCursor()
		return h, nil
	case tea.KeyMsg:
		if h.busy {
			return h, nil
		}
		keys := h.env.Keys
		switch {
		case key.Matches(msg, keys.Quit):
			return h, tea.Quit
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.Actions())-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Submit):
			return h, h.choose()
		}
	}
	return h, nil
}

func (h *Home) clampCursor() {
	if n := len(h.Actions()); h.cursor >= n {
		h.cursor = n - 1
	}
}

func (h *Home) choose() tea.Cmd {
	h.clampCursor()
	switch h.Actions()[h.cursor] {
	case actionLogin:
		h.nav.Navigate(router.PathLogin)
	case actionReset:
		h.nav.Navigate(router.PathResetPassword)
	case actionVerify:
		return h.run("send-verify-otp", h.verify.SendOTP)
	case actionLogout:
		return h.run("logout", h.logout.Submit)
	case actionQuit:
		return tea.Quit
	}
	return nil
}

func (h *Home) View() string {
	theme := h.env.Theme
	st := h.env.Store.State()

	var b strings.Builder
	b.WriteString(theme.Greeting.Render(Greeting(st)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Welcome to authfront"))
	b.WriteString("\n\n")

	for i, a := range h.Actions() {
		style := theme.Button
		if i == h.cursor {
			style = theme.ButtonActive
		}
		b.WriteString(style.Render(a))
		b.WriteString("\n")
	}

	if s := h.status(); s != "" {
		b.WriteString("\n" + s)
	}
	keys := h.env.Keys
	b.WriteString("\n" + h.help.ShortHelpView([]key.Binding{keys.Up, keys.Down, keys.Submit, keys.Quit}))
	return theme.Card.Width(theme.CardWidth()).Render(b.String())
}
