// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/api/apitest"
	"github.com/jeranaias/authfront-tui/internal/flow"
	"github.com/jeranaias/authfront-tui/internal/notify"
	"github.com/jeranaias/authfront-tui/internal/router"
	"github.com/jeranaias/authfront-tui/internal/session"
	"github.com/jeranaias/authfront-tui/internal/ui/components"
	"github.com/jeranaias/authfront-tui/internal/ui/styles"
)

type fixture struct {
	app     *App
	backend *apitest.Backend
	store   *session.Store
	toasts  *components.ToastManager
}

func newFixture(t *testing.T, start string, setup func(*apitest.Backend, *session.Store)) *fixture {
	t.Helper()
	backend := apitest.New(t)
	client := backend.Client()
	toasts := components.NewToastManager(time.Minute)
	store := session.NewStore(client, toasts, nil)
	if setup != nil {
		setup(backend, store)
	}
	app := NewApp(Options{
		Client:    client,
		Store:     store,
		Boot:      session.NewBootstrapper(client, store, toasts, nil),
		Toasts:    toasts,
		Theme:     styles.NewTheme(styles.ThemeDark),
		StartPath: start,
	})
	t.Cleanup(app.Close)
	return &fixture{app: app, backend: backend, store: store, toasts: toasts}
}

// drive runs cmd and feeds screen results back into the app. Other
// messages (ticks, quit) are dropped.
func (f *fixture) drive(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case ResultMsg:
			_, next := f.app.Update(msg)
			queue = append(queue, next)
		}
	}
}

func (f *fixture) press(msgs ...tea.KeyMsg) {
	for _, m := range msgs {
		_, cmd := f.app.Update(m)
		f.drive(cmd)
	}
}

func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// state delivers the current store state the way the subscription would.
func (f *fixture) state() {
	_, _ = f.app.Update(StateMsg{State: f.store.State()})
}

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	tab       = tea.KeyMsg{Type: tea.KeyTab}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	down      = tea.KeyMsg{Type: tea.KeyDown}
	ctrlT     = tea.KeyMsg{Type: tea.KeyCtrlT}
	ctrlX     = tea.KeyMsg{Type: tea.KeyCtrlX}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

// paste builds what the terminal sends for pasted text: one message
// carrying every rune.
func paste(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// HOME
// =============================================================================

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Hey Developer!", Greeting(session.State{}))
	assert.Equal(t, "Hey Alice!", Greeting(session.State{
		LoggedIn: true,
		Profile:  session.Known(api.UserProfile{Name: "alice"}),
	}))
	assert.Equal(t, "Hey Bob Smith!", Greeting(session.State{
		Profile: session.Known(api.UserProfile{Name: "bob smith"}),
	}))
}

func TestApp_StartsAtHome(t *testing.T) {
	f := newFixture(t, "", nil)
	assert.Equal(t, router.ScreenHome, f.app.Route().Screen)
	assert.Contains(t, f.app.View(), "Hey Developer!")
	assert.Equal(t, []string{router.PathHome}, f.app.History())
}

func TestApp_UnknownPathFallsBackHome(t *testing.T) {
	f := newFixture(t, "/admin", nil)
	assert.Equal(t, router.ScreenHome, f.app.Route().Screen)
}

func TestApp_Bootstrap(t *testing.T) {
	f := newFixture(t, "", func(b *apitest.Backend, _ *session.Store) {
		b.Respond(api.PathIsAuth, apitest.OK(""))
		b.Respond(api.PathUserData, apitest.User("alice", false))
	})

	msg := f.app.bootCmd()()
	assert.IsType(t, BootDoneMsg{}, msg)
	f.state()

	assert.True(t, f.store.State().LoggedIn)
	assert.Equal(t, 1, f.backend.Calls(api.PathUserData))
	assert.Contains(t, f.app.View(), "Hey Alice!")

	home := f.app.Screen().(*Home)
	assert.Equal(t, []string{actionVerify, actionLogout, actionQuit}, home.Actions())
}

func TestApp_BootstrapFailureShowsToast(t *testing.T) {
	f := newFixture(t, "", func(b *apitest.Backend, _ *session.Store) {
		b.Respond(api.PathIsAuth, apitest.Fail("Not Authorized. Login Again"))
	})

	f.app.bootCmd()()
	toasts := f.toasts.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.KindError, toasts[0].Kind)
	assert.Contains(t, f.app.View(), "Not Authorized. Login Again")

	f.press(ctrlX)
	assert.Empty(t, f.toasts.Toasts())
}

func TestHome_MenuNavigation(t *testing.T) {
	f := newFixture(t, "", nil)
	home := f.app.Screen().(*Home)
	assert.Equal(t, []string{actionLogin, actionReset, actionQuit}, home.Actions())

	f.press(enter)
	assert.Equal(t, router.ScreenLogin, f.app.Route().Screen)

	f.press(esc)
	f.press(down, enter)
	assert.Equal(t, router.ScreenResetPassword, f.app.Route().Screen)
}

func TestHome_Logout(t *testing.T) {
	f := newFixture(t, "", func(b *apitest.Backend, s *session.Store) {
		b.Respond(api.PathLogout, apitest.OK("Logged Out"))
		s.SetLoggedIn(true)
		s.SetProfile(session.Known(api.UserProfile{Name: "Alice", IsAccountVerified: true}))
	})

	home := f.app.Screen().(*Home)
	assert.Equal(t, []string{actionLogout, actionQuit}, home.Actions())

	f.press(enter)
	assert.Equal(t, session.State{}, f.store.State())
	assert.Equal(t, 1, f.backend.Calls(api.PathLogout))
	assert.Contains(t, f.app.View(), "Hey Developer!")
}

func TestHome_VerifySendsOTP(t *testing.T) {
	f := newFixture(t, "", func(b *apitest.Backend, s *session.Store) {
		b.Respond(api.PathSendVerifyOTP, apitest.OK("Verification OTP sent on email"))
		s.SetLoggedIn(true)
		s.SetProfile(session.Known(api.UserProfile{Name: "Alice"}))
	})

	f.press(enter)
	assert.Equal(t, router.ScreenEmailVerify, f.app.Route().Screen)
	assert.Equal(t, 1, f.backend.Calls(api.PathSendVerifyOTP))
}

// =============================================================================
// LOGIN
// =============================================================================

func TestLogin_SubmitWithKeys(t *testing.T) {
	f := newFixture(t, router.PathLogin, func(b *apitest.Backend, _ *session.Store) {
		b.Script(api.PathLogin, apitest.Response{Body: apitest.OK(""), SetSession: true})
		b.Respond(api.PathUserData, apitest.User("Alice", false))
	})

	f.press(ctrlT)
	require.Equal(t, flow.ModeLogin, f.app.Screen().(*Login).Mode())

	f.typeText("alice@example.com")
	f.press(tab)
	f.typeText("pw")
	f.press(enter)

	assert.Equal(t, map[string]any{"email": "alice@example.com", "password": "pw"}, f.backend.LastBody(api.PathLogin))
	assert.True(t, f.store.State().LoggedIn)
	assert.Equal(t, router.ScreenHome, f.app.Route().Screen)
	assert.Contains(t, f.app.View(), "Hey Alice!")
}

func TestLogin_RequiredField(t *testing.T) {
	f := newFixture(t, router.PathLogin, nil)
	f.press(enter)

	assert.Contains(t, f.app.View(), "Full Name is required")
	assert.Equal(t, 0, f.backend.Calls(api.PathRegister))
	assert.Equal(t, router.ScreenLogin, f.app.Route().Screen)
}

func TestLogin_RejectedStaysWithToast(t *testing.T) {
	f := newFixture(t, router.PathLogin, func(b *apitest.Backend, _ *session.Store) {
		b.Respond(api.PathLogin, apitest.Fail("Invalid password"))
	})

	f.press(ctrlT)
	f.typeText("a@b.c")
	f.press(tab)
	f.typeText("nope")
	f.press(enter)

	assert.Equal(t, router.ScreenLogin, f.app.Route().Screen)
	assert.Contains(t, f.app.View(), "Invalid password")
}

func TestLogin_GuardRedirects(t *testing.T) {
	f := newFixture(t, router.PathLogin, func(_ *apitest.Backend, s *session.Store) {
		s.SetLoggedIn(true)
	})
	assert.Equal(t, router.ScreenHome, f.app.Route().Screen)
	assert.Equal(t, []string{router.PathLogin, router.PathHome}, f.app.History())
}

// =============================================================================
// EMAIL VERIFY
// =============================================================================

func TestEmailVerify_TypeAndSubmit(t *testing.T) {
	f := newFixture(t, router.PathEmailVerify, func(b *apitest.Backend, s *session.Store) {
		b.Respond(api.PathVerifyAccount, apitest.OK("Email verified successfully"))
		b.Respond(api.PathUserData, apitest.User("Alice", true))
		s.SetLoggedIn(true)
		s.SetProfile(session.Known(api.UserProfile{Name: "Alice"}))
	})
	require.Equal(t, router.ScreenEmailVerify, f.app.Route().Screen)

	f.typeText("12345")
	f.press(enter)
	assert.Equal(t, 0, f.backend.Calls(api.PathVerifyAccount), "incomplete code is not sent")
	assert.Contains(t, f.app.View(), "Enter all 6 digits")

	f.typeText("6")
	f.press(enter)

	assert.Equal(t, map[string]any{"otp": "123456"}, f.backend.LastBody(api.PathVerifyAccount))
	assert.True(t, f.store.State().Profile.Verified())
	assert.Equal(t, router.ScreenHome, f.app.Route().Screen)
}

func TestEmailVerify_PasteAndBackspace(t *testing.T) {
	f := newFixture(t, router.PathEmailVerify, nil)
	screen := f.app.Screen().(*EmailVerify)

	f.press(paste("12"))
	assert.Equal(t, "12", screen.OTP().Code())
	assert.Equal(t, 0, screen.OTP().Focus())

	f.press(backspace)
	assert.Equal(t, "2", screen.OTP().Code())
}

func TestEmailVerify_FullPasteFillsEveryCell(t *testing.T) {
	f := newFixture(t, router.PathEmailVerify, nil)
	screen := f.app.Screen().(*EmailVerify)

	f.press(paste("123456"))
	assert.Equal(t, "123456", screen.OTP().Code())
	assert.True(t, screen.OTP().Complete())
}

func TestEmailVerify_TabMovesAcrossCells(t *testing.T) {
	f := newFixture(t, router.PathEmailVerify, nil)
	screen := f.app.Screen().(*EmailVerify)

	f.press(tab)
	f.press(tab)
	assert.Equal(t, 2, screen.OTP().Focus())
	f.press(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, screen.OTP().Focus())
	assert.Equal(t, router.ScreenEmailVerify, f.app.Route().Screen)
}

func TestEmailVerify_GuardWaitsForProfile(t *testing.T) {
	f := newFixture(t, router.PathEmailVerify, func(_ *apitest.Backend, s *session.Store) {
		s.SetLoggedIn(true)
	})
	assert.Equal(t, router.ScreenEmailVerify, f.app.Route().Screen, "unknown profile does not redirect")

	f.store.SetProfile(session.Known(api.UserProfile{Name: "Alice", IsAccountVerified: true}))
	f.state()
	assert.Equal(t, router.ScreenHome, f.app.Route().Screen)
}

func TestEmailVerify_StaleStateMsgUsesStore(t *testing.T) {
	f := newFixture(t, router.PathEmailVerify, func(_ *apitest.Backend, s *session.Store) {
		s.SetLoggedIn(true)
	})
	stale := f.store.State()

	f.store.SetProfile(session.Known(api.UserProfile{Name: "Alice", IsAccountVerified: true}))
	_, _ = f.app.Update(StateMsg{State: stale})
	assert.Equal(t, router.ScreenHome, f.app.Route().Screen, "guard reads the current store state")
}

func TestEmailVerify_LateResultDropped(t *testing.T) {
	f := newFixture(t, router.PathEmailVerify, func(b *apitest.Backend, _ *session.Store) {
		b.Respond(api.PathVerifyAccount, apitest.OK("Email verified successfully"))
		b.Respond(api.PathUserData, apitest.User("Alice", true))
	})
	release := f.backend.Block(api.PathVerifyAccount)
	defer release()

	f.press(paste("123456"))
	_, pending := f.app.Update(enter)
	require.NotNil(t, pending)

	// Leave before the response arrives.
	f.press(esc)
	require.Equal(t, router.ScreenHome, f.app.Route().Screen)

	done := make(chan struct{})
	go func() {
		f.drive(pending)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("pending request did not finish after leaving the screen")
	}

	assert.Equal(t, router.ScreenHome, f.app.Route().Screen)
	assert.Equal(t, []string{router.PathEmailVerify, router.PathHome}, f.app.History())
	assert.Empty(t, f.toasts.Toasts())
	assert.Equal(t, 0, f.backend.Calls(api.PathUserData))
}

func TestApp_DropsForeignResults(t *testing.T) {
	f := newFixture(t, router.PathLogin, nil)
	before := f.app.Screen()

	_, cmd := f.app.Update(ResultMsg{owner: 0, Op: "login"})
	assert.Nil(t, cmd)
	assert.Same(t, before, f.app.Screen())
}

// =============================================================================
// RESET PASSWORD
// =============================================================================

func TestResetPassword_Stages(t *testing.T) {
	f := newFixture(t, router.PathResetPassword, func(b *apitest.Backend, _ *session.Store) {
		b.Respond(api.PathSendResetOTP, apitest.OK("OTP sent to your email"))
		b.Respond(api.PathResetPassword, apitest.OK("Password has been reset successfully"))
	})
	screen := f.app.Screen().(*ResetPassword)
	assert.Equal(t, flow.AwaitingEmail, screen.Stage())

	f.typeText("alice@example.com")
	f.press(enter)
	assert.Equal(t, flow.AwaitingOTP, screen.Stage())
	assert.Contains(t, f.app.View(), "alice@example.com")

	f.press(paste("654321"))
	f.press(enter)
	assert.Equal(t, flow.AwaitingNewPassword, screen.Stage())
	assert.Equal(t, 0, f.backend.Calls(api.PathResetPassword), "code submission makes no request")

	f.typeText("n3w")
	f.press(enter)
	assert.Equal(t, map[string]any{
		"email":       "alice@example.com",
		"otp":         "654321",
		"newPassword": "n3w",
	}, f.backend.LastBody(api.PathResetPassword))
	assert.Equal(t, router.ScreenLogin, f.app.Route().Screen)
}

func TestResetPassword_EmptyEmail(t *testing.T) {
	f := newFixture(t, router.PathResetPassword, nil)
	f.press(enter)
	assert.Contains(t, f.app.View(), "Email is required")
	assert.Equal(t, 0, f.backend.Calls(api.PathSendResetOTP))
}

func TestView_ToastBesideScreen(t *testing.T) {
	f := newFixture(t, "", nil)
	_, _ = f.app.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	notify.Success(f.toasts, "Logged Out")

	view := f.app.View()
	assert.Contains(t, view, "Logged Out")
	assert.Contains(t, view, "Hey Developer!")
	assert.True(t, strings.Count(view, "\n") > 3)
}
