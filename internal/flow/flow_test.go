// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/api/apitest"
	"github.com/jeranaias/authfront-tui/internal/flow"
	"github.com/jeranaias/authfront-tui/internal/notify"
	"github.com/jeranaias/authfront-tui/internal/router"
	"github.com/jeranaias/authfront-tui/internal/session"
)

type harness struct {
	backend *apitest.Backend
	client  *api.Client
	store   *session.Store
	rec     *notify.Recorder
	history *router.History
	deps    flow.Deps
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		backend: apitest.New(t),
		rec:     &notify.Recorder{},
		history: router.NewHistory(nil),
	}
	h.client = h.backend.Client()
	h.store = session.NewStore(h.client, h.rec, nil)
	h.deps = flow.Deps{Store: h.store, Notifier: h.rec, Nav: h.history}
	return h
}

// =============================================================================
// LOGIN
// =============================================================================

func TestLogin_ModeToggle(t *testing.T) {
	h := newHarness(t)
	l := flow.NewLogin(h.client, h.deps)
	assert.Equal(t, flow.ModeSignUp, l.Mode())
	assert.Equal(t, "Sign Up", l.Mode().String())

	l.Toggle()
	assert.Equal(t, flow.ModeLogin, l.Mode())
	assert.Equal(t, "Login", l.Mode().String())

	l.Toggle()
	assert.Equal(t, flow.ModeSignUp, l.Mode())
}

func TestLogin_SubmitLogin(t *testing.T) {
	h := newHarness(t)
	h.backend.Script(api.PathLogin, apitest.Response{Body: apitest.OK(""), SetSession: true})
	h.backend.Respond(api.PathUserData, apitest.User("Alice", false))

	l := flow.NewLogin(h.client, h.deps)
	l.SetMode(flow.ModeLogin)
	require.NoError(t, l.Submit(context.Background(), flow.Credentials{Email: "alice@example.com", Password: "pw"}))

	st := h.store.State()
	assert.True(t, st.LoggedIn)
	assert.Equal(t, "Alice", st.Profile.Name())
	assert.Equal(t, []string{router.PathHome}, h.history.Paths())
	assert.Equal(t, map[string]any{"email": "alice@example.com", "password": "pw"}, h.backend.LastBody(api.PathLogin))
	assert.Contains(t, h.backend.Requests(api.PathUserData)[0].Cookie, apitest.SessionCookie)
}

func TestLogin_SubmitSignUp(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathRegister, apitest.OK(""))
	h.backend.Respond(api.PathUserData, apitest.User("Alice", false))

	l := flow.NewLogin(h.client, h.deps)
	require.NoError(t, l.Submit(context.Background(), flow.Credentials{Name: "Alice", Email: "a@b.c", Password: "pw"}))
	assert.Equal(t, 1, h.backend.Calls(api.PathRegister))
	assert.Equal(t, 0, h.backend.Calls(api.PathLogin))
	assert.True(t, h.store.State().LoggedIn)
}

func TestLogin_RequiredFields(t *testing.T) {
	h := newHarness(t)
	l := flow.NewLogin(h.client, h.deps)

	err := l.Submit(context.Background(), flow.Credentials{Email: "a@b.c", Password: "pw"})
	assert.ErrorIs(t, err, flow.ErrRequired)
	assert.Contains(t, err.Error(), "name")

	l.SetMode(flow.ModeLogin)
	err = l.Submit(context.Background(), flow.Credentials{Email: " ", Password: "pw"})
	assert.ErrorIs(t, err, flow.ErrRequired)

	assert.Equal(t, 0, h.backend.Calls(api.PathLogin))
	assert.Equal(t, 0, h.backend.Calls(api.PathRegister))
	assert.Empty(t, h.rec.All())
}

func TestLogin_Rejected(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathLogin, apitest.Fail("Invalid password"))

	l := flow.NewLogin(h.client, h.deps)
	l.SetMode(flow.ModeLogin)
	err := l.Submit(context.Background(), flow.Credentials{Email: "a@b.c", Password: "bad"})
	assert.ErrorIs(t, err, api.ErrRejected)
	assert.Equal(t, []string{"Invalid password"}, h.rec.Errors())
	assert.False(t, h.store.State().LoggedIn)
	assert.Empty(t, h.history.Paths())
	assert.Equal(t, 0, h.backend.Calls(api.PathUserData))
}

func TestLogin_Guard(t *testing.T) {
	h := newHarness(t)
	l := flow.NewLogin(h.client, h.deps)

	assert.False(t, l.Guard(session.State{}))
	assert.Empty(t, h.history.Paths())

	assert.True(t, l.Guard(session.State{LoggedIn: true}))
	assert.Equal(t, router.PathHome, h.history.Last())
}

// =============================================================================
// EMAIL VERIFY
// =============================================================================

func TestEmailVerify_Guard(t *testing.T) {
	verified := session.Known(api.UserProfile{Name: "A", IsAccountVerified: true})
	unverified := session.Known(api.UserProfile{Name: "A"})

	tests := []struct {
		name     string
		state    session.State
		redirect bool
	}{
		{"logged out", session.State{}, false},
		{"logged in unknown profile", session.State{LoggedIn: true}, false},
		{"logged in unverified", session.State{LoggedIn: true, Profile: unverified}, false},
		{"logged out verified", session.State{Profile: verified}, false},
		{"logged in verified", session.State{LoggedIn: true, Profile: verified}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			v := flow.NewEmailVerify(h.client, h.deps)
			assert.Equal(t, tt.redirect, v.Guard(tt.state))
			if tt.redirect {
				assert.Equal(t, []string{router.PathHome}, h.history.Paths())
			} else {
				assert.Empty(t, h.history.Paths())
			}
		})
	}
}

func TestEmailVerify_Submit(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathVerifyAccount, apitest.OK("Email verified successfully"))
	h.backend.Respond(api.PathUserData, apitest.User("Alice", true))

	v := flow.NewEmailVerify(h.client, h.deps)
	require.NoError(t, v.Submit(context.Background(), "123456"))

	assert.Equal(t, map[string]any{"otp": "123456"}, h.backend.LastBody(api.PathVerifyAccount))
	assert.Equal(t, []string{"Email verified successfully"}, h.rec.Successes())
	assert.True(t, h.store.State().Profile.Verified())
	assert.Equal(t, []string{router.PathHome}, h.history.Paths())
}

func TestEmailVerify_SubmitIncomplete(t *testing.T) {
	h := newHarness(t)
	v := flow.NewEmailVerify(h.client, h.deps)

	assert.ErrorIs(t, v.Submit(context.Background(), "123"), flow.ErrRequired)
	assert.Equal(t, 0, h.backend.Calls(api.PathVerifyAccount))
}

func TestEmailVerify_SubmitRejected(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathVerifyAccount, apitest.Fail("Invalid OTP"))

	v := flow.NewEmailVerify(h.client, h.deps)
	require.Error(t, v.Submit(context.Background(), "000000"))
	assert.Equal(t, []string{"Invalid OTP"}, h.rec.Errors())
	assert.Empty(t, h.rec.Successes())
	assert.Equal(t, 0, h.backend.Calls(api.PathUserData))
	assert.Empty(t, h.history.Paths())
}

func TestEmailVerify_SubmitRejectedWithoutMessage(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathVerifyAccount, map[string]any{"success": false})

	v := flow.NewEmailVerify(h.client, h.deps)
	require.Error(t, v.Submit(context.Background(), "000000"))
	assert.Equal(t, []string{notify.UnknownErrorText}, h.rec.Errors())
}

func TestEmailVerify_SendOTP(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathSendVerifyOTP, apitest.OK("Verification OTP sent on email"))

	v := flow.NewEmailVerify(h.client, h.deps)
	require.NoError(t, v.SendOTP(context.Background()))
	assert.Equal(t, []string{"Verification OTP sent on email"}, h.rec.Successes())
	assert.Equal(t, router.PathEmailVerify, h.history.Last())
}

func TestEmailVerify_SendOTPFailure(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathSendVerifyOTP, apitest.Fail("Account already verified"))

	v := flow.NewEmailVerify(h.client, h.deps)
	require.Error(t, v.SendOTP(context.Background()))
	assert.Equal(t, []string{"Account already verified"}, h.rec.Errors())
	assert.Empty(t, h.history.Paths())
}

// =============================================================================
// RESET PASSWORD
// =============================================================================

func TestResetPassword_HappyPath(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathSendResetOTP, apitest.OK("OTP sent to your email"))
	h.backend.Respond(api.PathResetPassword, apitest.OK("Password has been reset successfully"))
	ctx := context.Background()

	r := flow.NewResetPassword(h.client, h.deps)
	assert.Equal(t, flow.AwaitingEmail, r.Stage())

	require.NoError(t, r.SubmitEmail(ctx, "alice@example.com"))
	assert.Equal(t, flow.AwaitingOTP, r.Stage())
	assert.Equal(t, "alice@example.com", r.Email())

	calls := h.backend.Calls(api.PathSendResetOTP) + h.backend.Calls(api.PathResetPassword)
	require.NoError(t, r.SubmitOTP("654321"))
	assert.Equal(t, flow.AwaitingNewPassword, r.Stage())
	assert.Equal(t, calls, h.backend.Calls(api.PathSendResetOTP)+h.backend.Calls(api.PathResetPassword),
		"submitting the OTP makes no request")

	require.NoError(t, r.SubmitNewPassword(ctx, "n3w-secret"))
	assert.Equal(t, map[string]any{
		"email":       "alice@example.com",
		"otp":         "654321",
		"newPassword": "n3w-secret",
	}, h.backend.LastBody(api.PathResetPassword))
	assert.Equal(t, []string{router.PathLogin}, h.history.Paths())
	assert.Equal(t, []string{"OTP sent to your email", "Password has been reset successfully"}, h.rec.Successes())
}

func TestResetPassword_EmailRejectedStays(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathSendResetOTP, apitest.Fail("User not found"))

	r := flow.NewResetPassword(h.client, h.deps)
	require.Error(t, r.SubmitEmail(context.Background(), "nobody@example.com"))
	assert.Equal(t, flow.AwaitingEmail, r.Stage())
	assert.Equal(t, []string{"User not found"}, h.rec.Errors())
}

func TestResetPassword_BadOTPRejectedAtFinalStep(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathSendResetOTP, apitest.OK("sent"))
	h.backend.Respond(api.PathResetPassword, apitest.Fail("Invalid OTP"))
	ctx := context.Background()

	r := flow.NewResetPassword(h.client, h.deps)
	require.NoError(t, r.SubmitEmail(ctx, "alice@example.com"))
	require.NoError(t, r.SubmitOTP("000000"))
	require.Error(t, r.SubmitNewPassword(ctx, "pw"))

	assert.Equal(t, flow.AwaitingNewPassword, r.Stage())
	assert.Equal(t, []string{"Invalid OTP"}, h.rec.Errors())
	assert.Empty(t, h.history.Paths())
}

func TestResetPassword_WrongStage(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	r := flow.NewResetPassword(h.client, h.deps)

	assert.ErrorIs(t, r.SubmitOTP("123456"), flow.ErrWrongStage)
	assert.ErrorIs(t, r.SubmitNewPassword(ctx, "pw"), flow.ErrWrongStage)
	assert.Equal(t, 0, h.backend.Calls(api.PathResetPassword))

	h.backend.Respond(api.PathSendResetOTP, apitest.OK("sent"))
	require.NoError(t, r.SubmitEmail(ctx, "a@b.c"))
	assert.ErrorIs(t, r.SubmitEmail(ctx, "a@b.c"), flow.ErrWrongStage)
	assert.Equal(t, 1, h.backend.Calls(api.PathSendResetOTP))
}

func TestResetPassword_IncompleteOTP(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathSendResetOTP, apitest.OK("sent"))

	r := flow.NewResetPassword(h.client, h.deps)
	require.NoError(t, r.SubmitEmail(context.Background(), "a@b.c"))
	assert.ErrorIs(t, r.SubmitOTP("12345"), flow.ErrRequired)
	assert.Equal(t, flow.AwaitingOTP, r.Stage())
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "awaiting_email", flow.AwaitingEmail.String())
	assert.Equal(t, "awaiting_otp", flow.AwaitingOTP.String())
	assert.Equal(t, "awaiting_new_password", flow.AwaitingNewPassword.String())
}

// =============================================================================
// LOGOUT
// =============================================================================

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathLogout, apitest.OK("Logged Out"))
	h.store.SetLoggedIn(true)
	h.store.SetProfile(session.Known(api.UserProfile{Name: "Alice"}))

	require.NoError(t, flow.NewLogout(h.client, h.deps).Submit(context.Background()))
	assert.Equal(t, session.State{}, h.store.State())
	assert.Equal(t, router.PathHome, h.history.Last())
	assert.Equal(t, []string{"Logged Out"}, h.rec.Successes())
}

func TestLogout_FailureKeepsState(t *testing.T) {
	h := newHarness(t)
	h.backend.Script(api.PathLogout, apitest.Response{Status: 500, Body: "oops"})
	h.store.SetLoggedIn(true)

	err := flow.NewLogout(h.client, h.deps).Submit(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrStatus))
	assert.True(t, h.store.State().LoggedIn)
	assert.Len(t, h.rec.Errors(), 1)
}

// =============================================================================
// END TO END
// =============================================================================

func TestEndToEnd_VerifyAlice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// 1. Log in.
	h.backend.Script(api.PathLogin, apitest.Response{Body: apitest.OK(""), SetSession: true})
	h.backend.Respond(api.PathUserData, apitest.User("Alice", false))
	login := flow.NewLogin(h.client, h.deps)
	login.SetMode(flow.ModeLogin)
	require.NoError(t, login.Submit(ctx, flow.Credentials{Email: "alice@example.com", Password: "pw"}))

	// 2-3. A fresh app mount sees the session and loads Alice, unverified.
	h.store.Reset()
	h.backend.Respond(api.PathIsAuth, apitest.OK(""))
	boot := session.NewBootstrapper(h.client, h.store, h.rec, nil)
	boot.Run(ctx)
	boot.Wait()
	require.True(t, h.store.State().LoggedIn)
	u, ok := h.store.State().Profile.Get()
	require.True(t, ok)
	assert.Equal(t, api.UserProfile{Name: "Alice", IsAccountVerified: false}, u)

	// 4. Unverified: no redirect.
	verify := flow.NewEmailVerify(h.client, h.deps)
	before := len(h.history.Paths())
	assert.False(t, verify.Guard(h.store.State()))
	assert.Len(t, h.history.Paths(), before)

	// 5-6. Verify, re-fetch, redirect home.
	h.backend.Respond(api.PathVerifyAccount, apitest.OK("Email verified successfully"))
	h.backend.Respond(api.PathUserData, apitest.User("Alice", true))
	fetches := h.backend.Calls(api.PathUserData)
	require.NoError(t, verify.Submit(ctx, "123456"))

	assert.Equal(t, fetches+1, h.backend.Calls(api.PathUserData))
	assert.True(t, h.store.State().Profile.Verified())
	assert.Equal(t, router.PathHome, h.history.Last())
	assert.Empty(t, h.rec.Errors())
	assert.True(t, verify.Guard(h.store.State()))
}

func TestCanceledRequestIsSilent(t *testing.T) {
	h := newHarness(t)
	h.backend.Respond(api.PathVerifyAccount, apitest.OK("ok"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := flow.NewEmailVerify(h.client, h.deps).Submit(ctx, "123456")
	assert.ErrorIs(t, err, api.ErrCanceled)
	assert.Empty(t, h.rec.All())
	assert.Empty(t, h.history.Paths())
}
