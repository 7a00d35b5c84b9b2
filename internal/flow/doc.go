// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package flow implements the auth screens' behavior without rendering.
//
// Each flow talks to the backend through a narrow interface satisfied by
// *api.Client, reports outcomes through a notify.Notifier and moves the app
// with a router.Navigator. Every backend failure becomes exactly one error
// notification at the flow; returned errors are for callers that want to
// keep a form open or log, never to notify again.
//
// # Key Types
//
//   - Login: sign up or log in, then load the profile
//   - EmailVerify: send and check the account verification OTP
//   - ResetPassword: email, OTP, new password, in that order
//   - Logout: end the backend session and clear the store
package flow
