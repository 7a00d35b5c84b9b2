// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package screens provides the Bubble Tea models for each route and the
// root App that hosts them.
//
// The App runs the session bootstrapper on Init, owns the toast stack and
// swaps the active screen when a flow navigates. Every screen gets its own
// session.Lifetime: requests it starts use the lifetime's context, results
// come back tagged with the lifetime ID, and the App drops results whose
// screen has already been replaced.
//
// # Screens
//
//   - Home: greeting and the actions available for the current session
//   - Login: sign up or log in
//   - EmailVerify: enter the emailed verification code
//   - ResetPassword: email, code, new password
package screens
