// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the client-side view of the backend session.
//
// The backend owns the session (a cookie in the api client's jar). This
// package only mirrors the two facts screens need: whether the user is
// logged in, and their profile once it has been fetched.
//
// # Key Types
//
//   - Store: mutex-guarded State with setters and profile refresh
//   - Profile: Unknown until fetched, then Known(UserProfile)
//   - Bootstrapper: one-shot is-auth check run when the app mounts
//   - Lifetime: cancellation scope for a screen's async work
//
// # Usage
//
//	store := session.NewStore(client, notifier, logger)
//	boot := session.NewBootstrapper(client, store, notifier, logger)
//	boot.Run(ctx)
//
//	if st := store.State(); st.LoggedIn {
//	    // ...
//	}
//
// Nothing is persisted. A new process re-derives state from the cookie the
// backend issued, which lives only in the in-memory jar.
package session
