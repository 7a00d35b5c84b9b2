// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router maps URL-style paths to screens.
//
// # Key Types
//
//   - Screen: screen enumeration (Home, Login, EmailVerify, ResetPassword)
//   - Route: one entry of the path table
//   - Navigator: anything that can be told to go to a path
//   - History: a Navigator that records every navigation
//
// # Usage
//
//	route := router.Lookup("/email-verify")
//	switch route.Screen {
//	case router.ScreenEmailVerify:
//	    // ...
//	}
//
// Unknown paths fall back to Home.
package router
