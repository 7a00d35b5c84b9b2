// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the authentication backend.
//
// Every request goes through one http.Client whose cookie jar carries the
// server-held session cookie, so credentials are always attached. Responses
// share the envelope {success, message?, ...payload}; a success:false
// answer is surfaced as a *ClientError exactly like a transport failure.
//
// # Key Types
//
//   - Client: endpoint methods, cookie jar, request pacing
//   - ClientError: typed failure with ErrorType, HTTP status and backend message
//   - Envelope: the shared response wrapper
//   - UserProfile: the user record mirrored from /api/user/data
//
// # Usage
//
//	client := api.NewClient("http://localhost:4000")
//	if _, err := client.IsAuth(ctx); err == nil {
//	    profile, err := client.UserData(ctx)
//	    ...
//	}
//
// There is no retry logic: each call is a single attempt.
package api
