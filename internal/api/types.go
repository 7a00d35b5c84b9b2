// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// Endpoint paths, relative to the configured base URL.
const (
	PathIsAuth        = "/api/auth/is-auth"
	PathUserData      = "/api/user/data"
	PathVerifyAccount = "/api/auth/verify-account"
	PathSendVerifyOTP = "/api/auth/send-verify-otp"
	PathSendResetOTP  = "/api/auth/send-reset-otp"
	PathResetPassword = "/api/auth/reset-password"
	PathLogin         = "/api/auth/login"
	PathRegister      = "/api/auth/register"
	PathLogout        = "/api/auth/logout"
)

// Envelope is the wrapper every backend response uses.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// envelope lets decode reach the embedded Envelope of any response type.
func (e *Envelope) envelope() *Envelope { return e }

type enveloped interface {
	envelope() *Envelope
}

// UserProfile is the user record owned by the backend.
type UserProfile struct {
	Name              string `json:"name"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

// UserDataResponse is the /api/user/data payload.
type UserDataResponse struct {
	Envelope
	UserData *UserProfile `json:"userData"`
}

// =============================================================================
// REQUEST BODIES
// =============================================================================

// VerifyAccountRequest is the /api/auth/verify-account body.
type VerifyAccountRequest struct {
	OTP string `json:"otp"`
}

// SendResetOTPRequest is the /api/auth/send-reset-otp body.
type SendResetOTPRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the /api/auth/reset-password body.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// LoginRequest is the /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the /api/auth/register body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
