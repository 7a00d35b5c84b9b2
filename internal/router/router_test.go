// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		path   string
		screen Screen
	}{
		{"/", ScreenHome},
		{"", ScreenHome},
		{"/login", ScreenLogin},
		{"/login/", ScreenLogin},
		{"login", ScreenLogin},
		{"/email-verify", ScreenEmailVerify},
		{"/reset-password?x=1", ScreenResetPassword},
		{"/nope", ScreenHome},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.screen, Lookup(tt.path).Screen)
		})
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("/email-verify"))
	assert.True(t, Known("/"))
	assert.False(t, Known("/admin"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "/", Normalize(""))
	assert.Equal(t, "/", Normalize("/"))
	assert.Equal(t, "/", Normalize("//"))
	assert.Equal(t, "/login", Normalize(" login/ "))
	assert.Equal(t, "/login", Normalize("/login#top"))
}

func TestRoutes_ReturnsCopy(t *testing.T) {
	rs := Routes()
	assert.Len(t, rs, 4)
	rs[0].Path = "/changed"
	assert.Equal(t, PathHome, Routes()[0].Path)
}

func TestScreen_String(t *testing.T) {
	assert.Equal(t, "Home", ScreenHome.String())
	assert.Equal(t, "Login", ScreenLogin.String())
	assert.Equal(t, "Email Verify", ScreenEmailVerify.String())
	assert.Equal(t, "Reset Password", ScreenResetPassword.String())
}

func TestHistory(t *testing.T) {
	var forwarded []string
	h := NewHistory(NavigatorFunc(func(p string) { forwarded = append(forwarded, p) }))

	assert.Equal(t, "", h.Last())
	h.Navigate("/login/")
	h.Navigate("/")

	assert.Equal(t, []string{"/login", "/"}, h.Paths())
	assert.Equal(t, "/", h.Last())
	assert.Equal(t, []string{"/login", "/"}, forwarded)

	NewHistory(nil).Navigate("/")
}
