// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the authfront TUI.
//
// All colors use Lip Gloss AdaptiveColor so they follow the terminal's light
// or dark background. The theme can be pinned to "light" or "dark" from the
// config file; "auto" asks termenv.
//
// # Key Types
//
//   - Theme: all styled components for the screens
//   - SpinnerConfig: frames for the in-flight indicator
//
// # Usage
//
//	theme := styles.NewTheme("auto")
//	fmt.Println(theme.Title.Render("Login"))
//
// Status helpers (RenderSuccess, RenderError, ...) prefix ASCII indicators
// so meaning does not depend on color.
package styles
