// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the authfront TUI.

Each component is styled from a *styles.Theme and is driven by the screen
that owns it; none of them talk to the network.

# Components

ToastManager (toast.go) - Non-blocking notification stack. It implements
notify.Notifier, so flows report straight into it from command goroutines.

OTPRow (otp_row.go) - Six boxed cells rendering an otp.Input, plus the key
mapping for typing, backspace, focus movement and paste.

Field (field.go) - Labeled bubbles/textinput with an inline error line.

# Usage

	toasts := components.NewToastManager(4 * time.Second)
	login := flow.NewLogin(client, flow.Deps{Notifier: toasts, ...})

	// In View:
	components.RenderToastStack(toasts.TickToasts(), theme, width)
*/
package components
