// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across authfront.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync, used for config saves
//
// Text:
//   - DisplayWidth: terminal cell width of a string
//   - TruncateWidth: width-aware truncation with ellipsis
//   - WrapWidth: width-aware word wrapping for toasts and notices
package util
