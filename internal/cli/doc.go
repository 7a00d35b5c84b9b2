// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the authfront command line.
//
// Without a command the binary starts the TUI. The remaining commands run
// one auth flow non-interactively (or with line prompts) and exit:
//
//	authfront status [--json]
//	authfront login [--signup] [--email E] [--name N]
//	authfront verify [--code C]
//	authfront reset [--email E] [--code C]
//	authfront logout
//	authfront config [show|get KEY|set KEY VALUE|path]
//	authfront version
//	authfront help
//
// The cookie jar lives in memory, so commands that need a session sign in
// first within the same process.
package cli
