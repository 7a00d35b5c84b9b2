// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - version and help output.

package cli

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# authfront

Terminal front-end for the auth backend.

## Usage

| Command | Description |
|---|---|
| ` + "`authfront`" + ` | Start the TUI |
| ` + "`authfront status [--json]`" + ` | Check the session the way the TUI does on start |
| ` + "`authfront login [--signup] [--email E] [--name N]`" + ` | Log in or create an account |
| ` + "`authfront verify [--code C]`" + ` | Send a verification code and submit it |
| ` + "`authfront reset [--email E] [--code C]`" + ` | Reset a forgotten password |
| ` + "`authfront logout`" + ` | End the session |
| ` + "`authfront config [show\\|get\\|set\\|path]`" + ` | Show or change settings |
| ` + "`authfront version`" + ` | Print version information |

## Global flags

- ` + "`--config PATH`" + ` use a specific TOML, JSON or YAML config file
- ` + "`--url URL`" + ` override the backend URL

## TUI keys

- ` + "`tab`/`shift+tab`" + ` move between fields
- ` + "`enter`" + ` submit
- ` + "`esc`" + ` back to home
- ` + "`ctrl+t`" + ` switch between Sign Up and Login
- ` + "`ctrl+r`" + ` forgot password / resend code
- ` + "`ctrl+v`" + ` paste a code
- ` + "`ctrl+x`" + ` dismiss a notification
- ` + "`ctrl+c`" + ` quit

## Environment

- ` + "`AUTHFRONT_BACKEND_URL`" + `, ` + "`AUTHFRONT_LOG_LEVEL`" + `, ` + "`AUTHFRONT_THEME`" + `
- ` + "`NO_COLOR`" + ` disables colors, ` + "`FORCE_COLOR`" + ` forces them
`

// renderHelp renders markdown for the terminal. Plain markdown is returned
// when colors are off or rendering fails.
func renderHelp(md string, width int) string {
	style := "notty"
	if ColorsEnabled() {
		style = "auto"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (r *Runner) help() error {
	_, err := fmt.Fprint(r.out, renderHelp(helpMarkdown, TerminalWidth()))
	return err
}

func (r *Runner) version() {
	fmt.Fprintf(r.out, "authfront version %s\n", Version)
	fmt.Fprintf(r.out, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(r.out, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(r.out, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
