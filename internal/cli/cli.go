// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and dispatch for authfront.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/config"
	"github.com/jeranaias/authfront-tui/internal/flow"
	"github.com/jeranaias/authfront-tui/internal/notify"
	"github.com/jeranaias/authfront-tui/internal/session"
)

// Version information (overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command is the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdStatus
	CmdLogin
	CmdLogout
	CmdVerify
	CmdReset
	CmdConfig
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdTUI:     "tui",
	CmdStatus:  "status",
	CmdLogin:   "login",
	CmdLogout:  "logout",
	CmdVerify:  "verify",
	CmdReset:   "reset",
	CmdConfig:  "config",
	CmdVersion: "version",
	CmdHelp:    "help",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

var aliases = map[string]Command{
	"tui":     CmdTUI,
	"status":  CmdStatus,
	"s":       CmdStatus,
	"login":   CmdLogin,
	"signin":  CmdLogin,
	"logout":  CmdLogout,
	"signout": CmdLogout,
	"verify":  CmdVerify,
	"reset":   CmdReset,
	"config":  CmdConfig,
	"version": CmdVersion,
	"help":    CmdHelp,
}

// Parse maps argv (without the program name) to a command. The returned
// parser is positioned after the command name.
func Parse(argv []string) (Command, *ArgParser, error) {
	args := NewArgParser(argv)

	switch {
	case args.BoolFlag("version"):
		return CmdVersion, args, nil
	case args.BoolFlag("help") || args.BoolFlag("h"):
		return CmdHelp, args, nil
	}

	name := strings.ToLower(args.Subcommand())
	if name == "" {
		return CmdTUI, args, nil
	}
	cmd, ok := aliases[name]
	if !ok {
		return CmdHelp, args, usageErr("", "unknown command %q (run 'authfront help')", name)
	}
	return cmd, args.Shift(), nil
}

// =============================================================================
// RUNNER
// =============================================================================

// Options wires a Runner.
type Options struct {
	Client     *api.Client
	Config     *config.Config
	ConfigPath string
	Logger     *zap.Logger
	Prompter   Prompter
	Out        io.Writer
	ErrOut     io.Writer
}

// Runner executes non-TUI commands against one client and session store.
type Runner struct {
	client     *api.Client
	cfg        *config.Config
	configPath string
	logger     *zap.Logger
	prompt     Prompter
	out        io.Writer
	errOut     io.Writer

	notifier notify.Notifier
	store    *session.Store
}

// NewRunner builds a Runner. Nil writers default to stdout and stderr.
func NewRunner(opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Client == nil {
		opts.Client = api.NewClient(opts.Config.Backend.URL)
	}
	if opts.Prompter == nil {
		opts.Prompter = NewPrompter(opts.Out)
	}

	notifier := lineNotifier(opts.Out, opts.ErrOut)
	return &Runner{
		client:     opts.Client,
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger.Named("cli"),
		prompt:     opts.Prompter,
		out:        opts.Out,
		errOut:     opts.ErrOut,
		notifier:   notifier,
		store:      session.NewStore(opts.Client, notifier, opts.Logger),
	}
}

// Store returns the session store the commands mutate.
func (r *Runner) Store() *session.Store {
	return r.store
}

// Execute runs cmd and returns the exit code. Errors that were not
// already shown as a notification are printed as "Error: ...".
func (r *Runner) Execute(ctx context.Context, cmd Command, args *ArgParser) int {
	err := r.Run(ctx, cmd, args)
	if err != nil && !errors.Is(err, ErrNotified) {
		fmt.Fprintf(r.errOut, "%s %v\n", ErrorStyle.Render("Error:"), err)
	}
	if err != nil {
		r.logger.Debug("command failed", zap.Stringer("command", cmd), zap.Error(err))
	}
	return ExitCode(err)
}

// Run dispatches cmd.
func (r *Runner) Run(ctx context.Context, cmd Command, args *ArgParser) error {
	if args == nil {
		args = NewArgParser(nil)
	}
	switch cmd {
	case CmdStatus:
		return r.status(ctx, args)
	case CmdLogin:
		return r.login(ctx, args)
	case CmdLogout:
		return r.logout(ctx)
	case CmdVerify:
		return r.verify(ctx, args)
	case CmdReset:
		return r.reset(ctx, args)
	case CmdConfig:
		return r.config(args)
	case CmdVersion:
		r.version()
		return nil
	case CmdHelp:
		return r.help()
	}
	return usageErr(cmd.String(), "not a CLI command")
}

func (r *Runner) deps() flow.Deps {
	return flow.Deps{
		Store:    r.store,
		Notifier: r.notifier,
		Logger:   r.logger,
	}
}

func (r *Runner) info(format string, args ...any) {
	notify.Info(r.notifier, fmt.Sprintf(format, args...))
}
