// authfront - Terminal front-end for the auth backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/cli"
	"github.com/jeranaias/authfront-tui/internal/config"
	"github.com/jeranaias/authfront-tui/internal/logging"
	"github.com/jeranaias/authfront-tui/internal/session"
	"github.com/jeranaias/authfront-tui/internal/ui/components"
	"github.com/jeranaias/authfront-tui/internal/ui/screens"
	"github.com/jeranaias/authfront-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitCode(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// version and help must work with a broken config file.
	if cmd == cli.CmdVersion || cmd == cli.CmdHelp {
		return cli.NewRunner(cli.Options{}).Execute(ctx, cmd, args)
	}

	cfg, cfgPath, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitError
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitError
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", Version),
		zap.Stringer("command", cmd),
		zap.String("backend", cfg.Backend.URL),
	)

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:           cfg.Backend.URL,
		Timeout:           cfg.Backend.Timeout(),
		RequestsPerSecond: cfg.Backend.RequestsPerSecond,
		Burst:             cfg.Backend.Burst,
		Logger:            logger,
	})

	if cmd != cli.CmdTUI {
		return cli.NewRunner(cli.Options{
			Client:     client,
			Config:     cfg,
			ConfigPath: cfgPath,
			Logger:     logger,
		}).Execute(ctx, cmd, args)
	}

	if err := runTUI(ctx, cfg, cfgPath, client, logger, args.Flag("route")); err != nil {
		logger.Error("tui exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error running authfront: %v\n", err)
		return cli.ExitError
	}
	return cli.ExitSuccess
}

// loadConfig reads --config or the default locations, then applies the
// --url and --verbose overrides. The returned path is where "config set"
// writes and what the TUI watches.
func loadConfig(args *cli.ArgParser) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path = args.Flag("config")
		err  error
	)
	if path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
		path = existingConfigPath()
	}
	if err != nil {
		return nil, "", err
	}

	if u := args.Flag("url"); u != "" {
		cfg.Backend.URL = u
	}
	if args.BoolFlag("verbose") || args.BoolFlag("v") {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, path, nil
}

// existingConfigPath mirrors config.Load's lookup order and falls back to
// the TOML location for new files.
func existingConfigPath() string {
	for _, pathFn := range []func() (string, error){config.ConfigPathTOML, config.ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return path
		}
	}
	path, _ := config.ConfigPathTOML()
	return path
}

// newLogger writes to the configured file. The TUI owns the terminal, so
// there is no console output.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	path := cfg.Log.Path
	if path == "" {
		var err error
		if path, err = config.DefaultLogPath(); err != nil {
			return logging.Nop(), nil
		}
	}
	return logging.New(logging.Options{Path: path, Level: cfg.Log.Level})
}

func runTUI(ctx context.Context, cfg *config.Config, cfgPath string, client *api.Client, logger *zap.Logger, startPath string) error {
	toasts := components.NewToastManager(time.Duration(cfg.UI.ToastSecs) * time.Second)
	store := session.NewStore(client, toasts, logger)
	boot := session.NewBootstrapper(client, store, toasts, logger)

	app := screens.NewApp(screens.Options{
		Client:    client,
		Store:     store,
		Boot:      boot,
		Toasts:    toasts,
		Theme:     styles.NewTheme(cfg.UI.Theme),
		Logger:    logger,
		StartPath: startPath,
	})
	defer app.Close()

	if cfgPath != "" {
		stopWatch := watchConfig(ctx, cfgPath, client, toasts, logger)
		defer stopWatch()
	}

	opts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(app, opts...)

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}

// watchConfig applies backend URL and toast duration changes while the TUI
// runs. Other settings take effect on the next start.
func watchConfig(ctx context.Context, path string, client *api.Client, toasts *components.ToastManager, logger *zap.Logger) func() {
	log := logger.Named("config")
	w, err := config.NewWatcher(path,
		func(next *config.Config) {
			client.SetBaseURL(next.Backend.URL)
			toasts.SetDuration(time.Duration(next.UI.ToastSecs) * time.Second)
			log.Info("config reloaded", zap.String("backend", next.Backend.URL))
		},
		func(err error) {
			log.Warn("config reload failed", zap.Error(err))
		},
	)
	if err != nil {
		log.Warn("config watch unavailable", zap.Error(err))
		return func() {}
	}
	if err := w.Start(ctx); err != nil {
		log.Warn("config watch unavailable", zap.Error(err))
		_ = w.Close()
		return func() {}
	}
	return func() { _ = w.Close() }
}
