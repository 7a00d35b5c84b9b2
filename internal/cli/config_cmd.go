// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - "authfront config" subcommands.

package cli

import (
	"fmt"

	"github.com/jeranaias/authfront-tui/internal/config"
)

func (r *Runner) config(args *ArgParser) error {
	switch sub := args.Subcommand(); sub {
	case "", "show":
		return r.configShow()
	case "get":
		key := args.Positional(1)
		if key == "" {
			return usageErr("config get", "missing KEY (one of %v)", config.Keys())
		}
		val, err := r.cfg.Get(key)
		if err != nil {
			return usageErr("config get", "%v", err)
		}
		fmt.Fprintln(r.out, val)
		return nil
	case "set":
		key, val := args.Positional(1), args.Positional(2)
		if key == "" || args.PositionalCount() < 3 {
			return usageErr("config set", "usage: authfront config set KEY VALUE")
		}
		return r.configSet(key, val)
	case "path":
		path, err := r.savePath()
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, path)
		return nil
	default:
		return usageErr("config", "unknown subcommand %q", sub)
	}
}

func (r *Runner) configShow() error {
	fmt.Fprintln(r.out, TitleStyle.Render("Configuration"))
	for _, key := range config.Keys() {
		val, err := r.cfg.Get(key)
		if err != nil {
			return err
		}
		printField(r.out, key, val)
	}
	if path, err := r.savePath(); err == nil {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, DimStyle.Render("File: "+path))
	}
	return nil
}

// configSet validates the change before anything is written.
func (r *Runner) configSet(key, val string) error {
	next := r.cfg.Clone()
	if err := next.Set(key, val); err != nil {
		return usageErr("config set", "%v", err)
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	path, err := r.savePath()
	if err != nil {
		return err
	}
	if err := config.SaveToPath(next, path); err != nil {
		return err
	}
	*r.cfg = *next
	fmt.Fprintf(r.out, "%s %s = %s\n", SuccessStyle.Render("[OK]"), key, val)
	return nil
}

func (r *Runner) savePath() (string, error) {
	if r.configPath != "" {
		return r.configPath, nil
	}
	return config.ConfigPathTOML()
}
