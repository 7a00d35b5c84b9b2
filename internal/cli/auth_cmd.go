// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - status, login, logout, verify and reset commands.

package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/authfront-tui/internal/flow"
	"github.com/jeranaias/authfront-tui/internal/session"
	"github.com/jeranaias/authfront-tui/internal/ui/screens"
)

// =============================================================================
// STATUS
// =============================================================================

// StatusOutput is the --json shape of "authfront status".
type StatusOutput struct {
	Backend    string `json:"backend"`
	LoggedIn   bool   `json:"logged_in"`
	ProfileSet bool   `json:"profile_known"`
	Name       string `json:"name,omitempty"`
	Verified   bool   `json:"verified"`
}

// status runs the same bootstrap the TUI runs on mount and prints the
// resulting session state. A rejected session is not a command failure.
func (r *Runner) status(ctx context.Context, args *ArgParser) error {
	boot := session.NewBootstrapper(r.client, r.store, r.notifier, r.logger)
	boot.Run(ctx)
	boot.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	st := r.store.State()
	out := StatusOutput{
		Backend:    r.client.BaseURL(),
		LoggedIn:   st.LoggedIn,
		ProfileSet: st.Profile.IsKnown(),
		Name:       st.Profile.Name(),
		Verified:   st.Profile.Verified(),
	}

	if args.BoolFlag("json") {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(r.out, TitleStyle.Render("Session"))
	printField(r.out, "Backend", out.Backend)
	printField(r.out, "Logged in", yesNo(out.LoggedIn))
	if out.ProfileSet {
		printField(r.out, "Name", out.Name)
		printField(r.out, "Verified", yesNo(out.Verified))
	}
	return nil
}

// =============================================================================
// LOGIN
// =============================================================================

func (r *Runner) login(ctx context.Context, args *ArgParser) error {
	mode := flow.ModeLogin
	if args.BoolFlag("signup") {
		mode = flow.ModeSignUp
	}
	if err := r.signIn(ctx, args, mode); err != nil {
		return err
	}
	fmt.Fprintln(r.out, TitleStyle.Render(screens.Greeting(r.store.State())))
	if !r.store.State().Profile.Verified() {
		fmt.Fprintln(r.out, DimStyle.Render("Your email is not verified. Run 'authfront verify'."))
	}
	return nil
}

// signIn collects credentials from flags or prompts and submits them.
func (r *Runner) signIn(ctx context.Context, args *ArgParser, mode flow.Mode) error {
	var c flow.Credentials
	var err error

	if mode == flow.ModeSignUp {
		if c.Name, err = r.ask(args, "name", "Name"); err != nil {
			return err
		}
	}
	if c.Email, err = r.ask(args, "email", "Email"); err != nil {
		return err
	}
	if c.Password, err = r.prompt.Password("Password"); err != nil {
		return err
	}

	lf := flow.NewLogin(r.client, r.deps())
	lf.SetMode(mode)
	return reported(lf.Submit(ctx, c))
}

// ensureSession signs in unless this process already holds a session.
func (r *Runner) ensureSession(ctx context.Context, args *ArgParser) error {
	if r.store.State().LoggedIn {
		return nil
	}
	r.info("Sign in to continue")
	return r.signIn(ctx, args, flow.ModeLogin)
}

// ask returns the flag value or prompts for it.
func (r *Runner) ask(args *ArgParser, flag, label string) (string, error) {
	if v := args.Flag(flag); v != "" {
		return v, nil
	}
	return r.prompt.Prompt(label)
}

// =============================================================================
// LOGOUT
// =============================================================================

func (r *Runner) logout(ctx context.Context) error {
	if !r.store.State().LoggedIn {
		boot := session.NewBootstrapper(r.client, r.store, nil, r.logger)
		boot.Run(ctx)
		boot.Wait()
	}
	if !r.store.State().LoggedIn {
		r.info("Not logged in")
		return nil
	}
	return reported(flow.NewLogout(r.client, r.deps()).Submit(ctx))
}

// =============================================================================
// VERIFY
// =============================================================================

// verify sends a code and submits it. With --code the send step is skipped,
// which lets a code from an earlier run be used.
func (r *Runner) verify(ctx context.Context, args *ArgParser) error {
	if err := r.ensureSession(ctx, args); err != nil {
		return err
	}

	st := r.store.State()
	if st.Profile.Verified() {
		r.info("Your email is already verified")
		return nil
	}

	vf := flow.NewEmailVerify(r.client, r.deps())
	code := args.Flag("code")
	if code == "" {
		if err := vf.SendOTP(ctx); err != nil {
			return reported(err)
		}
		var err error
		if code, err = r.prompt.Prompt("Verification code"); err != nil {
			return err
		}
	}

	if err := vf.Submit(ctx, code); err != nil {
		return reported(err)
	}
	r.logger.Info("email verified", zap.Bool("profile_verified", r.store.State().Profile.Verified()))
	return nil
}

// =============================================================================
// RESET
// =============================================================================

func (r *Runner) reset(ctx context.Context, args *ArgParser) error {
	rf := flow.NewResetPassword(r.client, r.deps())

	email, err := r.ask(args, "email", "Email")
	if err != nil {
		return err
	}
	if err := rf.SubmitEmail(ctx, email); err != nil {
		return reported(err)
	}

	code, err := r.ask(args, "code", "Reset code")
	if err != nil {
		return err
	}
	if err := rf.SubmitOTP(code); err != nil {
		return reported(err)
	}

	password, err := r.prompt.Password("New password")
	if err != nil {
		return err
	}
	if err := rf.SubmitNewPassword(ctx, password); err != nil {
		return reported(err)
	}
	fmt.Fprintln(r.out, DimStyle.Render("Log in with your new password: authfront login"))
	return nil
}
