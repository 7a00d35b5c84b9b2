// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/router"
	"github.com/jeranaias/authfront-tui/internal/session"
	"github.com/jeranaias/authfront-tui/internal/ui/components"
	"github.com/jeranaias/authfront-tui/internal/ui/styles"
)

// maxRedirects bounds chained guard redirects in one update.
const maxRedirects = 4

// Options configures the App.
type Options struct {
	Client *api.Client
	Store  *session.Store
	Boot   *session.Bootstrapper
	Toasts *components.ToastManager
	Theme  *styles.Theme
	Logger *zap.Logger

	// StartPath is the first route shown (default "/").
	StartPath string
}

// App is the root model. It hosts one screen at a time.
type App struct {
	env  *Env
	boot *session.Bootstrapper

	ctx    context.Context
	cancel context.CancelFunc

	queue   *navQueue
	history *router.History
	route   router.Route
	screen  Screen

	states      <-chan session.State
	unsubscribe func()

	width  int
	height int
}

// NewApp builds the app and opens the start route.
func NewApp(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(styles.ThemeAuto)
	}
	if opts.Toasts == nil {
		opts.Toasts = components.NewToastManager(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	states, unsubscribe := opts.Store.Subscribe()

	a := &App{
		env: &Env{
			Client: opts.Client,
			Store:  opts.Store,
			Toasts: opts.Toasts,
			Theme:  opts.Theme,
			Logger: opts.Logger.Named("ui"),
			Keys:   DefaultKeyMap(),
		},
		boot:        opts.Boot,
		ctx:         ctx,
		cancel:      cancel,
		queue:       &navQueue{},
		history:     router.NewHistory(nil),
		states:      states,
		unsubscribe: unsubscribe,
	}

	start := opts.StartPath
	if start == "" {
		start = router.PathHome
	}
	_ = a.open(start)
	_ = a.followNavigation()
	return a
}

// Close ends the active screen and stops background work.
func (a *App) Close() {
	if a.screen != nil {
		a.screen.Lifetime().End()
	}
	a.unsubscribe()
	a.cancel()
}

// Route is the active route.
func (a *App) Route() router.Route { return a.route }

// Screen is the active screen.
func (a *App) Screen() Screen { return a.screen }

// History lists every route opened, oldest first.
func (a *App) History() []string { return a.history.Paths() }

// Init starts the bootstrapper, the store subscription and the toast ticker.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.bootCmd(),
		a.waitForState(),
		components.ToastTickCmd(),
		a.screen.Init(),
	)
}

func (a *App) bootCmd() tea.Cmd {
	if a.boot == nil {
		return nil
	}
	return func() tea.Msg {
		a.boot.Run(a.ctx)
		a.boot.Wait()
		return BootDoneMsg{}
	}
}

func (a *App) waitForState() tea.Cmd {
	states, done := a.states, a.ctx.Done()
	return func() tea.Msg {
		select {
		case st := <-states:
			return StateMsg{State: st}
		case <-done:
			return nil
		}
	}
}

// open tears down the active screen and builds the one for path.
func (a *App) open(path string) tea.Cmd {
	if a.screen != nil {
		a.screen.Lifetime().End()
	}
	a.route = router.Lookup(path)
	a.history.Navigate(a.route.Path)
	a.env.Logger.Debug("navigate", zap.String("path", a.route.Path))

	life := session.NewLifetime(a.ctx)
	switch a.route.Screen {
	case router.ScreenLogin:
		a.screen = NewLogin(a.env, life, a.queue)
	case router.ScreenEmailVerify:
		a.screen = NewEmailVerify(a.env, life, a.queue)
	case router.ScreenResetPassword:
		a.screen = NewResetPassword(a.env, life, a.queue)
	default:
		a.screen = NewHome(a.env, life, a.queue)
	}
	return a.screen.Init()
}

// followNavigation applies navigations queued by flows and guards.
func (a *App) followNavigation() tea.Cmd {
	var cmds []tea.Cmd
	for i := 0; i < maxRedirects; i++ {
		path := a.queue.drain()
		if path == "" {
			break
		}
		cmds = append(cmds, a.open(path))
	}
	return tea.Batch(cmds...)
}

// Update handles app-wide messages and forwards the rest to the screen.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.env.Theme.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.env.Keys.ForceQuit):
			a.Close()
			return a, tea.Quit
		case key.Matches(msg, a.env.Keys.Dismiss):
			a.env.Toasts.Dismiss()
			return a, nil
		}

	case components.ToastTickMsg:
		a.env.frame++
		a.env.Toasts.TickToasts()
		return a, components.ToastTickCmd()

	case BootDoneMsg:
		a.env.Logger.Debug("bootstrap finished")
		return a, nil

	case StateMsg:
		cmds = append(cmds, a.waitForState())

	case Owned:
		if !a.screen.Lifetime().Owns(msg.Owner()) {
			a.env.Logger.Debug("dropping result for closed screen", zap.Uint64("owner", msg.Owner()))
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.screen, cmd = a.screen.Update(msg)
	cmds = append(cmds, cmd, a.followNavigation())
	return a, tea.Batch(cmds...)
}

// View renders the active screen with the toast stack on the right.
func (a *App) View() string {
	theme := a.env.Theme
	body := theme.App.Render(a.screen.View())

	toasts := components.RenderToastStack(a.env.Toasts.Toasts(), theme, a.width)
	if toasts == "" {
		return body
	}
	if a.width > 0 && lipgloss.Width(body)+lipgloss.Width(toasts) <= a.width {
		return lipgloss.JoinHorizontal(lipgloss.Top, body, toasts)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, toasts)
}
