// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/flow"
	"github.com/jeranaias/authfront-tui/internal/session"
	"github.com/jeranaias/authfront-tui/internal/ui/components"
	"github.com/jeranaias/authfront-tui/internal/ui/styles"
)

// Screen is a routed Bubble Tea model.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	Lifetime() *session.Lifetime
}

// Env is what every screen shares.
type Env struct {
	Client *api.Client
	Store  *session.Store
	Toasts *components.ToastManager
	Theme  *styles.Theme
	Logger *zap.Logger
	Keys   KeyMap

	// frame drives the in-flight spinner; advanced by the App's tick.
	frame int
}

// =============================================================================
// NAVIGATION QUEUE
// =============================================================================

// navQueue collects navigations from flows. Flows run on command
// goroutines, so the App drains the queue on its own goroutine after each
// message.
type navQueue struct {
	mu      sync.Mutex
	pending []string
}

func (q *navQueue) push(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, path)
}

// drain returns the latest pending path and clears the queue.
func (q *navQueue) drain() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return ""
	}
	last := q.pending[len(q.pending)-1]
	q.pending = nil
	return last
}

// lifetimeNav drops navigations from screens that have been torn down.
type lifetimeNav struct {
	life  *session.Lifetime
	queue *navQueue
}

func (n lifetimeNav) Navigate(path string) {
	if n.life.Alive() {
		n.queue.push(path)
	}
}

// =============================================================================
// SCREEN BASE
// =============================================================================

// base carries the per-screen plumbing.
type base struct {
	env  *Env
	life *session.Lifetime
	nav  lifetimeNav
	help help.Model
	busy bool
}

func newBase(env *Env, life *session.Lifetime, queue *navQueue) base {
	return base{
		env:  env,
		life: life,
		nav:  lifetimeNav{life: life, queue: queue},
		help: help.New(),
	}
}

func (b *base) Lifetime() *session.Lifetime { return b.life }

func (b *base) deps() flow.Deps {
	return flow.Deps{
		Store:    b.env.Store,
		Notifier: b.env.Toasts,
		Nav:      b.nav,
		Logger:   b.env.Logger,
	}
}

// run starts fn on a command goroutine bound to the screen's lifetime.
func (b *base) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	b.busy = true
	owner, ctx := b.life.ID(), b.life.Context()
	return func() tea.Msg {
		return ResultMsg{owner: owner, Op: op, Err: fn(ctx)}
	}
}

// status renders the spinner while busy.
func (b *base) status() string {
	if !b.busy {
		return ""
	}
	return b.env.Theme.Spinner.Render("working" + styles.DotsSpinner.Frame(b.env.frame))
}
