// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authfront-tui/internal/notify"
	"github.com/jeranaias/authfront-tui/internal/ui/styles"
	"github.com/jeranaias/authfront-tui/internal/util"
)

// DefaultToastDuration is the auto-dismiss duration for success and info toasts.
const DefaultToastDuration = 4 * time.Second

// ErrorToastDuration is the auto-dismiss duration for error toasts (longer to read).
const ErrorToastDuration = 8 * time.Second

// maxToasts is how many toasts are visible at once.
const maxToasts = 5

// =============================================================================
// TOAST
// =============================================================================

// Toast is one visible notification.
type Toast struct {
	ID        int
	Kind      notify.Kind
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true once the toast has been shown for its duration.
func (t Toast) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// TimeRemaining returns how long until auto-dismiss.
func (t Toast) TimeRemaining(now time.Time) time.Duration {
	remaining := t.Duration - now.Sub(t.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the toast stack. It is safe for concurrent use.
type ToastManager struct {
	mu       sync.Mutex
	toasts   []Toast
	nextID   int
	duration time.Duration
	now      func() time.Time
}

// NewToastManager creates a manager. duration applies to non-error toasts;
// zero means DefaultToastDuration.
func NewToastManager(duration time.Duration) *ToastManager {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &ToastManager{nextID: 1, duration: duration, now: time.Now}
}

// Notify adds a toast for n.
func (m *ToastManager) Notify(n notify.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.duration
	if n.Kind == notify.KindError && d < ErrorToastDuration {
		d = ErrorToastDuration
	}
	toast := Toast{
		ID:        m.nextID,
		Kind:      n.Kind,
		Message:   n.Text,
		CreatedAt: m.now(),
		Duration:  d,
	}
	m.nextID++

	// Newest last so the stack reads top to bottom in arrival order.
	m.toasts = append(m.toasts, toast)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
}

// Dismiss removes the newest toast. It reports whether one was removed.
func (m *ToastManager) Dismiss() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) == 0 {
		return false
	}
	m.toasts = m.toasts[:len(m.toasts)-1]
	return true
}

// TickToasts drops expired toasts and returns a copy of the rest.
func (m *ToastManager) TickToasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active

	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Toasts returns a copy of the current toasts without expiring any.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// SetDuration changes the duration of future non-error toasts.
func (m *ToastManager) SetDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically so expired toasts disappear.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd ticks toasts every 200ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single toast.
func RenderToast(toast Toast, theme *styles.Theme, width int, now time.Time) string {
	maxWidth := 50
	if width > 0 && width-6 < maxWidth {
		maxWidth = width - 6
	}
	if maxWidth < 20 {
		maxWidth = 20
	}

	var style lipgloss.Style
	var icon string
	switch toast.Kind {
	case notify.KindError:
		style, icon = theme.ToastError, styles.StatusIndicators.Error
	case notify.KindSuccess:
		style, icon = theme.ToastSuccess, styles.StatusIndicators.Success
	default:
		style, icon = theme.ToastInfo, styles.StatusIndicators.Info
	}

	// Border and padding take 4 columns, the icon and a space the rest.
	textWidth := maxWidth - 4 - util.DisplayWidth(icon) - 1
	body := icon + " " + util.WrapWidth(toast.Message, textWidth)

	if secs := int(toast.TimeRemaining(now).Seconds()); secs > 0 {
		body += "\n" + theme.Help.Render("[x] dismiss  "+strconv.Itoa(secs)+"s")
	}
	return style.Render(body)
}

// RenderToastStack renders toasts stacked vertically, right-aligned.
func RenderToastStack(toasts []Toast, theme *styles.Theme, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	now := time.Now()
	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, RenderToast(t, theme, width, now))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
