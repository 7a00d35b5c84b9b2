// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/authfront-tui/internal/api"
	"github.com/jeranaias/authfront-tui/internal/notify"
)

// FallbackUserData is shown when the profile fetch fails without a message.
const FallbackUserData = "Failed to get user data"

// =============================================================================
// PROFILE
// =============================================================================

// Profile is the user profile as far as the client knows it. The zero value
// is Unknown, meaning no fetch has completed yet.
type Profile struct {
	user  api.UserProfile
	known bool
}

// Unknown is the profile before the first successful fetch.
func Unknown() Profile {
	return Profile{}
}

// Known wraps a fetched profile.
func Known(u api.UserProfile) Profile {
	return Profile{user: u, known: true}
}

// Get returns the profile and whether it is known.
func (p Profile) Get() (api.UserProfile, bool) {
	return p.user, p.known
}

// IsKnown reports whether a profile has been fetched.
func (p Profile) IsKnown() bool {
	return p.known
}

// Verified is true only for a known, verified profile.
func (p Profile) Verified() bool {
	return p.known && p.user.IsAccountVerified
}

// Name returns the user's name, or "" while unknown.
func (p Profile) Name() string {
	return p.user.Name
}

// =============================================================================
// STATE
// =============================================================================

// State is a snapshot of the store. LoggedIn and Profile can disagree while
// a profile fetch is in flight.
type State struct {
	LoggedIn bool
	Profile  Profile
}

// ProfileFetcher loads the current user's profile.
type ProfileFetcher interface {
	UserData(ctx context.Context) (api.UserProfile, error)
}

// Store is the shared session container. All methods are safe for
// concurrent use.
type Store struct {
	mu    sync.Mutex
	state State
	subs  map[int]chan State
	next  int

	fetcher  ProfileFetcher
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewStore creates a store in the initial {false, Unknown} state. A nil
// notifier discards notifications and a nil logger is a no-op.
func NewStore(fetcher ProfileFetcher, notifier notify.Notifier, logger *zap.Logger) *Store {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		subs:     make(map[int]chan State),
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger.Named("session"),
	}
}

// State returns a snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetLoggedIn replaces the logged-in flag.
func (s *Store) SetLoggedIn(v bool) {
	s.update(func(st *State) { st.LoggedIn = v })
}

// SetProfile replaces the profile wholesale.
func (s *Store) SetProfile(p Profile) {
	s.update(func(st *State) { st.Profile = p })
}

// Reset returns the store to {false, Unknown}.
func (s *Store) Reset() {
	s.update(func(st *State) { *st = State{} })
}

// update publishes while holding the lock so subscribers see snapshots in
// write order and the last value delivered matches State.
func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	for _, ch := range s.subs {
		publish(ch, s.state)
	}
}

// publish delivers snap, replacing a stale value the reader has not taken.
func publish(ch chan State, snap State) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Subscribe returns a channel that receives the latest state after each
// change. Slow readers see only the newest value. Call cancel to stop.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// =============================================================================
// PROFILE REFRESH
// =============================================================================

// RefreshProfile fetches the profile and replaces it on success. On failure
// the profile is left alone and exactly one error notification is emitted.
// The returned error is for logging; callers should not notify again.
func (s *Store) RefreshProfile(ctx context.Context) error {
	user, err := s.fetcher.UserData(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Owner went away; nobody is left to show the message to.
			s.logger.Debug("profile refresh abandoned", zap.Error(err))
			return err
		}
		s.logger.Warn("profile refresh failed", zap.Error(err))
		notify.Error(s.notifier, notify.Message(err, FallbackUserData))
		return err
	}
	s.SetProfile(Known(user))
	s.logger.Debug("profile refreshed", zap.Bool("verified", user.IsAccountVerified))
	return nil
}

// RefreshProfileAsync starts RefreshProfile without waiting. The returned
// channel is closed when it finishes.
func (s *Store) RefreshProfileAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.RefreshProfile(ctx)
	}()
	return done
}
