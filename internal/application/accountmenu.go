package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// SigningOutNotice is shown while a sign-out is in progress.
const SigningOutNotice = "Signing out..."

// SignOutFailedNotice is shown when the sign-out request fails.
const SignOutFailedNotice = "Could not sign out. Please try again."

// DefaultSignOutDelay keeps the signing-out notice visible before the request.
const DefaultSignOutDelay = 500 * time.Millisecond

// ErrSignOutInProgress rejects a second logout while one is pending.
var ErrSignOutInProgress = errors.New("sign-out already in progress")

// SignOuter ends an authenticated session and returns the URL to redirect to.
type SignOuter interface {
	SignOut(ctx context.Context, token, callbackURL string) (string, error)
}

// MenuView is a read-only copy of the account dropdown state.
type MenuView struct {
	Open    bool
	Pending bool
	Error   string
}

// AccountMenu is the avatar dropdown of one admin session.
type AccountMenu struct {
	signOuter   SignOuter
	callbackURL string
	delay       time.Duration

	mu      sync.Mutex
	open    bool
	pending bool
	errText string
}

// NewAccountMenu creates a closed dropdown. A negative delay is treated as zero.
func NewAccountMenu(signOuter SignOuter, callbackURL string, delay time.Duration) *AccountMenu {
	return &AccountMenu{
		signOuter:   signOuter,
		callbackURL: callbackURL,
		delay:       max(delay, 0),
	}
}

// Toggle opens a closed dropdown and closes an open one. It returns the new
// open state.
func (m *AccountMenu) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = !m.open
	return m.open
}

// Dismiss closes the dropdown after a click outside it. Clicks on the avatar
// anchor are ignored; Toggle handles those.
func (m *AccountMenu) Dismiss(onAnchor bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !onAnchor {
		m.open = false
	}
	return m.open
}

// Snapshot returns a copy of the dropdown state.
func (m *AccountMenu) Snapshot() MenuView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MenuView{Open: m.open, Pending: m.pending, Error: m.errText}
}

// Logout signs the session out after the configured delay and returns the
// redirect target. On failure the pending flag is cleared and the error is
// kept for display; there is no retry.
func (m *AccountMenu) Logout(ctx context.Context, token string) (string, error) {
	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		return "", ErrSignOutInProgress
	}
	m.pending = true
	m.errText = ""
	m.mu.Unlock()

	target, err := m.signOut(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.pending = false
		m.errText = SignOutFailedNotice
		return "", err
	}
	m.open = false
	return target, nil
}

func (m *AccountMenu) signOut(ctx context.Context, token string) (string, error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("sign out: %w", ctx.Err())
		case <-timer.C:
		}
	}

	target, err := m.signOuter.SignOut(ctx, token, m.callbackURL)
	if err != nil {
		return "", fmt.Errorf("sign out: %w", err)
	}
	return target, nil
}
