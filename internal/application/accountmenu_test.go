package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risinglab/jewelpanel/internal/application"
)

type mockSignOuter struct {
	called   chan struct{}
	release  chan struct{}
	target   string
	err      error
	token    string
	callback string
}

func (m *mockSignOuter) SignOut(_ context.Context, token, callbackURL string) (string, error) {
	m.token = token
	m.callback = callbackURL
	if m.called != nil {
		close(m.called)
	}
	if m.release != nil {
		<-m.release
	}
	if m.err != nil {
		return "", m.err
	}
	return m.target, nil
}

func TestAccountMenu_ToggleTwiceCloses(t *testing.T) {
	menu := application.NewAccountMenu(&mockSignOuter{}, "", 0)

	assert.True(t, menu.Toggle())
	assert.False(t, menu.Toggle())
	assert.False(t, menu.Snapshot().Open)
}

func TestAccountMenu_Dismiss(t *testing.T) {
	menu := application.NewAccountMenu(&mockSignOuter{}, "", 0)
	menu.Toggle()

	assert.True(t, menu.Dismiss(true), "click on the anchor keeps the menu open")
	assert.False(t, menu.Dismiss(false))
	assert.False(t, menu.Dismiss(false), "dismissing a closed menu is a no-op")
}

func TestAccountMenu_LogoutSuccess(t *testing.T) {
	so := &mockSignOuter{
		called:  make(chan struct{}),
		release: make(chan struct{}),
		target:  "https://admin.risinglab.com",
	}
	menu := application.NewAccountMenu(so, "https://admin.risinglab.com", 0)
	menu.Toggle()
	assert.False(t, menu.Snapshot().Pending)

	type result struct {
		target string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		target, err := menu.Logout(context.Background(), "tok")
		done <- result{target, err}
	}()

	<-so.called
	assert.True(t, menu.Snapshot().Pending)

	_, err := menu.Logout(context.Background(), "tok")
	require.ErrorIs(t, err, application.ErrSignOutInProgress)

	close(so.release)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, "https://admin.risinglab.com", res.target)
	assert.Equal(t, "tok", so.token)
	assert.Equal(t, "https://admin.risinglab.com", so.callback)
	assert.False(t, menu.Snapshot().Open)
}

func TestAccountMenu_LogoutFailure(t *testing.T) {
	so := &mockSignOuter{
		called:  make(chan struct{}),
		release: make(chan struct{}),
		err:     errors.New("network down"),
	}
	menu := application.NewAccountMenu(so, "", 0)

	done := make(chan error, 1)
	go func() {
		_, err := menu.Logout(context.Background(), "tok")
		done <- err
	}()

	<-so.called
	assert.True(t, menu.Snapshot().Pending)
	close(so.release)

	err := <-done
	require.Error(t, err)

	view := menu.Snapshot()
	assert.False(t, view.Pending)
	assert.Equal(t, application.SignOutFailedNotice, view.Error)
}

func TestAccountMenu_LogoutDelayHonoursContext(t *testing.T) {
	so := &mockSignOuter{}
	menu := application.NewAccountMenu(so, "", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := menu.Logout(ctx, "tok")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, so.token, "sign-out must not be requested")
	assert.False(t, menu.Snapshot().Pending)
}

func TestAccountMenu_LogoutWaitsForDelay(t *testing.T) {
	so := &mockSignOuter{target: "/login"}
	menu := application.NewAccountMenu(so, "", 20*time.Millisecond)

	start := time.Now()
	target, err := menu.Logout(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "/login", target)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
