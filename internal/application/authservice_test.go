package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risinglab/jewelpanel/internal/application"
	"github.com/risinglab/jewelpanel/internal/domain/model"
)

func newAuthFixture() (*application.AuthService, *mockRevocations) {
	users := &mockUsers{
		users: map[string]model.User{
			"admin@risinglab.com": {ID: 1, Name: "John Doe", Email: "admin@risinglab.com", Image: "/images/avatars/1.png"},
		},
		passwords: map[int64]string{1: "rising@3399#"},
	}
	revocations := newMockRevocations()
	svc := application.NewAuthService(users, revocations, []byte("test-secret"), time.Hour, "https://admin.risinglab.com", discardLogger())
	return svc, revocations
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	token, session, err := svc.Login(ctx, "admin@risinglab.com", "rising@3399#")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, int64(1), session.UserID)
	assert.NotEmpty(t, session.TokenID)

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, session.TokenID, got.TokenID)
	assert.Equal(t, "John Doe", got.Name)
	assert.Equal(t, "admin@risinglab.com", got.Email)
	assert.Equal(t, "/images/avatars/1.png", got.Image)
	assert.WithinDuration(t, session.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@risinglab.com", password: "rising@3399#"},
		{name: "wrong password", email: "admin@risinglab.com", password: "guess"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.email, tt.password)
			require.ErrorIs(t, err, application.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_AuthenticateRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	require.ErrorIs(t, err, application.ErrInvalidSession)
}

func TestAuthService_AuthenticateRejectsForeignSignature(t *testing.T) {
	svc, _ := newAuthFixture()
	other := application.NewAuthService(&mockUsers{
		users:     map[string]model.User{"a@b.c": {ID: 1, Email: "a@b.c"}},
		passwords: map[int64]string{1: "pw"},
	}, newMockRevocations(), []byte("other-secret"), time.Hour, "", discardLogger())

	token, _, err := other.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, application.ErrInvalidSession)
}

func TestAuthService_SignOutRevokes(t *testing.T) {
	svc, revocations := newAuthFixture()
	ctx := context.Background()

	token, session, err := svc.Login(ctx, "admin@risinglab.com", "rising@3399#")
	require.NoError(t, err)

	target, err := svc.SignOut(ctx, token, "")
	require.NoError(t, err)
	assert.Equal(t, "https://admin.risinglab.com", target)

	revoked, err := revocations.IsRevoked(ctx, session.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, application.ErrInvalidSession)
}

func TestAuthService_SignOutUsesCallback(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin@risinglab.com", "rising@3399#")
	require.NoError(t, err)

	target, err := svc.SignOut(ctx, token, "/login")
	require.NoError(t, err)
	assert.Equal(t, "/login", target)
}

func TestAuthService_SignOutStoreFailure(t *testing.T) {
	svc, revocations := newAuthFixture()
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin@risinglab.com", "rising@3399#")
	require.NoError(t, err)

	revocations.err = errors.New("disk full")
	_, err = svc.SignOut(ctx, token, "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, application.ErrInvalidSession)
}

func TestAuthService_StartPurgeStopsWithContext(t *testing.T) {
	svc, revocations := newAuthFixture()
	require.NoError(t, revocations.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.StartPurge(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		revoked, _ := revocations.IsRevoked(context.Background(), "old")
		return !revoked
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("purge loop did not stop")
	}
}
