package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/risinglab/jewelpanel/internal/domain/model"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

// SessionCookieName is the cookie that carries a session token.
const SessionCookieName = "jewelpanel_session"

var (
	// ErrInvalidCredentials rejects an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidSession rejects a malformed, expired or revoked session token.
	ErrInvalidSession = errors.New("invalid session")
)

// Compile-time interface satisfaction check.
var _ SignOuter = (*AuthService)(nil)

// sessionClaims is the JWT payload of a dashboard session.
type sessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// AuthService issues, verifies and revokes dashboard session tokens.
type AuthService struct {
	users       driven.UserStore
	revocations driven.RevocationStore
	secret      []byte
	ttl         time.Duration
	appURL      string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAuthService creates an AuthService signing HS256 tokens with secret.
// appURL is the redirect target when a sign-out names no callback.
func NewAuthService(
	users driven.UserStore,
	revocations driven.RevocationStore,
	secret []byte,
	ttl time.Duration,
	appURL string,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		revocations: revocations,
		secret:      secret,
		ttl:         ttl,
		appURL:      appURL,
		now:         time.Now,
		logger:      logger,
	}
}

// Login verifies the credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, model.Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", model.Session{}, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return "", model.Session{}, ErrInvalidCredentials
	}

	ok, err := s.users.VerifyPassword(ctx, user.ID, password)
	if err != nil {
		return "", model.Session{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", model.Session{}, ErrInvalidCredentials
	}

	now := s.now().UTC().Truncate(time.Second)
	session := model.Session{
		TokenID:   uuid.NewString(),
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Image:     user.Image,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.TokenID,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
		Name:  user.Name,
		Email: user.Email,
		Image: user.Image,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", model.Session{}, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info("admin signed in", "email", user.Email)
	return token, session, nil
}

// Authenticate verifies a session token and checks that it was not revoked.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.Session, error) {
	session, err := s.parse(token)
	if err != nil {
		return model.Session{}, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, session.TokenID)
	if err != nil {
		return model.Session{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return model.Session{}, ErrInvalidSession
	}
	return session, nil
}

// SignOut revokes the session token and returns callbackURL, or the
// application URL when callbackURL is empty.
func (s *AuthService) SignOut(ctx context.Context, token, callbackURL string) (string, error) {
	session, err := s.parse(token)
	if err != nil {
		return "", err
	}

	if err := s.revocations.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return "", fmt.Errorf("revoke session: %w", err)
	}

	s.logger.Info("admin signed out", "email", session.Email)

	if strings.TrimSpace(callbackURL) == "" {
		return s.appURL, nil
	}
	return callbackURL, nil
}

func (s *AuthService) parse(token string) (model.Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.ID == "" {
		return model.Session{}, ErrInvalidSession
	}

	session := model.Session{
		TokenID:   claims.ID,
		UserID:    userID,
		Name:      claims.Name,
		Email:     claims.Email,
		Image:     claims.Image,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}

// StartPurge deletes expired revocations every interval. It blocks until ctx
// is cancelled.
func (s *AuthService) StartPurge(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("revocation purge stopped")
			return
		case <-ticker.C:
			n, err := s.revocations.PurgeExpired(ctx, s.now())
			if err != nil {
				s.logger.Error("revocation purge failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Debug("purged expired revocations", "count", n)
			}
		}
	}
}
