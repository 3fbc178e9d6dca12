// Package memory provides in-process implementations of driven ports: the
// seeded administrator list and a staging area for uploaded images.
package memory

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/risinglab/jewelpanel/internal/domain/model"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserStore)(nil)

// SeedUsers is placeholder data. Replace it with a real user database before
// going to production.
var SeedUsers = []model.User{
	{
		ID:       1,
		Name:     "John Doe",
		Password: "rising@3399#",
		Email:    "admin@risinglab.com",
		Image:    "/images/avatars/1.png",
	},
}

// UserStore is a static, read-only user list. Passwords are bcrypt-hashed
// when the store is built and the plaintext is dropped.
type UserStore struct {
	users  []model.User
	hashes map[int64][]byte
}

// NewUserStore hashes each user's password with the given bcrypt cost
// (bcrypt.DefaultCost when cost is 0).
func NewUserStore(users []model.User, cost int) (*UserStore, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	s := &UserStore{
		users:  make([]model.User, 0, len(users)),
		hashes: make(map[int64][]byte, len(users)),
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for user %d: %w", u.ID, err)
		}
		s.hashes[u.ID] = hash
		u.Password = ""
		s.users = append(s.users, u)
	}

	return s, nil
}

// FindByEmail returns the user with a case-insensitively matching email, or nil.
func (s *UserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

// VerifyPassword compares password against the stored hash.
func (s *UserStore) VerifyPassword(_ context.Context, userID int64, password string) (bool, error) {
	hash, ok := s.hashes[userID]
	if !ok {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare password for user %d: %w", userID, err)
	}
	return true, nil
}
