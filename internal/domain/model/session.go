package model

import "time"

// Session is an authenticated dashboard session decoded from a token.
type Session struct {
	TokenID   string
	UserID    int64
	Name      string
	Email     string
	Image     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
