package model

// User is an administrator allowed to sign in to the dashboard.
type User struct {
	ID       int64
	Name     string
	Email    string
	Image    string // Avatar path, e.g. "/images/avatars/1.png".
	Password string // Plaintext in seed data only; stores hash it on load.
}
