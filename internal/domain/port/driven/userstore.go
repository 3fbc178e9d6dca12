package driven

import (
	"context"

	"github.com/risinglab/jewelpanel/internal/domain/model"
)

// UserStore defines the driven port for administrator lookup.
type UserStore interface {
	// FindByEmail returns nil, nil when no user has the given email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// VerifyPassword reports whether password matches the stored secret of the
	// user with the given ID.
	VerifyPassword(ctx context.Context, userID int64, password string) (bool, error)
}
