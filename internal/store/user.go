package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// UserStore persists registered users. Emails are matched case-insensitively.
type UserStore interface {
	// Create inserts a user that already carries a bcrypt HashedPassword.
	// Returns ErrEmailExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound for an unknown ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail returns ErrUserNotFound for an unknown email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore
}
