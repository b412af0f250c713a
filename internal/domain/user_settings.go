package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings holds per-user preferences. The model API key is only ever
// held in sealed form; plaintext keys live for the duration of a request.
type UserSettings struct {
	UserID       uuid.UUID
	SealedAPIKey []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasAPIKey reports whether a key has been stored.
func (s *UserSettings) HasAPIKey() bool {
	return s != nil && len(s.SealedAPIKey) > 0
}
