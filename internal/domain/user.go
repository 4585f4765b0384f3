package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a municipal field-crew account. Usernames are stored lower-case.
type User struct {
	ID           uuid.UUID
	Username     string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}
