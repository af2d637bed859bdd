package identity

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the users table. The password hash never serializes.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DateJoined   time.Time `db:"date_joined" json:"date_joined"`
}

// TokenPair is the credential pair returned by a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
