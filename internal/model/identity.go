package model

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the server-side record for a locally generated user id.
// SecretHash is a bcrypt hash of the user-supplied secret key and is
// never serialized back to clients.
type Identity struct {
	ID         uuid.UUID `json:"id"`
	SecretHash string    `json:"-"`
	HasPosts   bool      `json:"has_posts"`
	CreatedAt  time.Time `json:"created_at"`
}
