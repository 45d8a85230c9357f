package models

import "time"

// RefreshToken is a server-side refresh token. Only the sha256 hash of the
// token leaves the auth service.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	Expires   time.Time
	CreatedAt time.Time
}
