package models

import "time"

// User is a staff account allowed into the CMS console.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
