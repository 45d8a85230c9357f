package models

import "time"

// Challenge is a pending second-factor check for a sign-in. One exists per
// email at most; a newer login replaces it.
type Challenge struct {
	Email    string
	CodeHash string
	Expires  time.Time
	Attempts int
}
