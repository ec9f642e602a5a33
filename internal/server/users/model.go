package users

import "time"

// User is a customer identity. Created on registration, immutable
// thereafter; never deleted by this system.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
