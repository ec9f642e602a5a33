package employees

import "time"

// Employee is an internal reviewer identity. Seeded by process bootstrap
// or the seedemployee CLI; never created through the API.
type Employee struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}
