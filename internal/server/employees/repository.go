package employees

import (
	"context"
)

type Repository interface {
	// Upsert inserts the employee or, when the username already exists,
	// refreshes its password hash and full name.
	Upsert(ctx context.Context, employee *Employee) (*Employee, error)
	GetByUsername(ctx context.Context, username string) (*Employee, error)
}
