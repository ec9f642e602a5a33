package db

import (
	"context"
	"database/sql"

	"github.com/dspetrov/payportal/internal/server/employees"
	"github.com/dspetrov/payportal/internal/server/payments"
	"github.com/dspetrov/payportal/internal/server/users"
)

// RepositoryManager is the explicitly constructed store handle passed down
// to services. It owns the connection pool for the process lifetime and is
// released on shutdown; nothing in the repository layer holds globals.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	Employees() employees.Repository
	Payments() payments.Repository
}
