package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dspetrov/payportal/internal/shared"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, employee *Employee) (*Employee, error) {

	query :=
		`INSERT INTO employees (id, username, password_hash, full_name)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (username) DO UPDATE
		 SET password_hash = excluded.password_hash, full_name = excluded.full_name
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), employee.Username, employee.PasswordHash, employee.FullName).
		Scan(&employee.ID, &employee.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return employee, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*Employee, error) {
	query :=
		`SELECT id, username, password_hash, full_name, created_at FROM employees
		 WHERE username = $1
		 `

	employee := &Employee{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&employee.ID, &employee.Username, &employee.PasswordHash, &employee.FullName, &employee.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return employee, nil
}
