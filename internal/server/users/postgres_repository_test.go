package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dspetrov/payportal/internal/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewPostgresRepository(db)
	require.NoError(t, err)

	return repo, mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Now()

	mock.ExpectQuery(`INSERT INTO users \(id, email, password_hash\)`).
		WithArgs(sqlmock.AnyArg(), "alice@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	user, err := repo.Create(context.Background(), &User{Email: "alice@example.com", PasswordHash: "hash"})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, created, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users \(id, email, password_hash\)`).
		WithArgs(sqlmock.AnyArg(), "alice@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &User{Email: "alice@example.com", PasswordHash: "hash"})

	assert.ErrorIs(t, err, shared.ErrorAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(context.Background(), &User{Email: "alice@example.com", PasswordHash: "hash"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrorAlreadyExists)
}

func TestGetByEmail_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	created := time.Now()

	mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM users`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("u1", "alice@example.com", "hash", created))

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM users`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, shared.ErrorNotFound)
}
