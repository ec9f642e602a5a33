package employees

import (
	"context"
	"testing"

	"github.com/dspetrov/payportal/internal/server/auth"
	"github.com/dspetrov/payportal/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	upserted   *Employee
	byUsername map[string]*Employee
}

func (s *stubRepo) Upsert(_ context.Context, employee *Employee) (*Employee, error) {
	employee.ID = "e1"
	s.upserted = employee
	return employee, nil
}

func (s *stubRepo) GetByUsername(_ context.Context, username string) (*Employee, error) {
	employee, ok := s.byUsername[username]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return employee, nil
}

func TestSeed_HashesPassword(t *testing.T) {
	repo := &stubRepo{}
	service := NewService(repo)

	employee, err := service.Seed(context.Background(), "reviewer1", "Dana Reviewer", "GoodPass123!")

	require.NoError(t, err)
	assert.Equal(t, "reviewer1", employee.Username)
	assert.NotEqual(t, "GoodPass123!", repo.upserted.PasswordHash)
	assert.True(t, auth.CheckPassword(repo.upserted.PasswordHash, "GoodPass123!"))
}

func TestEmployeeLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("GoodPass123!")
	require.NoError(t, err)

	repo := &stubRepo{byUsername: map[string]*Employee{
		"reviewer1": {ID: "e1", Username: "reviewer1", PasswordHash: hash, FullName: "Dana Reviewer"},
	}}
	service := NewService(repo)

	employee, err := service.Login(context.Background(), "reviewer1", "GoodPass123!")

	require.NoError(t, err)
	assert.Equal(t, "e1", employee.ID)
}

func TestEmployeeLogin_UnknownUsername(t *testing.T) {
	service := NewService(&stubRepo{byUsername: map[string]*Employee{}})

	_, err := service.Login(context.Background(), "ghost", "GoodPass123!")

	assert.ErrorIs(t, err, shared.ErrorUnauthorized)
}

func TestEmployeeLogin_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("GoodPass123!")
	require.NoError(t, err)

	repo := &stubRepo{byUsername: map[string]*Employee{
		"reviewer1": {ID: "e1", Username: "reviewer1", PasswordHash: hash},
	}}
	service := NewService(repo)

	_, err = service.Login(context.Background(), "reviewer1", "WrongPass123!")

	assert.ErrorIs(t, err, shared.ErrorUnauthorized)
}
