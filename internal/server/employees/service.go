package employees

import (
	"context"
	"errors"
	"fmt"

	"github.com/dspetrov/payportal/internal/server/auth"
	"github.com/dspetrov/payportal/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Seed creates or refreshes an employee record. Used by process bootstrap
// and the seedemployee CLI only; there is no API route for it.
func (s *Service) Seed(ctx context.Context, username, fullName, password string) (*Employee, error) {

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	employee := &Employee{
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
	}

	employee, err = s.repo.Upsert(ctx, employee)
	if err != nil {
		return nil, fmt.Errorf("error seeding employee: %w", err)
	}

	return employee, nil
}

// Login verifies reviewer credentials. An unknown username and a wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username string, password string) (*Employee, error) {

	employee, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorUnauthorized
		}
		return nil, shared.ErrorInternal
	}

	if !auth.CheckPassword(employee.PasswordHash, password) {
		return nil, shared.ErrorUnauthorized
	}

	return employee, nil
}
