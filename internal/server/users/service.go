package users

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

// Register stores a new customer with a bcrypt-hashed password. The caller
// is expected to have run the registration schema first; duplicate emails
// surface as shared.ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, email string, password string) (*User, error) {

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, shared.ErrorAlreadyExists) {
			return nil, shared.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email string, password string) (*User, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorUnauthorized
		}
		return nil, shared.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, shared.ErrorUnauthorized
	}

	return user, nil
}
