package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/Rakhulsr/go-catalog-admin/app/repositories"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	userRepo repositories.UserRepositoryImpl
}

func NewAuthService(userRepo repositories.UserRepositoryImpl) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Authenticate returns the admin user matching email and password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		return nil, ErrInvalidCredentials
	}
	if user.Role != models.RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || len(password) < 6 {
		return nil, errors.New("name, email and a password of at least 6 characters are required")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s is already registered", email)
	}

	user := &models.User{Name: name, Email: email, Password: password, Role: models.RoleAdmin}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return user, nil
}
