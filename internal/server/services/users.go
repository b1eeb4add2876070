// Package services holds the business rules between the HTTP surface and the
// repositories: credential handling, token issuance, and per-owner task
// access checks.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkravets/taskkeeper/internal/common"
	"github.com/dkravets/taskkeeper/internal/server/auth"
	"github.com/dkravets/taskkeeper/internal/server/config"
	"github.com/dkravets/taskkeeper/internal/server/models"
	"github.com/dkravets/taskkeeper/internal/server/repositories/users"
)

type UserService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// NormalizeEmail applies the fixed case policy: emails are compared and
// stored lower-cased, so "A@x.com" and "a@x.com" are the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns it together with a fresh bearer
// token. The password is stored only as a bcrypt digest. A colliding email
// yields common.ErrorEmailExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {

	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorEmailExists) {
			return nil, "", common.ErrorEmailExists
		}
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return user, token, nil
}

// Login verifies the credentials and issues a bearer token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {

	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return user, token, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile changes the mutable profile fields. Only the display name is
// mutable; the email is deliberately not updatable here.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name string) (*models.User, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	return s.repo.UpdateName(ctx, userID, name)
}

func (s *UserService) issueToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
}
