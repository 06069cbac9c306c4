package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/atulsm/user-service/internal/user/domain UserRepository,TokenDenylist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	usererror "github.com/atulsm/user-service/internal/errors"
	"github.com/atulsm/user-service/internal/user/domain"
	"github.com/atulsm/user-service/internal/user/dto"
	"github.com/atulsm/user-service/pkg/constant"
)

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	denylist     domain.TokenDenylist // optional; nil disables server-side logout
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, denylist domain.TokenDenylist) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		denylist:     denylist,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	return s.createUser(ctx, input.FirstName, input.LastName, input.Email, input.Password, input.PhoneNumber)
}

func (s *UserService) Create(ctx context.Context, input dto.CreateUserInput) (*domain.User, error) {
	return s.createUser(ctx, input.FirstName, input.LastName, input.Email, input.Password, input.PhoneNumber)
}

func (s *UserService) createUser(ctx context.Context, firstName, lastName, email, password, phoneNumber string) (*domain.User, error) {
	existingUser, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, usererror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
		PhoneNumber:  phoneNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks credentials and issues a bearer token for the user.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (string, *domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return "", nil, usererror.ErrInvalidCredentials
	}

	token, _, err := s.tokenService.Generate(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout denylists the presented token for its remaining lifetime so the auth
// middleware rejects it from now on. A token that no longer verifies needs no
// denylist entry.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if s.denylist == nil || token == "" {
		return nil
	}

	claims, err := s.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.denylist.Revoke(ctx, token, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return usererror.ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, user.ID, string(hashedPassword))
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, usererror.ErrUserNotFound
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = constant.DefaultListLimit
	}
	if limit > constant.MaxListLimit {
		limit = constant.MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.List(ctx, limit, offset)
}

// Update applies a partial update: nil fields keep their current value.
func (s *UserService) Update(ctx context.Context, id string, input dto.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, usererror.ErrUserNotFound
	}

	if input.Email != nil && *input.Email != user.Email {
		other, err := s.repo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, usererror.ErrEmailAlreadyInUse
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}

	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *UserService) Activity(ctx context.Context, start, end time.Time) ([]domain.ActivityPoint, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("endDate precedes startDate")
	}

	return s.repo.Activity(ctx, start, end)
}

func (s *UserService) Stats(ctx context.Context) (*domain.UserStats, error) {
	return s.repo.Stats(ctx)
}

// IsTokenRevoked reports whether a previously issued token has been
// invalidated by logout. Without a denylist configured, logout is client-side
// only and nothing is ever revoked.
func (s *UserService) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	if s.denylist == nil {
		return false, nil
	}

	return s.denylist.IsRevoked(ctx, token)
}
