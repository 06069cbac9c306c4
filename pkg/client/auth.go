package client

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// AuthService translates authentication intents into HTTP calls.
type AuthService struct {
	client *Client
}

func NewAuthService(c *Client) *AuthService {
	return &AuthService{client: c}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a bearer token and stores it; every
// subsequent request through this client sends it.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	var out LoginResponse
	if err := s.client.do(ctx, http.MethodPost, "/auth/login", nil, input, &out); err != nil {
		return nil, err
	}

	if err := s.client.store.Set(out.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}

	return &out, nil
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodPost, "/auth/register", nil, input, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Logout ends the session. The local token is cleared no matter what; a
// failing network call is logged and discarded because local logout is
// authoritative.
func (s *AuthService) Logout(ctx context.Context) {
	defer func() {
		if err := s.client.store.Clear(); err != nil {
			s.client.logger.Warn("failed to clear session token", zap.Error(err))
		}
	}()

	if err := s.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		s.client.logger.Warn("logout request failed", zap.Error(err))
	}
}

type ResetPasswordInput struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	return s.client.do(ctx, http.MethodPost, "/auth/reset-password", nil, input, nil)
}
