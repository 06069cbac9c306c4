package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// UserService translates user CRUD and profile intents into HTTP calls. No
// caching, no retries; every call hits the backend.
type UserService struct {
	client *Client
}

func NewUserService(c *Client) *UserService {
	return &UserService{client: c}
}

type User struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateUserInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// UpdateUserInput is a partial update: nil fields are omitted from the
// request body and keep their server-side value.
type UpdateUserInput struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

type UserActivity struct {
	Date        string `json:"date"`
	NewUsers    int    `json:"newUsers"`
	ActiveUsers int    `json:"activeUsers"`
}

type UserStats struct {
	TotalUsers  int `json:"totalUsers"`
	ActiveUsers int `json:"activeUsers"`
	NewUsers    int `json:"newUsers"`
}

// ActivityParams bound the activity query; dates are YYYY-MM-DD.
type ActivityParams struct {
	StartDate string
	EndDate   string
}

func (s *UserService) List(ctx context.Context) ([]User, error) {
	var out []User
	if err := s.client.do(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodPost, "/users", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}

func (s *UserService) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodGet, "/users/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, input UpdateUserInput) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodPut, "/users/profile", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Activity(ctx context.Context, params ActivityParams) ([]UserActivity, error) {
	query := url.Values{}
	query.Set("startDate", params.StartDate)
	query.Set("endDate", params.EndDate)

	var out []UserActivity
	if err := s.client.do(ctx, http.MethodGet, "/users/activity", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserService) Stats(ctx context.Context) (*UserStats, error) {
	var out UserStats
	if err := s.client.do(ctx, http.MethodGet, "/users/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
