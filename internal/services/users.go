package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/upstream"
)

// UserService wraps the /usuarios/ management family (admin surface; the
// authentication operations live in AuthService).
type UserService struct {
	api *upstream.Client
}

func NewUserService(api *upstream.Client) *UserService {
	return &UserService{api: api}
}

// ListUsersParams filters the paginated user listing.
type ListUsersParams struct {
	Page         int
	Search       string
	Role         string
	RestaurantID int
}

func (p ListUsersParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Role != "" {
		q.Set("papel", p.Role)
	}
	if p.RestaurantID > 0 {
		q.Set("restaurante", strconv.Itoa(p.RestaurantID))
	}
	return q
}

func (s *UserService) List(ctx context.Context, params ListUsersParams) (*domain.Page[domain.User], error) {
	var out domain.Page[domain.User]
	if err := s.api.Get(ctx, "/usuarios/", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	var out domain.User
	if err := s.api.Get(ctx, fmt.Sprintf("/usuarios/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUserInput provisions a staff or admin account. Role and restaurant
// are optional; upstream defaults to a customer account without them.
type CreateUserInput struct {
	Username     string `json:"username"`
	Name         string `json:"nome"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"papel,omitempty"`
	RestaurantID int    `json:"restaurante,omitempty"`
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	var out domain.User
	if err := s.api.Post(ctx, "/usuarios/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserInput carries a partial update; nil fields are untouched.
type UpdateUserInput struct {
	Username *string `json:"username,omitempty"`
	Name     *string `json:"nome,omitempty"`
	Email    *string `json:"email,omitempty"`
	Active   *bool   `json:"is_active,omitempty"`
}

func (s *UserService) Update(ctx context.Context, id int, in UpdateUserInput) (*domain.User, error) {
	var out domain.User
	if err := s.api.Patch(ctx, fmt.Sprintf("/usuarios/%d/", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/usuarios/%d/", id))
}
