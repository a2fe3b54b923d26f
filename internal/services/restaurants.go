package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/upstream"
)

// RestaurantService wraps the /restaurantes/ resource family.
type RestaurantService struct {
	api *upstream.Client
}

func NewRestaurantService(api *upstream.Client) *RestaurantService {
	return &RestaurantService{api: api}
}

// ListRestaurantsParams filters the paginated restaurant listing.
type ListRestaurantsParams struct {
	Page   int
	Search string
	City   string
	Active *bool
}

func (p ListRestaurantsParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.City != "" {
		q.Set("cidade", p.City)
	}
	if p.Active != nil {
		q.Set("ativo", strconv.FormatBool(*p.Active))
	}
	return q
}

func (s *RestaurantService) List(ctx context.Context, params ListRestaurantsParams) (*domain.Page[domain.Restaurant], error) {
	var out domain.Page[domain.Restaurant]
	if err := s.api.Get(ctx, "/restaurantes/", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RestaurantService) Get(ctx context.Context, id int) (*domain.Restaurant, error) {
	var out domain.Restaurant
	if err := s.api.Get(ctx, fmt.Sprintf("/restaurantes/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestaurantInput creates or updates a restaurant. Pointer fields are
// omitted from partial updates when nil.
type RestaurantInput struct {
	Name        string `json:"nome"`
	Description string `json:"descricao,omitempty"`
	Address     string `json:"endereco"`
	City        string `json:"cidade"`
	State       string `json:"estado"`
	PostalCode  string `json:"cep"`
	Phone       string `json:"telefone,omitempty"`
	Email       string `json:"email"`
	TableCount  int    `json:"quantidade_mesas,omitempty"`
}

func (s *RestaurantService) Create(ctx context.Context, in RestaurantInput) (*domain.Restaurant, error) {
	var out domain.Restaurant
	if err := s.api.Post(ctx, "/restaurantes/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRestaurantInput carries a partial update; nil fields are untouched.
type UpdateRestaurantInput struct {
	Name        *string `json:"nome,omitempty"`
	Description *string `json:"descricao,omitempty"`
	Address     *string `json:"endereco,omitempty"`
	City        *string `json:"cidade,omitempty"`
	State       *string `json:"estado,omitempty"`
	PostalCode  *string `json:"cep,omitempty"`
	Phone       *string `json:"telefone,omitempty"`
	Email       *string `json:"email,omitempty"`
	TableCount  *int    `json:"quantidade_mesas,omitempty"`
	Active      *bool   `json:"ativo,omitempty"`
}

func (s *RestaurantService) Update(ctx context.Context, id int, in UpdateRestaurantInput) (*domain.Restaurant, error) {
	var out domain.Restaurant
	if err := s.api.Patch(ctx, fmt.Sprintf("/restaurantes/%d/", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RestaurantService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/restaurantes/%d/", id))
}

// Mine lists the restaurants owned by the authenticated user.
func (s *RestaurantService) Mine(ctx context.Context) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	if err := s.api.Get(ctx, "/restaurantes-usuarios/meus_restaurantes/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
