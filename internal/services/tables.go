package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/upstream"
)

// TableService wraps the /mesas/ resource family.
type TableService struct {
	api *upstream.Client
}

func NewTableService(api *upstream.Client) *TableService {
	return &TableService{api: api}
}

// ListTablesParams filters the paginated table listing.
type ListTablesParams struct {
	Page         int
	RestaurantID int
	Status       string
	Active       *bool
}

func (p ListTablesParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.RestaurantID > 0 {
		q.Set("restaurante", strconv.Itoa(p.RestaurantID))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Active != nil {
		q.Set("ativa", strconv.FormatBool(*p.Active))
	}
	return q
}

func (s *TableService) List(ctx context.Context, params ListTablesParams) (*domain.Page[domain.Table], error) {
	var out domain.Page[domain.Table]
	if err := s.api.Get(ctx, "/mesas/", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TableService) Get(ctx context.Context, id int) (*domain.Table, error) {
	var out domain.Table
	if err := s.api.Get(ctx, fmt.Sprintf("/mesas/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TableService) Create(ctx context.Context, restaurantID, number int) (*domain.Table, error) {
	var out domain.Table
	err := s.api.Post(ctx, "/mesas/", map[string]int{
		"restaurante": restaurantID,
		"numero":      number,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTableInput carries a partial update; nil fields are untouched.
type UpdateTableInput struct {
	Number *int    `json:"numero,omitempty"`
	Status *string `json:"status,omitempty"`
	Active *bool   `json:"ativa,omitempty"`
}

func (s *TableService) Update(ctx context.Context, id int, in UpdateTableInput) (*domain.Table, error) {
	var out domain.Table
	if err := s.api.Patch(ctx, fmt.Sprintf("/mesas/%d/", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TableService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/mesas/%d/", id))
}

// AvailabilityInput asks the upstream whether a party fits on a given slot.
type AvailabilityInput struct {
	RestaurantID int    `json:"restaurante"`
	Date         string `json:"data_reserva"`
	Time         string `json:"horario"`
	PartySize    int    `json:"quantidade_pessoas"`
}

// CheckAvailability forwards the availability question upstream. The answer
// is consumed as-is; the gateway performs no scheduling of its own.
func (s *TableService) CheckAvailability(ctx context.Context, in AvailabilityInput) (*domain.Availability, error) {
	var out domain.Availability
	if err := s.api.Post(ctx, "/mesas/verificar_disponibilidade/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
