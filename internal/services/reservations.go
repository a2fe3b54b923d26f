package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/upstream"
)

// ReservationService wraps the /reservas/ resource family.
type ReservationService struct {
	api *upstream.Client
}

func NewReservationService(api *upstream.Client) *ReservationService {
	return &ReservationService{api: api}
}

// ListReservationsParams filters the paginated reservation listing.
type ListReservationsParams struct {
	Page         int
	RestaurantID int
	Status       string
	Date         string
	Search       string
}

func (p ListReservationsParams) values() url.Values {
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
	if p.Date != "" {
		q.Set("data_reserva", p.Date)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

func (s *ReservationService) List(ctx context.Context, params ListReservationsParams) (*domain.Page[domain.Reservation], error) {
	var out domain.Page[domain.Reservation]
	if err := s.api.Get(ctx, "/reservas/", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ReservationService) Get(ctx context.Context, id int) (*domain.Reservation, error) {
	var out domain.Reservation
	if err := s.api.Get(ctx, fmt.Sprintf("/reservas/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReservationInput creates a reservation request. Table assignment is
// decided upstream.
type CreateReservationInput struct {
	RestaurantID  int    `json:"restaurante"`
	Date          string `json:"data_reserva"`
	Time          string `json:"horario"`
	PartySize     int    `json:"quantidade_pessoas"`
	CustomerName  string `json:"nome_cliente"`
	CustomerPhone string `json:"telefone_cliente"`
	CustomerEmail string `json:"email_cliente,omitempty"`
	Notes         string `json:"observacoes,omitempty"`
}

func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error) {
	var out domain.Reservation
	if err := s.api.Post(ctx, "/reservas/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReservationInput carries a partial update; nil fields are untouched.
type UpdateReservationInput struct {
	Date          *string `json:"data_reserva,omitempty"`
	Time          *string `json:"horario,omitempty"`
	PartySize     *int    `json:"quantidade_pessoas,omitempty"`
	CustomerName  *string `json:"nome_cliente,omitempty"`
	CustomerPhone *string `json:"telefone_cliente,omitempty"`
	CustomerEmail *string `json:"email_cliente,omitempty"`
	Notes         *string `json:"observacoes,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func (s *ReservationService) Update(ctx context.Context, id int, in UpdateReservationInput) (*domain.Reservation, error) {
	var out domain.Reservation
	if err := s.api.Patch(ctx, fmt.Sprintf("/reservas/%d/", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ReservationService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/reservas/%d/", id))
}

// actionResult is the envelope returned by the custom reservation actions.
type actionResult struct {
	Message     string             `json:"mensagem"`
	Reservation domain.Reservation `json:"reserva"`
}

// Confirm moves a pending reservation to confirmed (staff action).
func (s *ReservationService) Confirm(ctx context.Context, id int) (*domain.Reservation, error) {
	var out actionResult
	if err := s.api.Post(ctx, fmt.Sprintf("/reservas/%d/confirmar/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Reservation, nil
}

// Cancel cancels a reservation, optionally recording a reason.
func (s *ReservationService) Cancel(ctx context.Context, id int, reason string) (*domain.Reservation, error) {
	var out actionResult
	body := map[string]string{}
	if reason != "" {
		body["motivo"] = reason
	}
	if err := s.api.Post(ctx, fmt.Sprintf("/reservas/%d/cancelar/", id), body, &out); err != nil {
		return nil, err
	}
	return &out.Reservation, nil
}

// Complete marks a confirmed reservation as finished (staff action).
func (s *ReservationService) Complete(ctx context.Context, id int) (*domain.Reservation, error) {
	var out actionResult
	if err := s.api.Post(ctx, fmt.Sprintf("/reservas/%d/concluir/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Reservation, nil
}

// Mine lists the authenticated user's own reservations.
func (s *ReservationService) Mine(ctx context.Context, page int, status string) (*domain.Page[domain.Reservation], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if status != "" {
		q.Set("status", status)
	}
	var out domain.Page[domain.Reservation]
	if err := s.api.Get(ctx, "/reservas/minhas_reservas/", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Today lists today's reservations for a restaurant (staff dashboard).
func (s *ReservationService) Today(ctx context.Context, restaurantID int) ([]domain.Reservation, error) {
	q := url.Values{}
	q.Set("restaurante", strconv.Itoa(restaurantID))
	var out []domain.Reservation
	if err := s.api.Get(ctx, "/reservas/hoje/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OccupancyReport returns the upstream occupancy report for a date range.
// The report shape is owned upstream and forwarded untouched.
func (s *ReservationService) OccupancyReport(ctx context.Context, restaurantID int, from, to string) (map[string]any, error) {
	q := url.Values{}
	q.Set("restaurante", strconv.Itoa(restaurantID))
	q.Set("data_inicio", from)
	q.Set("data_fim", to)
	var out map[string]any
	if err := s.api.Get(ctx, "/reservas/relatorio_ocupacao/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
