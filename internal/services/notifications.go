package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/upstream"
)

// NotificationService wraps the /notificacoes/ resource family. All
// listings are implicitly scoped upstream to the authenticated user.
type NotificationService struct {
	api *upstream.Client
}

func NewNotificationService(api *upstream.Client) *NotificationService {
	return &NotificationService{api: api}
}

// ListNotificationsParams filters the paginated notification listing.
type ListNotificationsParams struct {
	Page int
	Read *bool
}

func (p ListNotificationsParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Read != nil {
		q.Set("lido", strconv.FormatBool(*p.Read))
	}
	return q
}

func (s *NotificationService) List(ctx context.Context, params ListNotificationsParams) (*domain.Page[domain.Notification], error) {
	var out domain.Page[domain.Notification]
	if err := s.api.Get(ctx, "/notificacoes/", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *NotificationService) Get(ctx context.Context, id int) (*domain.Notification, error) {
	var out domain.Notification
	if err := s.api.Get(ctx, fmt.Sprintf("/notificacoes/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkRead flags a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int) (*domain.Notification, error) {
	var out domain.Notification
	if err := s.api.Post(ctx, fmt.Sprintf("/notificacoes/%d/marcar_lida/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkAllRead flags every unread notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.api.Post(ctx, "/notificacoes/marcar_todas_lidas/", nil, nil)
}

// CountUnread returns the unread badge count.
func (s *NotificationService) CountUnread(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.api.Get(ctx, "/notificacoes/contar_nao_lidas/", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
