package domain

import "time"

// Notification types as the upstream API names them.
const (
	NotificationConfirmation = "confirmacao"
	NotificationCancellation = "cancelamento"
	NotificationReminder     = "lembranca"
	NotificationUpdate       = "atualizacao"
)

// Notification as served by the upstream /notificacoes/ family.
type Notification struct {
	ID            int        `json:"id"`
	UserID        int        `json:"usuario"`
	ReservationID int        `json:"reserva"`
	Type          string     `json:"tipo"`
	Title         string     `json:"titulo"`
	Message       string     `json:"mensagem"`
	Read          bool       `json:"lido"`
	CreatedAt     time.Time  `json:"data_criacao"`
	ReadAt        *time.Time `json:"data_leitura,omitempty"`
}
