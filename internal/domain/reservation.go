package domain

import "time"

// Reservation statuses as the upstream API names them.
const (
	ReservationPending   = "pendente"
	ReservationConfirmed = "confirmada"
	ReservationCancelled = "cancelada"
	ReservationCompleted = "concluida"
)

// Reservation as served by the upstream /reservas/ family. Date is
// YYYY-MM-DD and Time is HH:MM:SS, both kept as strings because the
// upstream serialises them as bare date/time values without a zone.
type Reservation struct {
	ID            int       `json:"id"`
	RestaurantID  int       `json:"restaurante"`
	UserID        *int      `json:"usuario,omitempty"`
	TableIDs      []int     `json:"mesas"`
	Date          string    `json:"data_reserva"`
	Time          string    `json:"horario"`
	PartySize     int       `json:"quantidade_pessoas"`
	CustomerName  string    `json:"nome_cliente"`
	CustomerPhone string    `json:"telefone_cliente"`
	CustomerEmail string    `json:"email_cliente,omitempty"`
	Notes         string    `json:"observacoes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"data_criacao"`
	UpdatedAt     time.Time `json:"data_atualizacao"`
}
