package domain

import "time"

// Table statuses as the upstream API names them.
const (
	TableAvailable = "disponivel"
	TableOccupied  = "ocupada"
)

// Table as served by the upstream /mesas/ family. Capacity is fixed at four
// seats upstream; more people means more tables.
type Table struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurante"`
	Number       int       `json:"numero"`
	Status       string    `json:"status"`
	Active       bool      `json:"ativa"`
	Capacity     int       `json:"capacidade"`
	CreatedAt    time.Time `json:"data_criacao"`
	UpdatedAt    time.Time `json:"data_atualizacao"`
}

// Availability is the upstream answer to a verificar_disponibilidade check.
// The availability computation itself lives upstream; the gateway only
// forwards the record.
type Availability struct {
	Available    bool   `json:"disponivel"`
	TablesNeeded int    `json:"mesas_necessarias"`
	Message      string `json:"mensagem,omitempty"`
}
