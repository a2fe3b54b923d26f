package domain

import "time"

// Restaurant as served by the upstream /restaurantes/ family.
type Restaurant struct {
	ID          int       `json:"id"`
	Name        string    `json:"nome"`
	Description string    `json:"descricao"`
	Address     string    `json:"endereco"`
	City        string    `json:"cidade"`
	State       string    `json:"estado"`
	PostalCode  string    `json:"cep"`
	Phone       string    `json:"telefone"`
	Email       string    `json:"email"`
	OwnerID     int       `json:"proprietario"`
	TableCount  int       `json:"quantidade_mesas"`
	Active      bool      `json:"ativo"`
	CreatedAt   time.Time `json:"data_criacao"`
	UpdatedAt   time.Time `json:"data_atualizacao"`
}
