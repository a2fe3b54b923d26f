package domain

import "time"

// Role types as the upstream API names them.
const (
	RoleSystemAdmin = "admin_sistema"
	RoleOwner       = "admin_secundario"
	RoleStaff       = "funcionario"
	RoleCustomer    = "cliente"
)

// Role is a permission group assigned to a user account upstream.
type Role struct {
	ID          int       `json:"id"`
	Type        string    `json:"tipo"`
	Description string    `json:"descricao"`
	CreatedAt   time.Time `json:"data_criacao"`
}

// User models an account as served by the upstream API. The gateway holds a
// read-mostly cached copy per session; the upstream record is authoritative.
type User struct {
	ID                 int       `json:"id"`
	Username           string    `json:"username"`
	Name               string    `json:"nome"`
	Email              string    `json:"email"`
	Roles              []Role    `json:"papeis"`
	MustChangePassword bool      `json:"precisa_trocar_senha"`
	DateJoined         time.Time `json:"date_joined,omitempty"`
	Active             bool      `json:"is_active,omitempty"`
}

// RoleTypes returns the role type names held by the user.
func (u *User) RoleTypes() []string {
	types := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		types = append(types, r.Type)
	}
	return types
}

// HasRole reports whether the user holds the given role type.
func (u *User) HasRole(roleType string) bool {
	for _, r := range u.Roles {
		if r.Type == roleType {
			return true
		}
	}
	return false
}
