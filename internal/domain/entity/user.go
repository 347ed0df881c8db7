package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleTecnico = "tecnico"
)

// User representa un perfil del sistema. Es suscriptor elegible del digest
// de alertas cuando Status es "active" y ReceiveAlerts es true.
type User struct {
	ID            string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Name          string
	Role          string // admin, tecnico
	Status        string // active, inactive, suspended
	ReceiveAlerts bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
