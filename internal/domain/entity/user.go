package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleOperario   = "operario"
	RoleSupervisor = "supervisor"
)

// User representa un operador del dispositivo de escaneo.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operario, supervisor
	WarehouseID  string // bodega asignada al operador
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
