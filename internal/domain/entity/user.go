package entity

import "time"

// Roles válidos para User. El rol decide qué transiciones de flujo puede
// disparar el usuario; los invariantes del libro no dependen del rol.
const (
	RoleAdmin     = "admin"
	RoleGerente   = "gerente"   // crea entregas, aprueba requisiciones
	RoleBodeguero = "bodeguero" // opera recepciones y ajustes
)

// ValidRole indica si el rol pertenece al conjunto cerrado.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleGerente || r == RoleBodeguero
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string   // admin, gerente, bodeguero
	Warehouses   []string // bodegas asignadas (informa al guard externo)
	Status       string   // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
