package entity

import "time"

// Roles válidos para User. Solo Technician y Manager se asignan desde la planilla de personal.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleTechnician = "technician"
)

// User representa un miembro del personal con cuenta en el sistema.
// UserName es la llave natural; Email también es único.
type User struct {
	ID           string
	UserName     string
	Email        string
	PhoneNumber  string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	BranchID     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role rol configurado en el proveedor de identidad.
type Role struct {
	ID   string
	Name string
}

// UserRole asignación de un rol a un usuario (un rol vigente por usuario).
type UserRole struct {
	UserID    string
	RoleID    string
	RoleName  string
	CreatedAt time.Time
}
