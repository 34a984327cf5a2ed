package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	ListAll(ctx context.Context) ([]*entity.User, error)
	// FindByUserName usado por el login de administradores.
	FindByUserName(ctx context.Context, userName string) (*entity.User, error)
}

// RoleRepository roles configurados y su asignación a usuarios.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	// Assign reemplaza el rol vigente del usuario.
	Assign(ctx context.Context, assignment *entity.UserRole) error
	ListAssignments(ctx context.Context) ([]*entity.UserRole, error)
	// RoleOf devuelve el nombre del rol vigente del usuario ("" si no tiene).
	RoleOf(ctx context.Context, userID string) (string, error)
}

// TechnicianRepository define el puerto de persistencia para Technician.
type TechnicianRepository interface {
	Create(ctx context.Context, technician *entity.Technician) error
	ListAll(ctx context.Context) ([]*entity.Technician, error)
}
