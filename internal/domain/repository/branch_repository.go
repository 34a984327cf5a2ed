package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	Update(ctx context.Context, branch *entity.Branch) error
	ListAll(ctx context.Context) ([]*entity.Branch, error)
}

// OperatingHourRepository define el puerto de persistencia para los horarios de sucursal.
type OperatingHourRepository interface {
	Create(ctx context.Context, hour *entity.OperatingHour) error
	Update(ctx context.Context, hour *entity.OperatingHour) error
	ListAll(ctx context.Context) ([]*entity.OperatingHour, error)
}
