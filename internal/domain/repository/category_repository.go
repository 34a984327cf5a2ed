package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ServiceCategoryRepository define el puerto de persistencia para categorías de servicio (padre e hijas).
type ServiceCategoryRepository interface {
	Create(ctx context.Context, category *entity.ServiceCategory) error
	Update(ctx context.Context, category *entity.ServiceCategory) error
	ListAll(ctx context.Context) ([]*entity.ServiceCategory, error)
}
