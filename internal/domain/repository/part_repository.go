package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PartCategoryRepository define el puerto de persistencia para PartCategory y sus vínculos con servicios.
type PartCategoryRepository interface {
	Create(ctx context.Context, category *entity.PartCategory) error
	Update(ctx context.Context, category *entity.PartCategory) error
	ListAll(ctx context.Context) ([]*entity.PartCategory, error)
	LinkService(ctx context.Context, link *entity.PartCategoryService) error
	ListServiceLinks(ctx context.Context) ([]*entity.PartCategoryService, error)
}

// PartRepository define el puerto de persistencia para Part.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	Update(ctx context.Context, part *entity.Part) error
	ListAll(ctx context.Context) ([]*entity.Part, error)
}
