package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ServiceRepository define el puerto de persistencia para Service y su vínculo con sucursales.
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	Update(ctx context.Context, service *entity.Service) error
	ListAll(ctx context.Context) ([]*entity.Service, error)
	LinkBranch(ctx context.Context, link *entity.BranchService) error
	ListBranchLinks(ctx context.Context) ([]*entity.BranchService, error)
}
