package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.ServiceCategoryRepository = (*ServiceCategoryRepo)(nil)

// ServiceCategoryRepo categorías de servicio; parent_id NULL identifica a las categorías padre.
type ServiceCategoryRepo struct {
	db Querier
}

// NewServiceCategoryRepository construye el adaptador de persistencia para categorías de servicio.
func NewServiceCategoryRepository(db Querier) *ServiceCategoryRepo {
	return &ServiceCategoryRepo{db: db}
}

// Create persiste una nueva categoría.
func (r *ServiceCategoryRepo) Create(ctx context.Context, c *entity.ServiceCategory) error {
	query := `
		INSERT INTO service_categories (id, parent_id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		c.ID, nullString(c.ParentID), c.Name, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return writeError("insert service category", err)
	}
	return nil
}

// Update actualiza descripción y estado de una categoría existente.
func (r *ServiceCategoryRepo) Update(ctx context.Context, c *entity.ServiceCategory) error {
	query := `
		UPDATE service_categories SET name = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Description, c.IsActive, c.UpdatedAt); err != nil {
		return writeError("update service category", err)
	}
	return nil
}

// ListAll devuelve padres primero para que los hijos encuentren su padre al cargarse.
func (r *ServiceCategoryRepo) ListAll(ctx context.Context) ([]*entity.ServiceCategory, error) {
	query := `
		SELECT id, parent_id, name, description, is_active, created_at, updated_at
		FROM service_categories ORDER BY parent_id NULLS FIRST, name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list service categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.ServiceCategory
	for rows.Next() {
		var (
			c        entity.ServiceCategory
			parentID *string
		)
		if err := rows.Scan(&c.ID, &parentID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service category: %w", err)
		}
		c.ParentID = derefString(parentID)
		list = append(list, &c)
	}
	return list, rows.Err()
}
