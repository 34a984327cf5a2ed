package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.PartCategoryRepository = (*PartCategoryRepo)(nil)

// PartCategoryRepo categorías de repuestos y su vínculo con servicios.
type PartCategoryRepo struct {
	db Querier
}

// NewPartCategoryRepository construye el adaptador de persistencia para categorías de repuestos.
func NewPartCategoryRepository(db Querier) *PartCategoryRepo {
	return &PartCategoryRepo{db: db}
}

// Create persiste una nueva categoría de repuestos.
func (r *PartCategoryRepo) Create(ctx context.Context, c *entity.PartCategory) error {
	query := `
		INSERT INTO part_categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt); err != nil {
		return writeError("insert part category", err)
	}
	return nil
}

// Update actualiza una categoría de repuestos.
func (r *PartCategoryRepo) Update(ctx context.Context, c *entity.PartCategory) error {
	query := `UPDATE part_categories SET name = $2, description = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Description, c.UpdatedAt); err != nil {
		return writeError("update part category", err)
	}
	return nil
}

// ListAll devuelve todas las categorías de repuestos.
func (r *PartCategoryRepo) ListAll(ctx context.Context) ([]*entity.PartCategory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM part_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list part categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.PartCategory
	for rows.Next() {
		var c entity.PartCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// LinkService vincula la categoría a un servicio. Idempotente.
func (r *PartCategoryRepo) LinkService(ctx context.Context, link *entity.PartCategoryService) error {
	query := `
		INSERT INTO part_category_services (part_category_id, service_id, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (part_category_id, service_id) DO NOTHING`
	if _, err := r.db.Exec(ctx, query, link.PartCategoryID, link.ServiceID, link.CreatedAt); err != nil {
		return fmt.Errorf("link part category service: %w", err)
	}
	return nil
}

// ListServiceLinks devuelve todos los vínculos categoría de repuestos-servicio.
func (r *PartCategoryRepo) ListServiceLinks(ctx context.Context) ([]*entity.PartCategoryService, error) {
	rows, err := r.db.Query(ctx, `SELECT part_category_id, service_id, created_at FROM part_category_services`)
	if err != nil {
		return nil, fmt.Errorf("list part category services: %w", err)
	}
	defer rows.Close()

	var list []*entity.PartCategoryService
	for rows.Next() {
		var l entity.PartCategoryService
		if err := rows.Scan(&l.PartCategoryID, &l.ServiceID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan part category service: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del puerto PartRepository sobre PostgreSQL.
type PartRepo struct {
	db Querier
}

// NewPartRepository construye el adaptador de persistencia para repuestos.
func NewPartRepository(db Querier) *PartRepo {
	return &PartRepo{db: db}
}

// Create persiste un nuevo repuesto.
func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	query := `
		INSERT INTO parts (id, part_category_id, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.Exec(ctx, query, p.ID, p.PartCategoryID, p.Name, p.Price, p.CreatedAt, p.UpdatedAt); err != nil {
		return writeError("insert part", err)
	}
	return nil
}

// Update actualiza un repuesto existente.
func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	query := `UPDATE parts SET part_category_id = $2, name = $3, price = $4, updated_at = $5 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, p.ID, p.PartCategoryID, p.Name, p.Price, p.UpdatedAt); err != nil {
		return writeError("update part", err)
	}
	return nil
}

// ListAll devuelve todos los repuestos.
func (r *PartRepo) ListAll(ctx context.Context) ([]*entity.Part, error) {
	rows, err := r.db.Query(ctx, `SELECT id, part_category_id, name, price, created_at, updated_at FROM parts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.PartCategoryID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
