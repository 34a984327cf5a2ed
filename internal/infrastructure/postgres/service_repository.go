package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo servicios del taller y su disponibilidad por sucursal.
type ServiceRepo struct {
	db Querier
}

// NewServiceRepository construye el adaptador de persistencia para servicios.
func NewServiceRepository(db Querier) *ServiceRepo {
	return &ServiceRepo{db: db}
}

// Create persiste un nuevo servicio.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (id, category_id, name, description, price, estimated_duration, is_advanced, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.CategoryID, s.Name, s.Description, s.Price, s.EstimatedDuration, s.IsAdvanced,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return writeError("insert service", err)
	}
	return nil
}

// Update actualiza un servicio existente.
func (r *ServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services SET category_id = $2, name = $3, description = $4, price = $5,
			estimated_duration = $6, is_advanced = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.CategoryID, s.Name, s.Description, s.Price, s.EstimatedDuration, s.IsAdvanced, s.UpdatedAt,
	)
	if err != nil {
		return writeError("update service", err)
	}
	return nil
}

// ListAll devuelve todos los servicios.
func (r *ServiceRepo) ListAll(ctx context.Context) ([]*entity.Service, error) {
	query := `
		SELECT id, category_id, name, description, price, estimated_duration, is_advanced, created_at, updated_at
		FROM services ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(
			&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.Price, &s.EstimatedDuration, &s.IsAdvanced,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// LinkBranch ofrece el servicio en una sucursal. Idempotente.
func (r *ServiceRepo) LinkBranch(ctx context.Context, link *entity.BranchService) error {
	query := `
		INSERT INTO branch_services (branch_id, service_id, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (branch_id, service_id) DO NOTHING`
	if _, err := r.db.Exec(ctx, query, link.BranchID, link.ServiceID, link.CreatedAt); err != nil {
		return fmt.Errorf("link branch service: %w", err)
	}
	return nil
}

// ListBranchLinks devuelve todos los vínculos sucursal-servicio.
func (r *ServiceRepo) ListBranchLinks(ctx context.Context) ([]*entity.BranchService, error) {
	rows, err := r.db.Query(ctx, `SELECT branch_id, service_id, created_at FROM branch_services`)
	if err != nil {
		return nil, fmt.Errorf("list branch services: %w", err)
	}
	defer rows.Close()

	var list []*entity.BranchService
	for rows.Next() {
		var l entity.BranchService
		if err := rows.Scan(&l.BranchID, &l.ServiceID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan branch service: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
