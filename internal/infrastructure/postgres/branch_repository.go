package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL.
type BranchRepo struct {
	db Querier
}

// NewBranchRepository construye el adaptador de persistencia para sucursales.
func NewBranchRepository(db Querier) *BranchRepo {
	return &BranchRepo{db: db}
}

// Create persiste una nueva sucursal.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `
		INSERT INTO branches (id, name, phone_number, email, street, commune, province, description,
			latitude, longitude, formatted_address, is_active, arrival_window_minutes,
			max_bookings_per_window, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.Name, b.PhoneNumber, b.Email, b.Street, b.Commune, b.Province, b.Description,
		b.Latitude, b.Longitude, b.FormattedAddress, b.IsActive, b.ArrivalWindowMinutes,
		b.MaxBookingsPerWindow, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return writeError("insert branch", err)
	}
	return nil
}

// Update actualiza una sucursal existente.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	query := `
		UPDATE branches SET name = $2, phone_number = $3, email = $4, street = $5, commune = $6,
			province = $7, description = $8, latitude = $9, longitude = $10, formatted_address = $11,
			is_active = $12, arrival_window_minutes = $13, max_bookings_per_window = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.Name, b.PhoneNumber, b.Email, b.Street, b.Commune, b.Province, b.Description,
		b.Latitude, b.Longitude, b.FormattedAddress, b.IsActive, b.ArrivalWindowMinutes,
		b.MaxBookingsPerWindow, b.UpdatedAt,
	)
	if err != nil {
		return writeError("update branch", err)
	}
	return nil
}

// ListAll devuelve todas las sucursales.
func (r *BranchRepo) ListAll(ctx context.Context) ([]*entity.Branch, error) {
	query := `
		SELECT id, name, phone_number, email, street, commune, province, description,
			latitude, longitude, formatted_address, is_active, arrival_window_minutes,
			max_bookings_per_window, created_at, updated_at
		FROM branches ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(
			&b.ID, &b.Name, &b.PhoneNumber, &b.Email, &b.Street, &b.Commune, &b.Province, &b.Description,
			&b.Latitude, &b.Longitude, &b.FormattedAddress, &b.IsActive, &b.ArrivalWindowMinutes,
			&b.MaxBookingsPerWindow, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

var _ repository.OperatingHourRepository = (*OperatingHourRepo)(nil)

// OperatingHourRepo horarios de atención por sucursal y día.
type OperatingHourRepo struct {
	db Querier
}

// NewOperatingHourRepository construye el adaptador de persistencia para horarios.
func NewOperatingHourRepository(db Querier) *OperatingHourRepo {
	return &OperatingHourRepo{db: db}
}

// Create persiste el horario de un día.
func (r *OperatingHourRepo) Create(ctx context.Context, h *entity.OperatingHour) error {
	query := `
		INSERT INTO branch_operating_hours (id, branch_id, day_of_week, is_open, open_time, close_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		h.ID, h.BranchID, int16(h.DayOfWeek), h.IsOpen, toPgTime(h.OpenTime), toPgTime(h.CloseTime),
		h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return writeError("insert operating hour", err)
	}
	return nil
}

// Update reemplaza apertura/cierre de un día existente.
func (r *OperatingHourRepo) Update(ctx context.Context, h *entity.OperatingHour) error {
	query := `
		UPDATE branch_operating_hours SET is_open = $2, open_time = $3, close_time = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query, h.ID, h.IsOpen, toPgTime(h.OpenTime), toPgTime(h.CloseTime), h.UpdatedAt)
	if err != nil {
		return writeError("update operating hour", err)
	}
	return nil
}

// ListAll devuelve los horarios de todas las sucursales.
func (r *OperatingHourRepo) ListAll(ctx context.Context) ([]*entity.OperatingHour, error) {
	query := `
		SELECT id, branch_id, day_of_week, is_open, open_time, close_time, created_at, updated_at
		FROM branch_operating_hours ORDER BY branch_id, day_of_week`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list operating hours: %w", err)
	}
	defer rows.Close()

	var list []*entity.OperatingHour
	for rows.Next() {
		var (
			h           entity.OperatingHour
			day         int16
			openAt, closeAt pgtype.Time
		)
		if err := rows.Scan(&h.ID, &h.BranchID, &day, &h.IsOpen, &openAt, &closeAt, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan operating hour: %w", err)
		}
		h.DayOfWeek = time.Weekday(day)
		h.OpenTime = fromPgTime(openAt)
		h.CloseTime = fromPgTime(closeAt)
		list = append(list, &h)
	}
	return list, rows.Err()
}
