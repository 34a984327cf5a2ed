package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, user_name, email, phone_number, full_name, password_hash, branch_id, is_active, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.UserName, u.Email, u.PhoneNumber, u.FullName, u.PasswordHash, nullString(u.BranchID),
		u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update actualiza datos de contacto y sucursal. El hash de contraseña no se toca.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET email = $2, phone_number = $3, full_name = $4, branch_id = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Email, u.PhoneNumber, u.FullName, nullString(u.BranchID), u.IsActive, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListAll devuelve todos los usuarios.
func (r *UserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// FindByUserName busca sin distinguir mayúsculas. Devuelve nil, nil si no existe.
func (r *UserRepo) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(user_name) = lower($1)`, userName)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u        entity.User
		branchID *string
	)
	err := row.Scan(
		&u.ID, &u.UserName, &u.Email, &u.PhoneNumber, &u.FullName, &u.PasswordHash, &branchID,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.BranchID = derefString(branchID)
	return &u, nil
}

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo roles y asignaciones (tabla user_roles, un rol vigente por usuario).
type RoleRepo struct {
	db Querier
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(db Querier) *RoleRepo {
	return &RoleRepo{db: db}
}

// FindByName devuelve nil, nil si el rol no está configurado.
func (r *RoleRepo) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.db.QueryRow(ctx, `SELECT id, name FROM roles WHERE lower(name) = lower($1)`, name).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &role, nil
}

// Assign reemplaza el rol vigente del usuario.
func (r *RoleRepo) Assign(ctx context.Context, a *entity.UserRole) error {
	query := `
		INSERT INTO user_roles (user_id, role_id, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET role_id = EXCLUDED.role_id, created_at = EXCLUDED.created_at`
	if _, err := r.db.Exec(ctx, query, a.UserID, a.RoleID, a.CreatedAt); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// ListAssignments devuelve todas las asignaciones con el nombre del rol.
func (r *RoleRepo) ListAssignments(ctx context.Context) ([]*entity.UserRole, error) {
	query := `
		SELECT ur.user_id, ur.role_id, r.name, ur.created_at
		FROM user_roles ur JOIN roles r ON r.id = ur.role_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list role assignments: %w", err)
	}
	defer rows.Close()

	var list []*entity.UserRole
	for rows.Next() {
		var a entity.UserRole
		if err := rows.Scan(&a.UserID, &a.RoleID, &a.RoleName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// RoleOf devuelve "" si el usuario no tiene rol asignado.
func (r *RoleRepo) RoleOf(ctx context.Context, userID string) (string, error) {
	var name string
	err := r.db.QueryRow(ctx,
		`SELECT r.name FROM user_roles ur JOIN roles r ON r.id = ur.role_id WHERE ur.user_id = $1`, userID,
	).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("role of user: %w", err)
	}
	return name, nil
}

var _ repository.TechnicianRepository = (*TechnicianRepo)(nil)

// TechnicianRepo registros de desempeño de técnicos.
type TechnicianRepo struct {
	db Querier
}

// NewTechnicianRepository construye el adaptador de persistencia para técnicos.
func NewTechnicianRepository(db Querier) *TechnicianRepo {
	return &TechnicianRepo{db: db}
}

// Create persiste el registro de un técnico.
func (r *TechnicianRepo) Create(ctx context.Context, t *entity.Technician) error {
	query := `
		INSERT INTO technicians (id, user_id, quality, speed, efficiency, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		t.ID, t.UserID, t.Quality, t.Speed, t.Efficiency, t.Score, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return writeError("insert technician", err)
	}
	return nil
}

// ListAll devuelve todos los técnicos.
func (r *TechnicianRepo) ListAll(ctx context.Context) ([]*entity.Technician, error) {
	query := `
		SELECT id, user_id, quality, speed, efficiency, score, created_at, updated_at
		FROM technicians`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	defer rows.Close()

	var list []*entity.Technician
	for rows.Next() {
		var t entity.Technician
		if err := rows.Scan(&t.ID, &t.UserID, &t.Quality, &t.Speed, &t.Efficiency, &t.Score, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan technician: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
