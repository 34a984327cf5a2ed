package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Branches          repository.BranchRepository
	OperatingHours    repository.OperatingHourRepository
	Users             repository.UserRepository
	Roles             repository.RoleRepository
	Technicians       repository.TechnicianRepository
	ServiceCategories repository.ServiceCategoryRepository
	Services          repository.ServiceRepository
	PartCategories    repository.PartCategoryRepository
	Parts             repository.PartRepository
}

// NewRepos construye el juego completo de repositorios sobre un Querier (pool o tx).
func NewRepos(db Querier) Repos {
	return Repos{
		Branches:          NewBranchRepository(db),
		OperatingHours:    NewOperatingHourRepository(db),
		Users:             NewUserRepository(db),
		Roles:             NewRoleRepository(db),
		Technicians:       NewTechnicianRepository(db),
		ServiceCategories: NewServiceCategoryRepository(db),
		Services:          NewServiceRepository(db),
		PartCategories:    NewPartCategoryRepository(db),
		Parts:             NewPartRepository(db),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos Repos) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// RunReadOnly igual que Run pero con una instantánea consistente de solo lectura.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(repos Repos) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(repos Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
