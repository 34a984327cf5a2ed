package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

var _ masterdata.Store = (*MasterDataStore)(nil)

type txRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
	RunReadOnly(ctx context.Context, fn func(repos Repos) error) error
}

// MasterDataStore lectura masiva y commit único del catálogo maestro.
type MasterDataStore struct {
	tx txRunner
}

// NewMasterDataStore construye el store sobre el runner transaccional.
func NewMasterDataStore(tx *TxRunner) *MasterDataStore {
	return &MasterDataStore{tx: tx}
}

// LoadSnapshot lee todas las entidades maestras en una sola transacción de lectura.
func (s *MasterDataStore) LoadSnapshot(ctx context.Context) (*masterdata.Snapshot, error) {
	snap := &masterdata.Snapshot{}
	err := s.tx.RunReadOnly(ctx, func(r Repos) error {
		var err error
		if snap.Branches, err = r.Branches.ListAll(ctx); err != nil {
			return err
		}
		if snap.OperatingHours, err = r.OperatingHours.ListAll(ctx); err != nil {
			return err
		}
		if snap.Users, err = r.Users.ListAll(ctx); err != nil {
			return err
		}
		if snap.UserRoles, err = r.Roles.ListAssignments(ctx); err != nil {
			return err
		}
		if snap.Technicians, err = r.Technicians.ListAll(ctx); err != nil {
			return err
		}
		if snap.Categories, err = r.ServiceCategories.ListAll(ctx); err != nil {
			return err
		}
		if snap.Services, err = r.Services.ListAll(ctx); err != nil {
			return err
		}
		if snap.BranchServices, err = r.Services.ListBranchLinks(ctx); err != nil {
			return err
		}
		if snap.PartCategories, err = r.PartCategories.ListAll(ctx); err != nil {
			return err
		}
		if snap.PartCategoryServices, err = r.PartCategories.ListServiceLinks(ctx); err != nil {
			return err
		}
		snap.Parts, err = r.Parts.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load master data snapshot: %w", err)
	}
	return snap, nil
}

// Commit aplica el ChangeSet completo en una transacción, respetando el orden de llaves foráneas.
// Cualquier error revierte todo.
func (s *MasterDataStore) Commit(ctx context.Context, cs *masterdata.ChangeSet) error {
	return s.tx.Run(ctx, func(r Repos) error {
		steps := []struct {
			name string
			run  func() error
		}{
			{"branches", func() error { return apply(ctx, cs.NewBranches, r.Branches.Create, cs.UpdatedBranches, r.Branches.Update) }},
			{"operating hours", func() error {
				return apply(ctx, cs.NewOperatingHours, r.OperatingHours.Create, cs.UpdatedOperatingHours, r.OperatingHours.Update)
			}},
			{"users", func() error { return apply(ctx, cs.NewUsers, r.Users.Create, cs.UpdatedUsers, r.Users.Update) }},
			{"role assignments", func() error { return each(ctx, cs.RoleAssignments, r.Roles.Assign) }},
			{"technicians", func() error { return each(ctx, cs.NewTechnicians, r.Technicians.Create) }},
			{"service categories", func() error {
				return apply(ctx, rootsFirst(cs.NewCategories), r.ServiceCategories.Create, cs.UpdatedCategories, r.ServiceCategories.Update)
			}},
			{"services", func() error { return apply(ctx, cs.NewServices, r.Services.Create, cs.UpdatedServices, r.Services.Update) }},
			{"branch services", func() error { return each(ctx, cs.NewBranchServices, r.Services.LinkBranch) }},
			{"part categories", func() error {
				return apply(ctx, cs.NewPartCategories, r.PartCategories.Create, cs.UpdatedPartCategories, r.PartCategories.Update)
			}},
			{"part category services", func() error { return each(ctx, cs.NewPartCategoryServices, r.PartCategories.LinkService) }},
			{"parts", func() error { return apply(ctx, cs.NewParts, r.Parts.Create, cs.UpdatedParts, r.Parts.Update) }},
		}
		for _, step := range steps {
			if err := step.run(); err != nil {
				return fmt.Errorf("commit %s: %w", step.name, err)
			}
		}
		return nil
	})
}

func each[T any](ctx context.Context, items []T, fn func(context.Context, T) error) error {
	for _, item := range items {
		if err := fn(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func apply[T any](ctx context.Context, created []T, create func(context.Context, T) error, updated []T, update func(context.Context, T) error) error {
	if err := each(ctx, created, create); err != nil {
		return err
	}
	return each(ctx, updated, update)
}

// rootsFirst ordena las categorías nuevas para que un padre se inserte antes que sus hijas.
func rootsFirst(cats []*entity.ServiceCategory) []*entity.ServiceCategory {
	out := append([]*entity.ServiceCategory(nil), cats...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsRoot() && !out[j].IsRoot() })
	return out
}
