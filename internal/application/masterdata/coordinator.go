package masterdata

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// TransactionCoordinator retiene todas las mutaciones propuestas hasta el final de la importación.
// Nada se escribe a mitad de la corrida: Commit se invoca una sola vez y solo si no hubo errores.
type TransactionCoordinator struct {
	changes ChangeSet
	staged  map[string]bool // kind|id ya incluido en el ChangeSet
}

// NewTransactionCoordinator construye un coordinador vacío.
func NewTransactionCoordinator() *TransactionCoordinator {
	return &TransactionCoordinator{staged: make(map[string]bool)}
}

// stageOnce agrega e a list una sola vez por (kind, id). Una entidad insertada en esta corrida
// que luego se actualiza sigue siendo solo una inserción.
func stageOnce[T any](t *TransactionCoordinator, kind, id string, list *[]*T, e *T) {
	key := kind + "|" + id
	if t.staged[key] {
		return
	}
	t.staged[key] = true
	*list = append(*list, e)
}

func (t *TransactionCoordinator) insertBranch(b *entity.Branch) {
	stageOnce(t, "branch", b.ID, &t.changes.NewBranches, b)
}

func (t *TransactionCoordinator) updateBranch(b *entity.Branch) {
	stageOnce(t, "branch", b.ID, &t.changes.UpdatedBranches, b)
}

func (t *TransactionCoordinator) insertOperatingHour(h *entity.OperatingHour) {
	stageOnce(t, "hour", h.ID, &t.changes.NewOperatingHours, h)
}

func (t *TransactionCoordinator) updateOperatingHour(h *entity.OperatingHour) {
	stageOnce(t, "hour", h.ID, &t.changes.UpdatedOperatingHours, h)
}

func (t *TransactionCoordinator) insertUser(u *entity.User) {
	stageOnce(t, "user", u.ID, &t.changes.NewUsers, u)
}

func (t *TransactionCoordinator) updateUser(u *entity.User) {
	stageOnce(t, "user", u.ID, &t.changes.UpdatedUsers, u)
}

func (t *TransactionCoordinator) assignRole(ur *entity.UserRole) {
	stageOnce(t, "user_role", ur.UserID, &t.changes.RoleAssignments, ur)
}

func (t *TransactionCoordinator) insertTechnician(tech *entity.Technician) {
	stageOnce(t, "technician", tech.ID, &t.changes.NewTechnicians, tech)
}

func (t *TransactionCoordinator) insertCategory(c *entity.ServiceCategory) {
	stageOnce(t, "category", c.ID, &t.changes.NewCategories, c)
}

func (t *TransactionCoordinator) updateCategory(c *entity.ServiceCategory) {
	stageOnce(t, "category", c.ID, &t.changes.UpdatedCategories, c)
}

func (t *TransactionCoordinator) insertService(s *entity.Service) {
	stageOnce(t, "service", s.ID, &t.changes.NewServices, s)
}

func (t *TransactionCoordinator) updateService(s *entity.Service) {
	stageOnce(t, "service", s.ID, &t.changes.UpdatedServices, s)
}

func (t *TransactionCoordinator) linkBranchService(bs *entity.BranchService) {
	stageOnce(t, "branch_service", bs.BranchID+"|"+bs.ServiceID, &t.changes.NewBranchServices, bs)
}

func (t *TransactionCoordinator) insertPartCategory(pc *entity.PartCategory) {
	stageOnce(t, "part_category", pc.ID, &t.changes.NewPartCategories, pc)
}

func (t *TransactionCoordinator) updatePartCategory(pc *entity.PartCategory) {
	stageOnce(t, "part_category", pc.ID, &t.changes.UpdatedPartCategories, pc)
}

func (t *TransactionCoordinator) linkPartCategoryService(link *entity.PartCategoryService) {
	stageOnce(t, "part_category_service", link.PartCategoryID+"|"+link.ServiceID, &t.changes.NewPartCategoryServices, link)
}

func (t *TransactionCoordinator) insertPart(p *entity.Part) {
	stageOnce(t, "part", p.ID, &t.changes.NewParts, p)
}

func (t *TransactionCoordinator) updatePart(p *entity.Part) {
	stageOnce(t, "part", p.ID, &t.changes.UpdatedParts, p)
}

// Commit aplica el ChangeSet en una única transacción del Store.
func (t *TransactionCoordinator) Commit(ctx context.Context, store Store) error {
	return store.Commit(ctx, &t.changes)
}

// Summary cuenta creaciones y actualizaciones por tipo de entidad.
func (t *TransactionCoordinator) Summary() *dto.ImportSummary {
	c := &t.changes
	created := map[string]int{}
	updated := map[string]int{}
	add := func(m map[string]int, key string, n int) {
		if n > 0 {
			m[key] += n
		}
	}
	add(created, "branches", len(c.NewBranches))
	add(updated, "branches", len(c.UpdatedBranches))
	add(created, "operating_hours", len(c.NewOperatingHours))
	add(updated, "operating_hours", len(c.UpdatedOperatingHours))
	add(created, "staff", len(c.NewUsers))
	add(updated, "staff", len(c.UpdatedUsers))
	add(created, "technicians", len(c.NewTechnicians))
	add(created, "role_assignments", len(c.RoleAssignments))
	for _, cat := range c.NewCategories {
		add(created, categoryKind(cat), 1)
	}
	for _, cat := range c.UpdatedCategories {
		add(updated, categoryKind(cat), 1)
	}
	add(created, "services", len(c.NewServices))
	add(updated, "services", len(c.UpdatedServices))
	add(created, "branch_services", len(c.NewBranchServices))
	add(created, "part_categories", len(c.NewPartCategories))
	add(updated, "part_categories", len(c.UpdatedPartCategories))
	add(created, "part_category_services", len(c.NewPartCategoryServices))
	add(created, "parts", len(c.NewParts))
	add(updated, "parts", len(c.UpdatedParts))
	return &dto.ImportSummary{Created: created, Updated: updated}
}

func categoryKind(c *entity.ServiceCategory) string {
	if c.IsRoot() {
		return "parent_categories"
	}
	return "service_categories"
}
