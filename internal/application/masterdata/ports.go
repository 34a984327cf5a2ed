package masterdata

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// GeocodeResult coordenadas y dirección normalizada de una dirección postal.
type GeocodeResult struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
}

// Geocoder resuelve una dirección a coordenadas. Devuelve error si no es resoluble.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*GeocodeResult, error)
}

// EmailSender envía correos informativos (bienvenida del personal).
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// IdentityProvider crea cuentas de personal y asigna roles.
// Las cuentas y asignaciones devueltas quedan pendientes hasta el commit del ChangeSet.
type IdentityProvider interface {
	RoleExists(ctx context.Context, role string) (bool, error)
	CreateAccount(ctx context.Context, user *entity.User, password string) error
	AssignRole(ctx context.Context, user *entity.User, role string) (*entity.UserRole, error)
}

// Snapshot estado persistido de todas las entidades maestras, leído de una sola vez.
type Snapshot struct {
	Branches             []*entity.Branch
	OperatingHours       []*entity.OperatingHour
	Users                []*entity.User
	UserRoles            []*entity.UserRole
	Technicians          []*entity.Technician
	Categories           []*entity.ServiceCategory
	Services             []*entity.Service
	BranchServices       []*entity.BranchService
	PartCategories       []*entity.PartCategory
	PartCategoryServices []*entity.PartCategoryService
	Parts                []*entity.Part
}

// ChangeSet mutaciones pendientes de toda la importación. Se aplica en un único commit.
type ChangeSet struct {
	NewBranches             []*entity.Branch
	UpdatedBranches         []*entity.Branch
	NewOperatingHours       []*entity.OperatingHour
	UpdatedOperatingHours   []*entity.OperatingHour
	NewUsers                []*entity.User
	UpdatedUsers            []*entity.User
	RoleAssignments         []*entity.UserRole
	NewTechnicians          []*entity.Technician
	NewCategories           []*entity.ServiceCategory
	UpdatedCategories       []*entity.ServiceCategory
	NewServices             []*entity.Service
	UpdatedServices         []*entity.Service
	NewBranchServices       []*entity.BranchService
	NewPartCategories       []*entity.PartCategory
	UpdatedPartCategories   []*entity.PartCategory
	NewPartCategoryServices []*entity.PartCategoryService
	NewParts                []*entity.Part
	UpdatedParts            []*entity.Part
}

// Store almacén persistente con lectura masiva y commit único.
type Store interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	Commit(ctx context.Context, changes *ChangeSet) error
}

// ImportLock serializa importaciones entre invocaciones. release libera el lock.
type ImportLock interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
