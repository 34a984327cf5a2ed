package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

var _ masterdata.IdentityProvider = (*Provider)(nil)

// Provider proveedor de identidad local: contraseñas bcrypt y roles de la tabla roles.
// No persiste nada; las cuentas y asignaciones se guardan con el commit de la importación.
type Provider struct {
	roles repository.RoleRepository
	cost  int
	now   func() time.Time

	mu    sync.Mutex
	cache map[string]*entity.Role
}

// NewProvider construye el proveedor. cost <= 0 usa bcrypt.DefaultCost.
func NewProvider(roles repository.RoleRepository, cost int) *Provider {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Provider{roles: roles, cost: cost, now: time.Now, cache: make(map[string]*entity.Role)}
}

func (p *Provider) findRole(ctx context.Context, name string) (*entity.Role, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	p.mu.Lock()
	defer p.mu.Unlock()
	if role, ok := p.cache[key]; ok {
		return role, nil
	}
	role, err := p.roles.FindByName(ctx, key)
	if err != nil {
		return nil, err
	}
	if role != nil {
		p.cache[key] = role
	}
	return role, nil
}

// RoleExists indica si el rol está configurado.
func (p *Provider) RoleExists(ctx context.Context, role string) (bool, error) {
	r, err := p.findRole(ctx, role)
	if err != nil {
		return false, fmt.Errorf("buscar rol %q: %w", role, err)
	}
	return r != nil, nil
}

// CreateAccount fija el hash bcrypt de la contraseña inicial en el usuario.
func (p *Provider) CreateAccount(_ context.Context, user *entity.User, password string) error {
	if password == "" {
		return fmt.Errorf("crear cuenta %s: contraseña inicial vacía: %w", user.UserName, domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return fmt.Errorf("crear cuenta %s: %w", user.UserName, err)
	}
	user.PasswordHash = string(hash)
	return nil
}

// AssignRole devuelve la asignación que reemplaza el rol vigente del usuario.
func (p *Provider) AssignRole(ctx context.Context, user *entity.User, role string) (*entity.UserRole, error) {
	r, err := p.findRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("asignar rol %q: %w", role, err)
	}
	if r == nil {
		return nil, fmt.Errorf("asignar rol %q: %w", role, domain.ErrNotFound)
	}
	return &entity.UserRole{UserID: user.ID, RoleID: r.ID, RoleName: r.Name, CreatedAt: p.now()}, nil
}
