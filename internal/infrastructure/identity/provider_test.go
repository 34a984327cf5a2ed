package identity

import (
	"context"
	"testing"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRoles struct {
	roles   map[string]*entity.Role
	lookups int
}

func (f *fakeRoles) FindByName(_ context.Context, name string) (*entity.Role, error) {
	f.lookups++
	return f.roles[name], nil
}
func (f *fakeRoles) Assign(context.Context, *entity.UserRole) error              { return nil }
func (f *fakeRoles) ListAssignments(context.Context) ([]*entity.UserRole, error) { return nil, nil }
func (f *fakeRoles) RoleOf(context.Context, string) (string, error)              { return "", nil }

func newProvider() (*Provider, *fakeRoles) {
	roles := &fakeRoles{roles: map[string]*entity.Role{
		"technician": {ID: "r-tech", Name: "technician"},
		"manager":    {ID: "r-mgr", Name: "manager"},
	}}
	return NewProvider(roles, bcrypt.MinCost), roles
}

func TestProvider_RoleExists_UsaCache(t *testing.T) {
	p, roles := newProvider()
	ctx := context.Background()

	ok, err := p.RoleExists(ctx, "Technician")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.RoleExists(ctx, "technician")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, roles.lookups)

	ok, err = p.RoleExists(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProvider_CreateAccount_HasheaContrasena(t *testing.T) {
	p, _ := newProvider()
	u := &entity.User{UserName: "jperez"}

	require.NoError(t, p.CreateAccount(context.Background(), u, "Temporal123!"))

	assert.NotEqual(t, "Temporal123!", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Temporal123!")))
}

func TestProvider_CreateAccount_ContrasenaVacia(t *testing.T) {
	p, _ := newProvider()

	err := p.CreateAccount(context.Background(), &entity.User{UserName: "jperez"}, "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProvider_AssignRole(t *testing.T) {
	p, _ := newProvider()
	u := &entity.User{ID: "u1"}

	a, err := p.AssignRole(context.Background(), u, "manager")
	require.NoError(t, err)
	assert.Equal(t, "u1", a.UserID)
	assert.Equal(t, "r-mgr", a.RoleID)
	assert.Equal(t, "manager", a.RoleName)

	_, err = p.AssignRole(context.Background(), u, "admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
