package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callLog registra el orden de escrituras que recibe cada repositorio falso.
type callLog struct {
	calls  []string
	failOn string
}

func (l *callLog) record(call string) error {
	l.calls = append(l.calls, call)
	if call == l.failOn {
		return errors.New("boom")
	}
	return nil
}

type logBranches struct{ log *callLog }

func (r logBranches) Create(_ context.Context, b *entity.Branch) error { return r.log.record("branch+" + b.Name) }
func (r logBranches) Update(_ context.Context, b *entity.Branch) error { return r.log.record("branch~" + b.Name) }
func (r logBranches) ListAll(context.Context) ([]*entity.Branch, error) {
	return []*entity.Branch{{ID: "b1", Name: "Centro"}}, nil
}

type logHours struct{ log *callLog }

func (r logHours) Create(context.Context, *entity.OperatingHour) error      { return r.log.record("hour+") }
func (r logHours) Update(context.Context, *entity.OperatingHour) error      { return r.log.record("hour~") }
func (r logHours) ListAll(context.Context) ([]*entity.OperatingHour, error) { return nil, nil }

type logUsers struct{ log *callLog }

func (r logUsers) Create(_ context.Context, u *entity.User) error  { return r.log.record("user+" + u.UserName) }
func (r logUsers) Update(_ context.Context, u *entity.User) error  { return r.log.record("user~" + u.UserName) }
func (r logUsers) ListAll(context.Context) ([]*entity.User, error) { return nil, nil }
func (r logUsers) FindByUserName(context.Context, string) (*entity.User, error) {
	return nil, nil
}

type logRoles struct{ log *callLog }

func (r logRoles) FindByName(context.Context, string) (*entity.Role, error) { return nil, nil }
func (r logRoles) Assign(_ context.Context, a *entity.UserRole) error {
	return r.log.record("role=" + a.RoleName)
}
func (r logRoles) ListAssignments(context.Context) ([]*entity.UserRole, error) { return nil, nil }
func (r logRoles) RoleOf(context.Context, string) (string, error)              { return "", nil }

type logTechnicians struct{ log *callLog }

func (r logTechnicians) Create(context.Context, *entity.Technician) error { return r.log.record("technician+") }
func (r logTechnicians) ListAll(context.Context) ([]*entity.Technician, error) {
	return nil, nil
}

type logCategories struct{ log *callLog }

func (r logCategories) Create(_ context.Context, c *entity.ServiceCategory) error {
	return r.log.record("category+" + c.Name)
}
func (r logCategories) Update(_ context.Context, c *entity.ServiceCategory) error {
	return r.log.record("category~" + c.Name)
}
func (r logCategories) ListAll(context.Context) ([]*entity.ServiceCategory, error) {
	return nil, nil
}

type logServices struct{ log *callLog }

func (r logServices) Create(_ context.Context, s *entity.Service) error  { return r.log.record("service+" + s.Name) }
func (r logServices) Update(_ context.Context, s *entity.Service) error  { return r.log.record("service~" + s.Name) }
func (r logServices) ListAll(context.Context) ([]*entity.Service, error) { return nil, nil }
func (r logServices) LinkBranch(context.Context, *entity.BranchService) error {
	return r.log.record("branch-service")
}
func (r logServices) ListBranchLinks(context.Context) ([]*entity.BranchService, error) {
	return nil, nil
}

type logPartCategories struct{ log *callLog }

func (r logPartCategories) Create(_ context.Context, c *entity.PartCategory) error {
	return r.log.record("part-category+" + c.Name)
}
func (r logPartCategories) Update(_ context.Context, c *entity.PartCategory) error {
	return r.log.record("part-category~" + c.Name)
}
func (r logPartCategories) ListAll(context.Context) ([]*entity.PartCategory, error) {
	return nil, nil
}
func (r logPartCategories) LinkService(context.Context, *entity.PartCategoryService) error {
	return r.log.record("part-category-service")
}
func (r logPartCategories) ListServiceLinks(context.Context) ([]*entity.PartCategoryService, error) {
	return nil, nil
}

type logParts struct{ log *callLog }

func (r logParts) Create(_ context.Context, p *entity.Part) error  { return r.log.record("part+" + p.Name) }
func (r logParts) Update(_ context.Context, p *entity.Part) error  { return r.log.record("part~" + p.Name) }
func (r logParts) ListAll(context.Context) ([]*entity.Part, error) { return nil, nil }

// fakeRunner simula la transacción: committed solo queda en true si fn no falla.
type fakeRunner struct {
	repos     Repos
	committed bool
	readOnly  bool
}

func (f *fakeRunner) Run(_ context.Context, fn func(Repos) error) error {
	if err := fn(f.repos); err != nil {
		return err
	}
	f.committed = true
	return nil
}

func (f *fakeRunner) RunReadOnly(_ context.Context, fn func(Repos) error) error {
	f.readOnly = true
	return fn(f.repos)
}

func newLoggedStore() (*MasterDataStore, *fakeRunner, *callLog) {
	log := &callLog{}
	runner := &fakeRunner{repos: Repos{
		Branches:          logBranches{log},
		OperatingHours:    logHours{log},
		Users:             logUsers{log},
		Roles:             logRoles{log},
		Technicians:       logTechnicians{log},
		ServiceCategories: logCategories{log},
		Services:          logServices{log},
		PartCategories:    logPartCategories{log},
		Parts:             logParts{log},
	}}
	return &MasterDataStore{tx: runner}, runner, log
}

func fullChangeSet() *masterdata.ChangeSet {
	return &masterdata.ChangeSet{
		NewBranches:             []*entity.Branch{{Name: "Centro"}},
		UpdatedBranches:         []*entity.Branch{{Name: "Norte"}},
		NewOperatingHours:       []*entity.OperatingHour{{}},
		NewUsers:                []*entity.User{{UserName: "jperez"}},
		RoleAssignments:         []*entity.UserRole{{RoleName: "technician"}},
		NewTechnicians:          []*entity.Technician{{}},
		NewCategories:           []*entity.ServiceCategory{{Name: "Frenos", ParentID: "p1"}, {Name: "Mantención"}},
		NewServices:             []*entity.Service{{Name: "Cambio de pastillas"}},
		NewBranchServices:       []*entity.BranchService{{}},
		NewPartCategories:       []*entity.PartCategory{{Name: "Pastillas"}},
		NewPartCategoryServices: []*entity.PartCategoryService{{}},
		NewParts:                []*entity.Part{{Name: "Pastilla Bosch"}},
		UpdatedParts:            []*entity.Part{{Name: "Disco Brembo"}},
	}
}

func TestMasterDataStore_Commit_OrdenDeLlavesForaneas(t *testing.T) {
	store, runner, log := newLoggedStore()

	require.NoError(t, store.Commit(context.Background(), fullChangeSet()))

	assert.True(t, runner.committed)
	assert.Equal(t, []string{
		"branch+Centro", "branch~Norte",
		"hour+",
		"user+jperez",
		"role=technician",
		"technician+",
		"category+Mantención", "category+Frenos",
		"service+Cambio de pastillas",
		"branch-service",
		"part-category+Pastillas",
		"part-category-service",
		"part+Pastilla Bosch", "part~Disco Brembo",
	}, log.calls)
}

func TestMasterDataStore_Commit_ErrorRevierteTodo(t *testing.T) {
	store, runner, log := newLoggedStore()
	log.failOn = "service+Cambio de pastillas"

	err := store.Commit(context.Background(), fullChangeSet())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit services")
	assert.False(t, runner.committed)
	assert.NotContains(t, log.calls, "part+Pastilla Bosch")
}

func TestMasterDataStore_LoadSnapshot(t *testing.T) {
	store, runner, _ := newLoggedStore()

	snap, err := store.LoadSnapshot(context.Background())

	require.NoError(t, err)
	assert.True(t, runner.readOnly)
	require.Len(t, snap.Branches, 1)
	assert.Equal(t, "Centro", snap.Branches[0].Name)
}

func TestRootsFirst_NoModificaOriginal(t *testing.T) {
	cats := []*entity.ServiceCategory{{Name: "Frenos", ParentID: "p1"}, {Name: "Mantención"}}

	out := rootsFirst(cats)

	assert.Equal(t, "Mantención", out[0].Name)
	assert.Equal(t, "Frenos", cats[0].Name)
}
