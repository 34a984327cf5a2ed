package masterdata

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria: clona en cada lectura y commit, como lo haría la base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	snap      Snapshot
	loads     int
	commits   int
	last      *ChangeSet
	commitErr error
}

func clone[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, e := range in {
		c := *e
		out = append(out, &c)
	}
	return out
}

func upsertByID[T any](cur, inserted, updated []*T, id func(*T) string) []*T {
	out := clone(cur)
	for _, u := range clone(updated) {
		for i, e := range out {
			if id(e) == id(u) {
				out[i] = u
			}
		}
	}
	return append(out, clone(inserted)...)
}

func (s *fakeStore) LoadSnapshot(_ context.Context) (*Snapshot, error) {
	s.loads++
	return &Snapshot{
		Branches:             clone(s.snap.Branches),
		OperatingHours:       clone(s.snap.OperatingHours),
		Users:                clone(s.snap.Users),
		UserRoles:            clone(s.snap.UserRoles),
		Technicians:          clone(s.snap.Technicians),
		Categories:           clone(s.snap.Categories),
		Services:             clone(s.snap.Services),
		BranchServices:       clone(s.snap.BranchServices),
		PartCategories:       clone(s.snap.PartCategories),
		PartCategoryServices: clone(s.snap.PartCategoryServices),
		Parts:                clone(s.snap.Parts),
	}, nil
}

func (s *fakeStore) Commit(_ context.Context, cs *ChangeSet) error {
	if s.commitErr != nil {
		return s.commitErr
	}
	s.commits++
	s.last = cs
	s.snap.Branches = upsertByID(s.snap.Branches, cs.NewBranches, cs.UpdatedBranches, func(b *entity.Branch) string { return b.ID })
	s.snap.OperatingHours = upsertByID(s.snap.OperatingHours, cs.NewOperatingHours, cs.UpdatedOperatingHours, func(h *entity.OperatingHour) string { return h.ID })
	s.snap.Users = upsertByID(s.snap.Users, cs.NewUsers, cs.UpdatedUsers, func(u *entity.User) string { return u.ID })
	for _, ur := range clone(cs.RoleAssignments) {
		replaced := false
		for i, cur := range s.snap.UserRoles {
			if cur.UserID == ur.UserID {
				s.snap.UserRoles[i], replaced = ur, true
			}
		}
		if !replaced {
			s.snap.UserRoles = append(s.snap.UserRoles, ur)
		}
	}
	s.snap.Technicians = upsertByID(s.snap.Technicians, cs.NewTechnicians, nil, func(t *entity.Technician) string { return t.ID })
	s.snap.Categories = upsertByID(s.snap.Categories, cs.NewCategories, cs.UpdatedCategories, func(c *entity.ServiceCategory) string { return c.ID })
	s.snap.Services = upsertByID(s.snap.Services, cs.NewServices, cs.UpdatedServices, func(sv *entity.Service) string { return sv.ID })
	s.snap.BranchServices = append(s.snap.BranchServices, clone(cs.NewBranchServices)...)
	s.snap.PartCategories = upsertByID(s.snap.PartCategories, cs.NewPartCategories, cs.UpdatedPartCategories, func(pc *entity.PartCategory) string { return pc.ID })
	s.snap.PartCategoryServices = append(s.snap.PartCategoryServices, clone(cs.NewPartCategoryServices)...)
	s.snap.Parts = upsertByID(s.snap.Parts, cs.NewParts, cs.UpdatedParts, func(p *entity.Part) string { return p.ID })
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Colaboradores externos
// ──────────────────────────────────────────────────────────────────────────────

type fakeGeocoder struct {
	fail  map[string]bool
	calls []string
}

func (g *fakeGeocoder) Resolve(_ context.Context, address string) (*GeocodeResult, error) {
	g.calls = append(g.calls, address)
	if g.fail[address] {
		return nil, errors.New("ZERO_RESULTS")
	}
	return &GeocodeResult{Latitude: -33.45, Longitude: -70.66, FormattedAddress: address + ", Chile"}, nil
}

type fakeIdentity struct {
	roles    map[string]bool
	accounts []string
	assigned []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{roles: map[string]bool{entity.RoleTechnician: true, entity.RoleManager: true}}
}

func (p *fakeIdentity) RoleExists(_ context.Context, role string) (bool, error) {
	return p.roles[role], nil
}

func (p *fakeIdentity) CreateAccount(_ context.Context, u *entity.User, password string) error {
	u.PasswordHash = "hash:" + password
	p.accounts = append(p.accounts, u.UserName)
	return nil
}

func (p *fakeIdentity) AssignRole(_ context.Context, u *entity.User, role string) (*entity.UserRole, error) {
	p.assigned = append(p.assigned, u.UserName+":"+role)
	return &entity.UserRole{UserID: u.ID, RoleID: "role-" + role, RoleName: role}, nil
}

type fakeSender struct {
	mu     sync.Mutex
	fail   map[string]bool
	sent   []string
	bodies []string
}

func (s *fakeSender) Send(_ context.Context, to, _, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[to] {
		return errors.New("smtp: 550 mailbox unavailable")
	}
	s.sent = append(s.sent, to)
	s.bodies = append(s.bodies, body)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Libros de prueba
// ──────────────────────────────────────────────────────────────────────────────

type workbookRows map[string][][]string

func buildWorkbook(t *testing.T, data workbookRows) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, tpl := range Templates {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", tpl.Name))
		} else {
			_, err := f.NewSheet(tpl.Name)
			require.NoError(t, err)
		}
		writeRow(t, f, tpl.Name, 1, tpl.Headers)
		for j, row := range data[tpl.Name] {
			writeRow(t, f, tpl.Name, j+2, row)
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func writeRow(t *testing.T, f *excelize.File, sheet string, n int, values []string) {
	t.Helper()
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
}

func weekRows(branch string) [][]string {
	return [][]string{
		{branch, "Monday", "TRUE", "09:00", "18:00"},
		{branch, "Tuesday", "TRUE", "09:00", "18:00"},
		{branch, "Wednesday", "TRUE", "09:00", "18:00"},
		{branch, "Thursday", "TRUE", "09:00", "18:00"},
		{branch, "Friday", "TRUE", "09:00", "18:00"},
		{branch, "Sat", "yes", "9:00 AM", "1:00 PM"},
		{branch, "Sunday", "FALSE", "", ""},
	}
}

// validRows libro completo y consistente para las ocho hojas.
func validRows() workbookRows {
	return workbookRows{
		SheetBranch: {
			{"Centro", "+56 2 2345 6789", "centro@taller.cl", "Av. Libertador 100", "Santiago", "Santiago", "Sucursal principal", "TRUE", "30", "2"},
		},
		SheetOperatingHour: weekRows("Centro"),
		SheetStaff: {
			{"jperez", "jperez@taller.cl", "+56 9 8765 4321", "Juan Pérez", "Technician", "Centro", "TRUE"},
			{"mlopez", "mlopez@taller.cl", "", "María López", "manager", "centro", ""},
		},
		SheetParentCategory: {
			{"Mantención", "Servicios de mantención", "TRUE"},
		},
		SheetServiceCategory: {
			{"Mantención", "Frenos", "Sistema de frenos", "TRUE"},
		},
		SheetService: {
			{"Frenos", "Cambio de pastillas", "Pastillas delanteras", "45000", "1.5", "FALSE", "Centro"},
			{"frenos", "Rectificado de discos", "", "80000", "2", "TRUE", ""},
		},
		SheetPartCategory: {
			{"Pastillas", "Pastillas de freno", "Cambio de pastillas"},
			{"Discos", "Discos de freno", "Rectificado de discos"},
		},
		SheetPart: {
			{"Pastillas", "Pastilla Bosch", "12000.50"},
			{"Discos", "Disco Brembo", "35000"},
		},
	}
}
