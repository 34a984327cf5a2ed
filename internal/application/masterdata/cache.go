package masterdata

import (
	"strconv"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ImportContext cachés de una invocación: llave normalizada -> entidad.
// Se construye desde el Snapshot y las etapas lo mutan a medida que proponen entidades nuevas,
// de modo que lo creado en una etapa queda visible para las siguientes.
type ImportContext struct {
	branches             map[string]*entity.Branch
	operatingHours       map[string]*entity.OperatingHour
	users                map[string]*entity.User
	usersByEmail         map[string]*entity.User
	userRoles            map[string]string // user id -> rol vigente
	technicians          map[string]*entity.Technician
	categories           map[string]*entity.ServiceCategory
	categoriesByName     map[string][]*entity.ServiceCategory
	services             map[string]*entity.Service
	branchServices       map[string]*entity.BranchService
	partCategories       map[string]*entity.PartCategory
	partCategoryServices map[string]*entity.PartCategoryService
	linksByService       map[string][]*entity.PartCategoryService
	parts                map[string]*entity.Part
}

// LoadContext construye las cachés a partir del estado persistido.
func LoadContext(s *Snapshot) *ImportContext {
	c := &ImportContext{
		branches:             make(map[string]*entity.Branch, len(s.Branches)),
		operatingHours:       make(map[string]*entity.OperatingHour, len(s.OperatingHours)),
		users:                make(map[string]*entity.User, len(s.Users)),
		usersByEmail:         make(map[string]*entity.User, len(s.Users)),
		userRoles:            make(map[string]string, len(s.UserRoles)),
		technicians:          make(map[string]*entity.Technician, len(s.Technicians)),
		categories:           make(map[string]*entity.ServiceCategory, len(s.Categories)),
		categoriesByName:     make(map[string][]*entity.ServiceCategory, len(s.Categories)),
		services:             make(map[string]*entity.Service, len(s.Services)),
		branchServices:       make(map[string]*entity.BranchService, len(s.BranchServices)),
		partCategories:       make(map[string]*entity.PartCategory, len(s.PartCategories)),
		partCategoryServices: make(map[string]*entity.PartCategoryService, len(s.PartCategoryServices)),
		linksByService:       make(map[string][]*entity.PartCategoryService),
		parts:                make(map[string]*entity.Part, len(s.Parts)),
	}
	for _, b := range s.Branches {
		c.putBranch(b)
	}
	for _, h := range s.OperatingHours {
		c.putOperatingHour(h)
	}
	for _, u := range s.Users {
		c.putUser(u)
	}
	for _, ur := range s.UserRoles {
		c.userRoles[ur.UserID] = ur.RoleName
	}
	for _, t := range s.Technicians {
		c.technicians[t.UserID] = t
	}
	for _, cat := range s.Categories {
		c.putCategory(cat)
	}
	for _, svc := range s.Services {
		c.putService(svc)
	}
	for _, bs := range s.BranchServices {
		c.branchServices[compositeKey(bs.BranchID, bs.ServiceID)] = bs
	}
	for _, pc := range s.PartCategories {
		c.putPartCategory(pc)
	}
	for _, link := range s.PartCategoryServices {
		c.putPartCategoryService(link)
	}
	for _, p := range s.Parts {
		c.putPart(p)
	}
	return c
}

func hourKey(branchID string, day time.Weekday) string {
	return compositeKey(branchID, strconv.Itoa(int(day)))
}

func (c *ImportContext) putBranch(b *entity.Branch) { c.branches[normalizeKey(b.Name)] = b }

func (c *ImportContext) branchByName(name string) *entity.Branch {
	return c.branches[normalizeKey(name)]
}

func (c *ImportContext) putOperatingHour(h *entity.OperatingHour) {
	c.operatingHours[hourKey(h.BranchID, h.DayOfWeek)] = h
}

func (c *ImportContext) putUser(u *entity.User) {
	c.users[normalizeKey(u.UserName)] = u
	if u.Email != "" {
		c.usersByEmail[normalizeKey(u.Email)] = u
	}
}

// reindexUserEmail actualiza el índice secundario cuando cambia el email de un usuario existente.
func (c *ImportContext) reindexUserEmail(u *entity.User, oldEmail string) {
	if k := normalizeKey(oldEmail); k != "" && c.usersByEmail[k] == u {
		delete(c.usersByEmail, k)
	}
	c.usersByEmail[normalizeKey(u.Email)] = u
}

func (c *ImportContext) putCategory(cat *entity.ServiceCategory) {
	key := categoryKey(cat.Name, cat.ParentID)
	if _, exists := c.categories[key]; !exists {
		name := normalizeKey(cat.Name)
		c.categoriesByName[name] = append(c.categoriesByName[name], cat)
	}
	c.categories[key] = cat
}

// rootCategoryByName busca una categoría padre por nombre.
func (c *ImportContext) rootCategoryByName(name string) *entity.ServiceCategory {
	return c.categories[categoryKey(name, "")]
}

// leafCategoriesByName candidatas para un servicio: primero subcategorías, si no hay, categorías padre.
func (c *ImportContext) leafCategoriesByName(name string) []*entity.ServiceCategory {
	all := c.categoriesByName[normalizeKey(name)]
	var children, roots []*entity.ServiceCategory
	for _, cat := range all {
		if cat.IsRoot() {
			roots = append(roots, cat)
		} else {
			children = append(children, cat)
		}
	}
	if len(children) > 0 {
		return children
	}
	return roots
}

func (c *ImportContext) putService(s *entity.Service) { c.services[normalizeKey(s.Name)] = s }

func (c *ImportContext) serviceByName(name string) *entity.Service {
	return c.services[normalizeKey(name)]
}

func (c *ImportContext) putPartCategory(pc *entity.PartCategory) {
	c.partCategories[normalizeKey(pc.Name)] = pc
}

func (c *ImportContext) partCategoryByName(name string) *entity.PartCategory {
	return c.partCategories[normalizeKey(name)]
}

func (c *ImportContext) putPartCategoryService(link *entity.PartCategoryService) {
	key := compositeKey(link.PartCategoryID, link.ServiceID)
	if _, exists := c.partCategoryServices[key]; exists {
		return
	}
	c.partCategoryServices[key] = link
	c.linksByService[link.ServiceID] = append(c.linksByService[link.ServiceID], link)
}

// linkedPartCategories ids distintos de PartCategory vinculados a un servicio.
func (c *ImportContext) linkedPartCategories(serviceID string) map[string]bool {
	out := make(map[string]bool)
	for _, link := range c.linksByService[serviceID] {
		out[link.PartCategoryID] = true
	}
	return out
}

func (c *ImportContext) putPart(p *entity.Part) { c.parts[normalizeKey(p.Name)] = p }
