package entity

import "time"

// ServiceCategory categoría de servicios (jerárquica de un nivel).
// Las categorías padre tienen ParentID vacío; la llave natural es Name + ParentID.
type ServiceCategory struct {
	ID          string
	ParentID    string // vacío si es raíz
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot indica si la categoría es de primer nivel.
func (c *ServiceCategory) IsRoot() bool {
	return c.ParentID == ""
}
