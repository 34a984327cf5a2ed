package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartCategory agrupa repuestos y se vincula a servicios mediante PartCategoryService.
type PartCategory struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PartCategoryService vínculo entre una categoría de repuestos y un servicio.
type PartCategoryService struct {
	PartCategoryID string
	ServiceID      string
	CreatedAt      time.Time
}

// Part repuesto con precio de venta.
type Part struct {
	ID             string
	PartCategoryID string
	Name           string
	Price          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
