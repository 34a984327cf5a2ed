package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Technician registro de desempeño asociado a un usuario con rol técnico.
// Las métricas inician en cero al crearse.
type Technician struct {
	ID         string
	UserID     string
	Quality    decimal.Decimal
	Speed      decimal.Decimal
	Efficiency decimal.Decimal
	Score      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
