package entity

import (
	"fmt"
	"time"
)

// TimeOfDay hora del día expresada en segundos desde medianoche.
type TimeOfDay int

// NewTimeOfDay construye una hora a partir de sus componentes.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// String formatea como HH:MM (o HH:MM:SS si hay segundos).
func (t TimeOfDay) String() string {
	h, m, s := int(t)/3600, (int(t)%3600)/60, int(t)%60
	if s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// OperatingHour horario de atención de una sucursal para un día de la semana.
// Llave compuesta: (BranchID, DayOfWeek). Si IsOpen, CloseTime debe ser posterior a OpenTime.
type OperatingHour struct {
	ID        string
	BranchID  string
	DayOfWeek time.Weekday
	IsOpen    bool
	OpenTime  *TimeOfDay // nil si está cerrado
	CloseTime *TimeOfDay
	CreatedAt time.Time
	UpdatedAt time.Time
}
