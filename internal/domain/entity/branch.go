package entity

import "time"

// Branch representa una sucursal del taller. Name es la llave natural usada por la importación.
type Branch struct {
	ID                   string
	Name                 string
	PhoneNumber          string
	Email                string
	Street               string
	Commune              string
	Province             string
	Description          string
	Latitude             float64
	Longitude            float64
	FormattedAddress     string // dirección normalizada devuelta por el geocodificador
	IsActive             bool
	ArrivalWindowMinutes int
	MaxBookingsPerWindow int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Address arma la dirección que se envía al geocodificador.
func (b *Branch) Address() string {
	return b.Street + ", " + b.Commune + ", " + b.Province
}
