package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collaborator es un socio del propietario con una participación fija sobre la
// caja. Part (porcentaje, 0.01..99.99) es inmutable después de la creación; su
// wallet nunca se persiste como fuente de verdad, se calcula en cada lectura.
type Collaborator struct {
	ID        string
	UserID    string
	Name      string
	Phone     string
	Part      decimal.Decimal
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
