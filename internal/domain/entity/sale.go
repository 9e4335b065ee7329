package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale línea de venta de una remisión. Inmutable una vez creada.
type Sale struct {
	ID          string
	RemissionID string
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	CreatedAt   time.Time
}

// Total calcula subtotal + impuestos. No se almacena en BD para garantizar integridad de datos.
func (s Sale) Total() decimal.Decimal {
	return s.Subtotal.Add(s.Tax)
}
