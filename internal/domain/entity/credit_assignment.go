package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditAssignmentReasonMaxLen longitud máxima del motivo (columna VARCHAR(100)).
const CreditAssignmentReasonMaxLen = 100

// CreditAssignment ajuste a favor del cliente (devolución, descuento) sobre una remisión.
// Amount siempre es estrictamente positivo.
type CreditAssignment struct {
	ID          string
	RemissionID string
	Amount      decimal.Decimal
	Reason      string
	CreatedAt   time.Time
}
