package entity

import "time"

// RemissionStatus estado de la remisión. Solo avanza de open a closed.
type RemissionStatus string

const (
	RemissionOpen   RemissionStatus = "open"
	RemissionClosed RemissionStatus = "closed"
)

// IsValid indica si el estado pertenece al catálogo.
func (s RemissionStatus) IsValid() bool {
	return s == RemissionOpen || s == RemissionClosed
}

// IsFinal indica que la remisión ya no admite cambios (ventas, créditos ni estado).
func (s RemissionStatus) IsFinal() bool {
	return s == RemissionClosed
}

// Remission documento de entrega/facturación que agrupa ventas y créditos de una orden.
type Remission struct {
	ID        string
	OrderID   string
	Folio     string
	Status    RemissionStatus
	CreatedAt time.Time

	// Solo lectura: se llenan con JOIN al consultar (no se persisten en remissions).
	OrderFolio   string
	CustomerID   string
	CustomerName string
}
