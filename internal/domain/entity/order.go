package entity

import "time"

// Order representa una orden de un cliente. Folio es único en todo el sistema.
type Order struct {
	ID         string
	CustomerID string
	Folio      string
	CreatedAt  time.Time
}
