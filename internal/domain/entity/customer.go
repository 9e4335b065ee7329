package entity

import "time"

// Customer representa un cliente que coloca órdenes.
type Customer struct {
	ID        string
	Name      string
	Email     string // opcional
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
