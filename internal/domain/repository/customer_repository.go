package repository

import (
	"context"

	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID devuelve (nil, nil) si no existe.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete elimina el cliente y en cascada sus órdenes, remisiones, ventas y créditos.
	// Devuelve domain.ErrNotFound si no existía.
	Delete(ctx context.Context, id string) error
}
