package repository

import (
	"context"

	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
)

// OrderFilter filtros opcionales para listar órdenes.
type OrderFilter struct {
	CustomerID string
}

// OrderRepository define el puerto de persistencia para Order.
// Create/Update devuelven domain.ErrDuplicate si el folio ya existe.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
}
