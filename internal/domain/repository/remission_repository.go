package repository

import (
	"context"

	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
)

// RemissionFilter filtros opcionales para listar remisiones.
type RemissionFilter struct {
	OrderID string
	Status  entity.RemissionStatus
}

// RemissionRepository define el puerto de persistencia para Remission.
type RemissionRepository interface {
	Create(ctx context.Context, remission *entity.Remission) error
	// GetByID devuelve la remisión con folio de la orden y nombre del cliente (nil, nil si no existe).
	GetByID(ctx context.Context, id string) (*entity.Remission, error)
	// GetByIDForUpdate bloquea la fila (SELECT ... FOR UPDATE). Solo tiene efecto dentro de una tx.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Remission, error)
	// GetByIDForShare bloquea la fila en modo compartido para agregar ventas o créditos
	// sin competir con un cierre concurrente.
	GetByIDForShare(ctx context.Context, id string) (*entity.Remission, error)
	List(ctx context.Context, filter RemissionFilter, limit, offset int) ([]*entity.Remission, error)
	UpdateStatus(ctx context.Context, id string, status entity.RemissionStatus) error
	Delete(ctx context.Context, id string) error
}
