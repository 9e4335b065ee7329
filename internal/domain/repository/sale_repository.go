package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (solo inserción y lectura).
type SaleRepository interface {
	// Create inserta la venta con el CreatedAt recibido.
	Create(ctx context.Context, sale *entity.Sale) error
	ListByRemission(ctx context.Context, remissionID string) ([]*entity.Sale, error)
	// ListBetween devuelve las ventas con start <= created_at < end.
	ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Sale, error)
}

// CreditAssignmentRepository define el puerto de persistencia para CreditAssignment.
type CreditAssignmentRepository interface {
	Create(ctx context.Context, credit *entity.CreditAssignment) error
	ListByRemission(ctx context.Context, remissionID string) ([]*entity.CreditAssignment, error)
}
