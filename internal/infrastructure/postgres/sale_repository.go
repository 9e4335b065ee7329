package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta con su created_at.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, remission_id, subtotal, tax, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, s.ID, s.RemissionID, s.Subtotal, s.Tax, s.CreatedAt)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return fmt.Errorf("%w: subtotal e impuestos deben ser >= 0", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByRemission devuelve las ventas de la remisión en orden de creación.
func (r *SaleRepo) ListByRemission(ctx context.Context, remissionID string) ([]*entity.Sale, error) {
	query := `
		SELECT id, remission_id, subtotal, tax, created_at FROM sales
		WHERE remission_id = $1
		ORDER BY created_at, id`
	return r.list(ctx, query, remissionID)
}

// ListBetween devuelve las ventas con start <= created_at < end.
func (r *SaleRepo) ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, remission_id, subtotal, tax, created_at FROM sales
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at, id`
	return r.list(ctx, query, start, end)
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Sale, error) {
		var s entity.Sale
		err := row.Scan(&s.ID, &s.RemissionID, &s.Subtotal, &s.Tax, &s.CreatedAt)
		return &s, err
	})
}

var _ repository.CreditAssignmentRepository = (*CreditAssignmentRepo)(nil)

// CreditAssignmentRepo implementación de CreditAssignmentRepository.
type CreditAssignmentRepo struct {
	q Querier
}

// NewCreditAssignmentRepository construye el adaptador.
func NewCreditAssignmentRepository(q Querier) *CreditAssignmentRepo {
	return &CreditAssignmentRepo{q: q}
}

// Create inserta el crédito.
func (r *CreditAssignmentRepo) Create(ctx context.Context, c *entity.CreditAssignment) error {
	query := `
		INSERT INTO credit_assignments (id, remission_id, amount, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, c.ID, c.RemissionID, c.Amount, c.Reason, c.CreatedAt)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return fmt.Errorf("%w: amount debe ser > 0", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert credit assignment: %w", err)
	}
	return nil
}

// ListByRemission devuelve los créditos de la remisión en orden de creación.
func (r *CreditAssignmentRepo) ListByRemission(ctx context.Context, remissionID string) ([]*entity.CreditAssignment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, remission_id, amount, reason, created_at FROM credit_assignments
		WHERE remission_id = $1
		ORDER BY created_at, id`, remissionID)
	if err != nil {
		return nil, fmt.Errorf("list credit assignments: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.CreditAssignment, error) {
		var c entity.CreditAssignment
		err := row.Scan(&c.ID, &c.RemissionID, &c.Amount, &c.Reason, &c.CreatedAt)
		return &c, err
	})
}
