package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
)

var _ repository.RemissionRepository = (*RemissionRepo)(nil)

// RemissionRepo implementación de RemissionRepository.
type RemissionRepo struct {
	q Querier
}

// NewRemissionRepository construye el adaptador.
func NewRemissionRepository(q Querier) *RemissionRepo {
	return &RemissionRepo{q: q}
}

const remissionSelect = `
	SELECT r.id, r.order_id, r.folio, r.status, r.created_at,
	       o.folio, o.customer_id, c.name
	FROM remissions r
	JOIN orders o ON o.id = r.order_id
	JOIN customers c ON c.id = o.customer_id`

// Create persiste la remisión.
func (r *RemissionRepo) Create(ctx context.Context, rem *entity.Remission) error {
	query := `INSERT INTO remissions (id, order_id, folio, status, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, rem.ID, rem.OrderID, rem.Folio, string(rem.Status), rem.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: order_id no existe", domain.ErrInvalidInput)
		case isCheckViolation(err):
			return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, rem.Status)
		}
		return fmt.Errorf("insert remission: %w", err)
	}
	return nil
}

// GetByID obtiene la remisión con datos de la orden y el cliente.
func (r *RemissionRepo) GetByID(ctx context.Context, id string) (*entity.Remission, error) {
	return r.getOne(ctx, remissionSelect+` WHERE r.id = $1`, id)
}

// GetByIDForUpdate bloquea la fila de la remisión hasta el fin de la tx.
func (r *RemissionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Remission, error) {
	return r.getOne(ctx, remissionSelect+` WHERE r.id = $1 FOR UPDATE OF r`, id)
}

// GetByIDForShare bloquea la fila en modo compartido: varias inserciones concurrentes
// conviven, pero un cierre (FOR UPDATE) espera a que terminen.
func (r *RemissionRepo) GetByIDForShare(ctx context.Context, id string) (*entity.Remission, error) {
	return r.getOne(ctx, remissionSelect+` WHERE r.id = $1 FOR SHARE OF r`, id)
}

func (r *RemissionRepo) getOne(ctx context.Context, query, id string) (*entity.Remission, error) {
	rem, err := scanRemission(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get remission: %w", err)
	}
	return rem, nil
}

// List lista remisiones con filtros opcionales, más recientes primero.
func (r *RemissionRepo) List(ctx context.Context, f repository.RemissionFilter, limit, offset int) ([]*entity.Remission, error) {
	query := remissionSelect + `
		WHERE ($1 = '' OR r.order_id::text = $1)
		  AND ($2 = '' OR r.status = $2)
		ORDER BY r.created_at DESC, r.id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.OrderID, string(f.Status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list remissions: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Remission, 0)
	for rows.Next() {
		rem, err := scanRemission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan remission: %w", err)
		}
		list = append(list, rem)
	}
	return list, rows.Err()
}

// UpdateStatus persiste el nuevo estado.
func (r *RemissionRepo) UpdateStatus(ctx context.Context, id string, status entity.RemissionStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE remissions SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update remission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la remisión con sus ventas y créditos.
func (r *RemissionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM remissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete remission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRemission(row pgx.Row) (*entity.Remission, error) {
	var (
		rem    entity.Remission
		status string
	)
	err := row.Scan(&rem.ID, &rem.OrderID, &rem.Folio, &status, &rem.CreatedAt,
		&rem.OrderFolio, &rem.CustomerID, &rem.CustomerName)
	if err != nil {
		return nil, err
	}
	rem.Status = entity.RemissionStatus(status)
	return &rem, nil
}
