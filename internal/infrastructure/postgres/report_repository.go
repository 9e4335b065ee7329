package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Remisiones-api/internal/domain/report"
	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DailySales agrupa las ventas de [Start, End) por día calendario en la zona del rango.
// Los días sin ventas no aparecen.
func (r *ReportRepo) DailySales(ctx context.Context, rng report.Range) ([]report.DailySummary, error) {
	loc := rng.From.Location()
	query := `
		SELECT (created_at AT TIME ZONE $3)::date AS day,
		       SUM(subtotal + tax) AS total_sales,
		       SUM(tax)            AS total_tax,
		       COUNT(*)            AS sales_count
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, rng.Start(), rng.End(), loc.String())
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	days, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (report.DailySummary, error) {
		var (
			d   report.DailySummary
			day time.Time
		)
		err := row.Scan(&day, &d.TotalSales, &d.TotalTax, &d.SalesCount)
		d.Date = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan daily sales: %w", err)
	}
	return days, nil
}
