package repository

import (
	"context"

	"github.com/jhoicas/Remisiones-api/internal/domain/report"
)

// ReportRepository consultas de solo lectura para reportes agregados en la base de datos.
type ReportRepository interface {
	// DailySales agrupa por día calendario (en la zona del rango) las ventas de la ventana
	// [r.Start(), r.End()) y devuelve los días ordenados ascendentemente.
	DailySales(ctx context.Context, r report.Range) ([]report.DailySummary, error)
}
