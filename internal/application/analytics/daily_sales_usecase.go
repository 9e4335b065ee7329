// Package analytics contiene los casos de uso de reportes de ventas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Remisiones-api/internal/application/dto"
	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/domain/report"
	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
)

// Modos de agregación del reporte diario.
const (
	AggregationDB     = "db"     // GROUP BY en Postgres
	AggregationMemory = "memory" // agrupación en la aplicación sobre las ventas de la ventana
)

// DailySalesConfig parámetros del reporte.
type DailySalesConfig struct {
	Mode         string
	Location     *time.Location
	MaxRangeDays int // 0 = sin límite
}

// DailySalesUseCase genera el reporte de ventas agrupadas por día calendario.
type DailySalesUseCase struct {
	reportRepo repository.ReportRepository
	saleRepo   repository.SaleRepository
	cfg        DailySalesConfig
}

// NewDailySalesUseCase construye el caso de uso. Un modo desconocido se trata como "db".
func NewDailySalesUseCase(
	reportRepo repository.ReportRepository,
	saleRepo repository.SaleRepository,
	cfg DailySalesConfig,
) *DailySalesUseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Mode != AggregationMemory {
		cfg.Mode = AggregationDB
	}
	return &DailySalesUseCase{reportRepo: reportRepo, saleRepo: saleRepo, cfg: cfg}
}

// Mode modo de agregación efectivo.
func (uc *DailySalesUseCase) Mode() string { return uc.cfg.Mode }

// GetDailySales devuelve un elemento por cada día con ventas entre from y to (ambos inclusive),
// ordenado por fecha. Sin ventas devuelve una lista vacía, nunca nil.
//
// Retorna:
//   - domain.ErrMissingParameter si falta from o to (o no son fechas YYYY-MM-DD).
//   - domain.ErrInvalidInput si from > to o el rango excede el máximo configurado.
func (uc *DailySalesUseCase) GetDailySales(ctx context.Context, in dto.DailySalesRequest) ([]dto.DailySalesDTO, error) {
	rng, err := report.ParseRange(in.From, in.To, uc.cfg.Location)
	if err != nil {
		return nil, err
	}
	if rng.From.After(rng.To) {
		return nil, fmt.Errorf("%w: 'from' (%s) es posterior a 'to' (%s)",
			domain.ErrInvalidInput, in.From, in.To)
	}
	if uc.cfg.MaxRangeDays > 0 && rng.Days() > uc.cfg.MaxRangeDays {
		return nil, fmt.Errorf("%w: el rango admite máximo %d días",
			domain.ErrInvalidInput, uc.cfg.MaxRangeDays)
	}

	var days []report.DailySummary
	switch uc.cfg.Mode {
	case AggregationMemory:
		sales, err := uc.saleRepo.ListBetween(ctx, rng.Start(), rng.End())
		if err != nil {
			return nil, fmt.Errorf("reporte diario: obtener ventas: %w", err)
		}
		days = report.Aggregate(rng, sales)
	default:
		days, err = uc.reportRepo.DailySales(ctx, rng)
		if err != nil {
			return nil, fmt.Errorf("reporte diario: %w", err)
		}
	}

	out := make([]dto.DailySalesDTO, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DailySalesDTO{
			Date:       d.Date.Format(report.DateLayout),
			TotalSales: dto.Money(d.TotalSales),
			TotalTax:   dto.Money(d.TotalTax),
			SalesCount: d.SalesCount,
		})
	}
	return out, nil
}
