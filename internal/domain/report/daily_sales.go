// Package report contiene el agregador de ventas diarias: filtra las ventas por una ventana
// semiabierta [from 00:00, to+1 día 00:00) y las agrupa por día calendario.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
)

// DateLayout formato ISO de fecha calendario (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Range rango inclusivo de días calendario en una zona horaria.
type Range struct {
	From time.Time // medianoche del primer día
	To   time.Time // medianoche del último día (inclusivo)
}

// DailySummary totales de un día calendario.
type DailySummary struct {
	Date       time.Time
	TotalSales decimal.Decimal // Σ(subtotal + tax)
	TotalTax   decimal.Decimal // Σ tax
	SalesCount int
}

// ParseRange convierte los parámetros from/to en un Range en la zona loc.
// Parámetros vacíos o no parseables devuelven ErrMissingParameter.
func ParseRange(fromStr, toStr string, loc *time.Location) (Range, error) {
	fromStr, toStr = strings.TrimSpace(fromStr), strings.TrimSpace(toStr)
	if fromStr == "" || toStr == "" {
		return Range{}, domain.ErrMissingParameter
	}
	if loc == nil {
		loc = time.UTC
	}
	from, err := time.ParseInLocation(DateLayout, fromStr, loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: from inválido %q", domain.ErrMissingParameter, fromStr)
	}
	to, err := time.ParseInLocation(DateLayout, toStr, loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: to inválido %q", domain.ErrMissingParameter, toStr)
	}
	return NewRange(from, to), nil
}

// NewRange normaliza from y to a la medianoche de su día (en la zona de from).
func NewRange(from, to time.Time) Range {
	loc := from.Location()
	return Range{From: startOfDay(from, loc), To: startOfDay(to, loc)}
}

// Start límite inferior inclusivo de la ventana.
func (r Range) Start() time.Time { return r.From }

// End límite superior exclusivo: el día siguiente a To a las 00:00.
// Comparar con < End incluye todas las ventas registradas durante el último día.
func (r Range) End() time.Time { return r.To.AddDate(0, 0, 1) }

// Contains indica si t cae en [Start, End).
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start()) && t.Before(r.End())
}

// Days número de días calendario que cubre el rango (0 si From > To).
func (r Range) Days() int {
	if r.From.After(r.To) {
		return 0
	}
	return int((civilUnix(r.To)-civilUnix(r.From))/secondsPerDay) + 1
}

const secondsPerDay = 24 * 60 * 60

// civilUnix segundos Unix de la fecha calendario de t a medianoche UTC.
// Se usa UTC para que un día de 23 o 25 horas por horario de verano cuente como uno.
func civilUnix(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// Aggregate agrupa por día calendario las ventas que caen en la ventana del rango.
// El resultado es disperso (sin días en cero) y está ordenado ascendentemente por fecha.
func Aggregate(r Range, sales []*entity.Sale) []DailySummary {
	loc := r.From.Location()
	byDay := make(map[string]*DailySummary)
	for _, s := range sales {
		if s == nil || !r.Contains(s.CreatedAt) {
			continue
		}
		day := startOfDay(s.CreatedAt, loc)
		key := day.Format(DateLayout)
		sum, ok := byDay[key]
		if !ok {
			sum = &DailySummary{Date: day, TotalSales: decimal.Zero, TotalTax: decimal.Zero}
			byDay[key] = sum
		}
		sum.TotalSales = sum.TotalSales.Add(s.Total())
		sum.TotalTax = sum.TotalTax.Add(s.Tax)
		sum.SalesCount++
	}

	out := make([]DailySummary, 0, len(byDay))
	for _, sum := range byDay {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
