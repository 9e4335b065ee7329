package remission

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
)

// Summary totales derivados de una remisión. Se recalcula en cada consulta.
type Summary struct {
	TotalSales   decimal.Decimal
	TotalCredits decimal.Decimal
	Balance      decimal.Decimal // TotalSales - TotalCredits
	SalesCount   int
}

// TotalSold suma subtotal + impuestos de todas las ventas (0.00 si no hay).
func TotalSold(sales []*entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total())
	}
	return total
}

// TotalCredited suma los montos de los créditos (0.00 si no hay).
func TotalCredited(credits []*entity.CreditAssignment) decimal.Decimal {
	total := decimal.Zero
	for _, c := range credits {
		total = total.Add(c.Amount)
	}
	return total
}

// Summarize calcula el resumen de la remisión a partir de sus colecciones vigentes.
func Summarize(sales []*entity.Sale, credits []*entity.CreditAssignment) Summary {
	sold := TotalSold(sales)
	credited := TotalCredited(credits)
	return Summary{
		TotalSales:   sold,
		TotalCredits: credited,
		Balance:      sold.Sub(credited),
		SalesCount:   len(sales),
	}
}
