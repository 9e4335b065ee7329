package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout formato de fechas con hora en las respuestas.
const TimestampLayout = time.RFC3339

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y límites a Limit/Offset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Money serializa un monto con exactamente dos decimales ("200.00").
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Timestamp serializa una fecha/hora en RFC 3339.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
