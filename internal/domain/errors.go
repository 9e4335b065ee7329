package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores del ciclo de vida de la remisión y del reporte de ventas.
var (
	ErrInvalidCreationState = errors.New("No se puede crear una remisión directamente como cerrada.")
	ErrEmptySalesSet        = errors.New("No se puede cerrar una remisión sin ventas.")
	ErrCreditsExceedSales   = errors.New("los créditos exceden el total vendido")
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
	ErrMissingParameter     = errors.New("'from' y 'to' son parámetros obligatorios")
)

// CreditsExceedSalesError lleva ambos totales para diagnóstico del operador.
// errors.Is(err, ErrCreditsExceedSales) lo reconoce.
type CreditsExceedSalesError struct {
	TotalCredited decimal.Decimal
	TotalSold     decimal.Decimal
}

func (e *CreditsExceedSalesError) Error() string {
	return fmt.Sprintf("Los créditos (%s) exceden el total vendido (%s).",
		e.TotalCredited.StringFixed(2), e.TotalSold.StringFixed(2))
}

// Is permite comparar contra el sentinel ErrCreditsExceedSales.
func (e *CreditsExceedSalesError) Is(target error) bool {
	return target == ErrCreditsExceedSales
}

// TransitionError describe una transición rechazada (p. ej. closed -> open).
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transición de estado no permitida: %s -> %s", e.From, e.To)
}

// Is permite comparar contra el sentinel ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// IsValidation indica si err es un rechazo de regla de negocio (HTTP 400),
// a diferencia de fallos de infraestructura.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidCreationState) ||
		errors.Is(err, ErrEmptySalesSet) ||
		errors.Is(err, ErrCreditsExceedSales) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrMissingParameter)
}
