// Package remission contiene las reglas de negocio del ciclo de vida de una remisión:
// la validación de transiciones de estado (open -> closed) y los totales derivados.
package remission

import (
	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
)

// ValidateTransition decide si una remisión puede pasar al estado solicitado.
//
// existing == nil representa una creación. Las reglas se evalúan en orden:
//  1. Creación: no se permite crear directamente como cerrada.
//  2. Una remisión cerrada es final: cualquier solicitud sobre ella es una transición inválida.
//  3. Solicitudes distintas a closed no se validan aquí.
//  4. Cierre: debe haber al menos una venta y los créditos no pueden exceder el total vendido.
//
// Es una función pura: sales y credits deben ser las colecciones vigentes (leídas en la misma
// transacción que persistirá el cambio), nunca totales cacheados.
func ValidateTransition(
	existing *entity.Remission,
	requested entity.RemissionStatus,
	sales []*entity.Sale,
	credits []*entity.CreditAssignment,
) error {
	if existing == nil {
		if requested == entity.RemissionClosed {
			return domain.ErrInvalidCreationState
		}
		return nil
	}

	if existing.Status.IsFinal() || !requested.IsValid() {
		return &domain.TransitionError{From: string(existing.Status), To: string(requested)}
	}

	if requested != entity.RemissionClosed {
		return nil
	}

	if len(sales) == 0 {
		return domain.ErrEmptySalesSet
	}

	totalSold := TotalSold(sales)
	totalCredited := TotalCredited(credits)
	if totalCredited.GreaterThan(totalSold) {
		return &domain.CreditsExceedSalesError{TotalCredited: totalCredited, TotalSold: totalSold}
	}
	return nil
}

// CanAppend indica si la remisión todavía admite ventas o créditos nuevos.
func CanAppend(r *entity.Remission) error {
	if r.Status.IsFinal() {
		return &domain.TransitionError{From: string(r.Status), To: string(r.Status)}
	}
	return nil
}
