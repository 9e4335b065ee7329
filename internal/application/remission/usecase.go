// Package remission orquesta el ciclo de vida de las remisiones: alta, ventas y créditos,
// cierre validado y resumen de totales.
package remission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Remisiones-api/internal/application/dto"
	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	rules "github.com/jhoicas/Remisiones-api/internal/domain/remission"
	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
	"github.com/jhoicas/Remisiones-api/pkg/validation"
)

// ClosedMessage respuesta de un cierre exitoso.
const ClosedMessage = "Remisión cerrada exitosamente"

// UseCase casos de uso de remisiones.
type UseCase struct {
	tx         TxRunner
	remissions repository.RemissionRepository
	orders     repository.OrderRepository
	sales      repository.SaleRepository
	credits    repository.CreditAssignmentRepository
	now        func() time.Time
}

// NewUseCase construye el caso de uso. Los repos sueltos se usan para lecturas fuera de tx.
func NewUseCase(
	tx TxRunner,
	remissions repository.RemissionRepository,
	orders repository.OrderRepository,
	sales repository.SaleRepository,
	credits repository.CreditAssignmentRepository,
) *UseCase {
	return &UseCase{
		tx:         tx,
		remissions: remissions,
		orders:     orders,
		sales:      sales,
		credits:    credits,
		now:        time.Now,
	}
}

// Create crea una remisión abierta para una orden existente.
// Solicitar status "closed" en la creación se rechaza con ErrInvalidCreationState.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateRemissionRequest) (*dto.RemissionResponse, error) {
	// El estado se valida antes que el resto del cuerpo: "closed" siempre es InvalidCreationState.
	status := entity.RemissionStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = entity.RemissionOpen
	}
	if err := rules.ValidateTransition(nil, status, nil, nil); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: status %q no existe", domain.ErrInvalidInput, status)
	}
	in.Folio = strings.TrimSpace(in.Folio)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	order, err := uc.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order_id %s no existe", domain.ErrInvalidInput, in.OrderID)
	}

	rem := &entity.Remission{
		ID:         uuid.New().String(),
		OrderID:    order.ID,
		OrderFolio: order.Folio,
		CustomerID: order.CustomerID,
		Folio:      in.Folio,
		Status:     status,
		CreatedAt:  uc.now(),
	}
	if err := uc.remissions.Create(ctx, rem); err != nil {
		return nil, err
	}
	return toRemissionResponse(rem), nil
}

// GetByID obtiene una remisión con el folio de su orden y el nombre del cliente.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.RemissionResponse, error) {
	rem, err := uc.get(ctx, uc.remissions, id)
	if err != nil {
		return nil, err
	}
	return toRemissionResponse(rem), nil
}

// List lista remisiones con filtros opcionales por orden y estado.
func (uc *UseCase) List(ctx context.Context, in dto.RemissionListRequest) ([]*dto.RemissionResponse, error) {
	in.DefaultPage()
	status := entity.RemissionStatus(in.Status)
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: status %q no existe", domain.ErrInvalidInput, status)
	}
	list, err := uc.remissions.List(ctx, repository.RemissionFilter{OrderID: in.OrderID, Status: status}, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RemissionResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRemissionResponse(r))
	}
	return out, nil
}

// Delete elimina la remisión con sus ventas y créditos.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return uc.remissions.Delete(ctx, id)
}

// Close cierra la remisión si cumple las reglas de negocio.
func (uc *UseCase) Close(ctx context.Context, id string) error {
	_, err := uc.transition(ctx, id, entity.RemissionClosed)
	return err
}

// UpdateStatus aplica un cambio de estado solicitado por el cliente pasando por el mismo
// validador que Close.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateRemissionStatusRequest) (*dto.RemissionResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	rem, err := uc.transition(ctx, id, entity.RemissionStatus(strings.TrimSpace(in.Status)))
	if err != nil {
		return nil, err
	}
	return toRemissionResponse(rem), nil
}

// transition bloquea la remisión, lee sus ventas y créditos vigentes, valida y persiste.
func (uc *UseCase) transition(ctx context.Context, id string, to entity.RemissionStatus) (*entity.Remission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	var result *entity.Remission
	err := uc.tx.RunRemission(ctx, func(
		remRepo repository.RemissionRepository,
		saleRepo repository.SaleRepository,
		creditRepo repository.CreditAssignmentRepository,
	) error {
		rem, err := remRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rem == nil {
			return domain.ErrNotFound
		}
		sales, err := saleRepo.ListByRemission(ctx, id)
		if err != nil {
			return err
		}
		credits, err := creditRepo.ListByRemission(ctx, id)
		if err != nil {
			return err
		}
		if err := rules.ValidateTransition(rem, to, sales, credits); err != nil {
			return err
		}
		if rem.Status != to {
			if err := remRepo.UpdateStatus(ctx, id, to); err != nil {
				return err
			}
			rem.Status = to
		}
		result = rem
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Summary calcula en vivo total vendido, total acreditado, saldo y número de ventas.
func (uc *UseCase) Summary(ctx context.Context, id string) (*dto.RemissionSummaryResponse, error) {
	rem, err := uc.get(ctx, uc.remissions, id)
	if err != nil {
		return nil, err
	}
	sales, err := uc.sales.ListByRemission(ctx, id)
	if err != nil {
		return nil, err
	}
	credits, err := uc.credits.ListByRemission(ctx, id)
	if err != nil {
		return nil, err
	}
	sum := rules.Summarize(sales, credits)
	return &dto.RemissionSummaryResponse{
		RemissionID:  rem.ID,
		Status:       string(rem.Status),
		TotalSales:   dto.Money(sum.TotalSales),
		TotalCredits: dto.Money(sum.TotalCredits),
		Balance:      dto.Money(sum.Balance),
		SalesCount:   sum.SalesCount,
	}, nil
}

// AddSale registra una venta en una remisión abierta. created_at lo asigna el servidor.
func (uc *UseCase) AddSale(ctx context.Context, id string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		RemissionID: id,
		Subtotal:    in.Subtotal.Round(2),
		Tax:         in.Tax.Round(2),
	}
	err := uc.appendLocked(ctx, id, func(saleRepo repository.SaleRepository, _ repository.CreditAssignmentRepository) error {
		sale.CreatedAt = uc.now()
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// AddCredit registra un crédito (monto > 0) en una remisión abierta.
func (uc *UseCase) AddCredit(ctx context.Context, id string, in dto.CreateCreditRequest) (*dto.CreditResponse, error) {
	in.Reason = strings.TrimSpace(in.Reason)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	credit := &entity.CreditAssignment{
		ID:          uuid.New().String(),
		RemissionID: id,
		Amount:      in.Amount.Round(2),
		Reason:      in.Reason,
	}
	err := uc.appendLocked(ctx, id, func(_ repository.SaleRepository, creditRepo repository.CreditAssignmentRepository) error {
		credit.CreatedAt = uc.now()
		return creditRepo.Create(ctx, credit)
	})
	if err != nil {
		return nil, err
	}
	return toCreditResponse(credit), nil
}

// appendLocked toma un bloqueo compartido sobre la remisión y rechaza si ya está cerrada.
func (uc *UseCase) appendLocked(ctx context.Context, id string, fn func(
	saleRepo repository.SaleRepository,
	creditRepo repository.CreditAssignmentRepository,
) error) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return uc.tx.RunRemission(ctx, func(
		remRepo repository.RemissionRepository,
		saleRepo repository.SaleRepository,
		creditRepo repository.CreditAssignmentRepository,
	) error {
		rem, err := remRepo.GetByIDForShare(ctx, id)
		if err != nil {
			return err
		}
		if rem == nil {
			return domain.ErrNotFound
		}
		if err := rules.CanAppend(rem); err != nil {
			return err
		}
		return fn(saleRepo, creditRepo)
	})
}

// ListSales lista las ventas de la remisión en orden de creación.
func (uc *UseCase) ListSales(ctx context.Context, id string) ([]*dto.SaleResponse, error) {
	if _, err := uc.get(ctx, uc.remissions, id); err != nil {
		return nil, err
	}
	sales, err := uc.sales.ListByRemission(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// ListCredits lista los créditos de la remisión en orden de creación.
func (uc *UseCase) ListCredits(ctx context.Context, id string) ([]*dto.CreditResponse, error) {
	if _, err := uc.get(ctx, uc.remissions, id); err != nil {
		return nil, err
	}
	credits, err := uc.credits.ListByRemission(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CreditResponse, 0, len(credits))
	for _, c := range credits {
		out = append(out, toCreditResponse(c))
	}
	return out, nil
}

func (uc *UseCase) get(ctx context.Context, repo repository.RemissionRepository, id string) (*entity.Remission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	rem, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rem == nil {
		return nil, domain.ErrNotFound
	}
	return rem, nil
}

func toRemissionResponse(r *entity.Remission) *dto.RemissionResponse {
	return &dto.RemissionResponse{
		ID:           r.ID,
		OrderID:      r.OrderID,
		OrderFolio:   r.OrderFolio,
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		Folio:        r.Folio,
		Status:       string(r.Status),
		CreatedAt:    dto.Timestamp(r.CreatedAt),
	}
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:          s.ID,
		RemissionID: s.RemissionID,
		Subtotal:    dto.Money(s.Subtotal),
		Tax:         dto.Money(s.Tax),
		Total:       dto.Money(s.Total()),
		CreatedAt:   dto.Timestamp(s.CreatedAt),
	}
}

func toCreditResponse(c *entity.CreditAssignment) *dto.CreditResponse {
	return &dto.CreditResponse{
		ID:          c.ID,
		RemissionID: c.RemissionID,
		Amount:      dto.Money(c.Amount),
		Reason:      c.Reason,
		CreatedAt:   dto.Timestamp(c.CreatedAt),
	}
}
