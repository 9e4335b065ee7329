package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Remisiones-api/internal/application/dto"
	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
	"github.com/jhoicas/Remisiones-api/pkg/validation"
)

// OrderUseCase casos de uso CRUD para órdenes.
type OrderUseCase struct {
	repo         repository.OrderRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, customerRepo repository.CustomerRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo, customerRepo: customerRepo, now: time.Now}
}

// Create crea una orden para un cliente existente. El folio debe ser único.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	in.Folio = strings.TrimSpace(in.Folio)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.ensureCustomer(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	order := &entity.Order{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Folio:      in.Folio,
		CreatedAt:  uc.now(),
	}
	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene una orden por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// List lista órdenes, opcionalmente de un cliente.
func (uc *OrderUseCase) List(ctx context.Context, in dto.OrderListRequest) ([]*dto.OrderResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.OrderFilter{CustomerID: in.CustomerID}, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// Update cambia cliente y folio de la orden.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	in.Folio = strings.TrimSpace(in.Folio)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	order, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CustomerID != order.CustomerID {
		if err := uc.ensureCustomer(ctx, in.CustomerID); err != nil {
			return nil, err
		}
	}
	order.CustomerID = in.CustomerID
	order.Folio = in.Folio
	if err := uc.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete elimina la orden y en cascada sus remisiones.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *OrderUseCase) ensureCustomer(ctx context.Context, customerID string) error {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("%w: customer_id %s no existe", domain.ErrInvalidInput, customerID)
	}
	return nil
}

func (uc *OrderUseCase) get(ctx context.Context, id string) (*entity.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Folio:      o.Folio,
		CreatedAt:  dto.Timestamp(o.CreatedAt),
	}
}
