package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Remisiones-api/internal/application/dto"
	"github.com/jhoicas/Remisiones-api/internal/application/usecase"
	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerCreate_ActivoPorDefecto(t *testing.T) {
	uc := usecase.NewCustomerUseCase(memory.NewStore().Customers())

	c, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "  Ferretería López  "})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería López", c.Name)
	assert.True(t, c.IsActive)
	assert.Empty(t, c.Email)
}

func TestCustomerCreate_EmailInvalido(t *testing.T) {
	uc := usecase.NewCustomerUseCase(memory.NewStore().Customers())

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Abarrotes Sol", Email: "no-es-email"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "email")
}

func TestCustomerUpdate_ConservaActivoSiNoViene(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCustomerUseCase(memory.NewStore().Customers())
	inactive := false
	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Papelería Centro", IsActive: &inactive})
	require.NoError(t, err)

	up, err := uc.Update(ctx, c.ID, dto.UpdateCustomerRequest{Name: "Papelería del Centro", Email: "contacto@centro.mx"})
	require.NoError(t, err)
	assert.Equal(t, "Papelería del Centro", up.Name)
	assert.Equal(t, "contacto@centro.mx", up.Email)
	assert.False(t, up.IsActive)
}

func TestCustomerGet_NoExiste(t *testing.T) {
	uc := usecase.NewCustomerUseCase(memory.NewStore().Customers())

	_, err := uc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByID(context.Background(), "no-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes
// ──────────────────────────────────────────────────────────────────────────────

func newOrderUseCases(t *testing.T) (*usecase.OrderUseCase, string) {
	t.Helper()
	store := memory.NewStore()
	customers := usecase.NewCustomerUseCase(store.Customers())
	c, err := customers.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ferretería López"})
	require.NoError(t, err)
	return usecase.NewOrderUseCase(store.Orders(), store.Customers()), c.ID
}

func TestOrderCreate_FolioDuplicado(t *testing.T) {
	ctx := context.Background()
	uc, customerID := newOrderUseCases(t)

	_, err := uc.Create(ctx, dto.CreateOrderRequest{CustomerID: customerID, Folio: "ORD-001"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateOrderRequest{CustomerID: customerID, Folio: " ORD-001 "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestOrderCreate_ClienteInexistente(t *testing.T) {
	uc, _ := newOrderUseCases(t)

	_, err := uc.Create(context.Background(), dto.CreateOrderRequest{CustomerID: uuid.NewString(), Folio: "ORD-002"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderList_FiltraPorCliente(t *testing.T) {
	ctx := context.Background()
	uc, customerID := newOrderUseCases(t)
	_, err := uc.Create(ctx, dto.CreateOrderRequest{CustomerID: customerID, Folio: "ORD-003"})
	require.NoError(t, err)

	list, err := uc.List(ctx, dto.OrderListRequest{CustomerID: customerID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ORD-003", list[0].Folio)

	list, err = uc.List(ctx, dto.OrderListRequest{CustomerID: uuid.NewString()})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderDelete(t *testing.T) {
	ctx := context.Background()
	uc, customerID := newOrderUseCases(t)
	o, err := uc.Create(ctx, dto.CreateOrderRequest{CustomerID: customerID, Folio: "ORD-004"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, o.ID))
	_, err = uc.GetByID(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, o.ID), domain.ErrNotFound)
}
