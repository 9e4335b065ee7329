package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
	"github.com/jhoicas/Remisiones-api/internal/infrastructure/memory"
)

var errRechazo = errors.New("rechazo de negocio")

func seedRemission(t *testing.T, store *memory.Store) *entity.Remission {
	t.Helper()
	ctx := context.Background()
	c := &entity.Customer{ID: uuid.NewString(), Name: "Ferretería López", IsActive: true}
	require.NoError(t, store.Customers().Create(ctx, c))
	o := &entity.Order{ID: uuid.NewString(), CustomerID: c.ID, Folio: "ORD-001", CreatedAt: time.Now()}
	require.NoError(t, store.Orders().Create(ctx, o))
	r := &entity.Remission{ID: uuid.NewString(), OrderID: o.ID, Folio: "REM-001", Status: entity.RemissionOpen, CreatedAt: time.Now()}
	require.NoError(t, store.Remissions().Create(ctx, r))
	return r
}

func TestRunRemission_RevierteSoloLoDeLaTransaccion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rem := seedRemission(t, store)
	customer := &entity.Customer{ID: uuid.NewString(), Name: "Abarrotes Sol", IsActive: true}

	err := store.TxRunner().RunRemission(ctx, func(
		remRepo repository.RemissionRepository,
		saleRepo repository.SaleRepository,
		_ repository.CreditAssignmentRepository,
	) error {
		// Escritura ajena a la transacción mientras está abierta.
		require.NoError(t, store.Customers().Create(ctx, customer))

		require.NoError(t, saleRepo.Create(ctx, &entity.Sale{
			ID: uuid.NewString(), RemissionID: rem.ID,
			Subtotal: decimal.RequireFromString("10.00"), Tax: decimal.Zero, CreatedAt: time.Now(),
		}))
		require.NoError(t, remRepo.UpdateStatus(ctx, rem.ID, entity.RemissionClosed))
		return errRechazo
	})
	require.ErrorIs(t, err, errRechazo)

	got, err := store.Customers().GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "el cliente creado fuera de la transacción debe conservarse")
	assert.Equal(t, "Abarrotes Sol", got.Name)

	sales, err := store.Sales().ListByRemission(ctx, rem.ID)
	require.NoError(t, err)
	assert.Empty(t, sales)

	after, err := store.Remissions().GetByID(ctx, rem.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RemissionOpen, after.Status)
}

func TestRunRemission_ConfirmaSinError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rem := seedRemission(t, store)

	err := store.TxRunner().RunRemission(ctx, func(
		remRepo repository.RemissionRepository,
		_ repository.SaleRepository,
		_ repository.CreditAssignmentRepository,
	) error {
		return remRepo.UpdateStatus(ctx, rem.ID, entity.RemissionClosed)
	})
	require.NoError(t, err)

	after, err := store.Remissions().GetByID(ctx, rem.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RemissionClosed, after.Status)
}

func TestDeleteCliente_EsperaTransaccionAbierta(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rem := seedRemission(t, store)
	order, err := store.Orders().GetByID(ctx, rem.OrderID)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- store.TxRunner().RunRemission(ctx, func(
			_ repository.RemissionRepository,
			_ repository.SaleRepository,
			_ repository.CreditAssignmentRepository,
		) error {
			close(entered)
			<-release
			return errRechazo
		})
	}()
	<-entered

	deleted := make(chan error, 1)
	go func() { deleted <- store.Customers().Delete(ctx, order.CustomerID) }()

	select {
	case <-deleted:
		t.Fatal("el borrado en cascada no debe intercalarse con la transacción")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	require.ErrorIs(t, <-txDone, errRechazo)
	require.NoError(t, <-deleted)

	got, err := store.Remissions().GetByID(ctx, rem.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "el rollback no debe resucitar la remisión borrada después")
}
