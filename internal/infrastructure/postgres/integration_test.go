//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Remisiones-api/internal/application/analytics"
	"github.com/jhoicas/Remisiones-api/internal/application/dto"
	"github.com/jhoicas/Remisiones-api/internal/application/remission"
	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	"github.com/jhoicas/Remisiones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Remisiones-api/pkg/config"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("remisiones_test"),
		tcpostgres.WithUsername("remisiones"),
		tcpostgres.WithPassword("remisiones"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: connStr, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(pool))
	// Segunda ejecución: ErrNoChange no es error.
	require.NoError(t, postgres.Migrate(pool))
	return pool
}

func seedOrder(t *testing.T, pool *pgxpool.Pool) *entity.Order {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	c := &entity.Customer{ID: uuid.NewString(), Name: "Cliente Integración", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewCustomerRepository(pool).Create(ctx, c))
	o := &entity.Order{ID: uuid.NewString(), CustomerID: c.ID, Folio: "ORD-" + uuid.NewString()[:8], CreatedAt: now}
	require.NoError(t, postgres.NewOrderRepository(pool).Create(ctx, o))
	return o
}

func newRemissionUseCase(pool *pgxpool.Pool) *remission.UseCase {
	return remission.NewUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewRemissionRepository(pool),
		postgres.NewOrderRepository(pool),
		postgres.NewSaleRepository(pool),
		postgres.NewCreditAssignmentRepository(pool),
	)
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestIntegration_CicloDeVidaYReporte(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	order := seedOrder(t, pool)
	uc := newRemissionUseCase(pool)

	rem, err := uc.Create(ctx, dto.CreateRemissionRequest{OrderID: order.ID, Folio: "REM-INT-1"})
	require.NoError(t, err)
	assert.Equal(t, "Cliente Integración", rem.CustomerName)

	_, err = uc.Create(ctx, dto.CreateRemissionRequest{OrderID: order.ID, Folio: "REM-INT-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.ErrorIs(t, uc.Close(ctx, rem.ID), domain.ErrEmptySalesSet)

	_, err = uc.AddSale(ctx, rem.ID, dto.CreateSaleRequest{Subtotal: amount("100.00"), Tax: amount("16.00")})
	require.NoError(t, err)
	_, err = uc.AddCredit(ctx, rem.ID, dto.CreateCreditRequest{Amount: amount("200.00"), Reason: "Devolución"})
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Close(ctx, rem.ID), domain.ErrCreditsExceedSales)

	_, err = uc.AddSale(ctx, rem.ID, dto.CreateSaleRequest{Subtotal: amount("84.00"), Tax: amount("0.00")})
	require.NoError(t, err)
	require.NoError(t, uc.Close(ctx, rem.ID))

	_, err = uc.AddSale(ctx, rem.ID, dto.CreateSaleRequest{Subtotal: amount("1.00"), Tax: amount("0.00")})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	sum, err := uc.Summary(ctx, rem.ID)
	require.NoError(t, err)
	assert.Equal(t, "200.00", sum.TotalSales)
	assert.Equal(t, "0.00", sum.Balance)

	today := time.Now().UTC().Format("2006-01-02")
	for _, mode := range []string{analytics.AggregationDB, analytics.AggregationMemory} {
		report := analytics.NewDailySalesUseCase(postgres.NewReportRepository(pool), postgres.NewSaleRepository(pool),
			analytics.DailySalesConfig{Mode: mode, Location: time.UTC})
		days, err := report.GetDailySales(ctx, dto.DailySalesRequest{From: today, To: today})
		require.NoError(t, err, mode)
		require.Len(t, days, 1, mode)
		assert.Equal(t, "200.00", days[0].TotalSales, mode)
		assert.Equal(t, "16.00", days[0].TotalTax, mode)
		assert.Equal(t, 2, days[0].SalesCount, mode)
	}

	require.NoError(t, uc.Delete(ctx, rem.ID))
	sales, err := postgres.NewSaleRepository(pool).ListByRemission(ctx, rem.ID)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestIntegration_CierreConcurrenteConCredito(t *testing.T) {
	// Un crédito y un cierre simultáneos: si el crédito se confirma primero, el cierre lo ve.
	pool := setupPool(t)
	ctx := context.Background()
	order := seedOrder(t, pool)
	uc := newRemissionUseCase(pool)

	rem, err := uc.Create(ctx, dto.CreateRemissionRequest{OrderID: order.ID, Folio: "REM-INT-2"})
	require.NoError(t, err)
	_, err = uc.AddSale(ctx, rem.ID, dto.CreateSaleRequest{Subtotal: amount("100.00"), Tax: amount("0.00")})
	require.NoError(t, err)

	var (
		wg                  sync.WaitGroup
		closeErr, creditErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		closeErr = uc.Close(ctx, rem.ID)
	}()
	go func() {
		defer wg.Done()
		_, creditErr = uc.AddCredit(ctx, rem.ID, dto.CreateCreditRequest{Amount: amount("150.00"), Reason: "Devolución"})
	}()
	wg.Wait()

	// Exactamente uno de los dos debe fallar.
	if closeErr == nil {
		assert.ErrorIs(t, creditErr, domain.ErrInvalidTransition)
	} else {
		assert.NoError(t, creditErr)
		assert.ErrorIs(t, closeErr, domain.ErrCreditsExceedSales)
	}
}
