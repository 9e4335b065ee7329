// @title           Remisiones API
// @version         1.0
// @description     API de remisiones: alta, ventas, créditos, cierre validado y reporte de ventas diarias.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
// @description     Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/Remisiones-api/docs"
	"github.com/jhoicas/Remisiones-api/internal/application/analytics"
	"github.com/jhoicas/Remisiones-api/internal/application/remission"
	"github.com/jhoicas/Remisiones-api/internal/application/usecase"
	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
	"github.com/jhoicas/Remisiones-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Remisiones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Remisiones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Remisiones-api/internal/infrastructure/xmldoc"
	httpRouter "github.com/jhoicas/Remisiones-api/internal/interfaces/http"
	"github.com/jhoicas/Remisiones-api/pkg/config"
	"github.com/jhoicas/Remisiones-api/pkg/logger"
	"github.com/jhoicas/Remisiones-api/pkg/metrics"
)

// storage agrupa los repositorios del backend elegido con STORAGE.
type storage struct {
	customers  repository.CustomerRepository
	orders     repository.OrderRepository
	remissions repository.RemissionRepository
	sales      repository.SaleRepository
	credits    repository.CreditAssignmentRepository
	reports    repository.ReportRepository
	tx         remission.TxRunner
	db         httpRouter.Pinger
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.Storage).
		Str("report_aggregation", cfg.Report.Aggregation).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	loc, err := cfg.Report.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del reporte")
	}

	customerUC := usecase.NewCustomerUseCase(store.customers)
	orderUC := usecase.NewOrderUseCase(store.orders, store.customers)
	remissionUC := remission.NewUseCase(store.tx, store.remissions, store.orders, store.sales, store.credits)
	documentUC := remission.NewDocumentUseCase(
		remissionUC,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		xmldoc.NewExporter(2),
	)
	dailySalesUC := analytics.NewDailySalesUseCase(store.reports, store.sales, analytics.DailySalesConfig{
		Mode:         cfg.Report.Aggregation,
		Location:     loc,
		MaxRangeDays: cfg.Report.MaxRangeDays,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{ContextKey: logger.RequestIDKey}))
	app.Use(log.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Remisiones API",
	}))

	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: las rutas /api no exigen token")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:   customerUC,
		OrderUC:      orderUC,
		RemissionUC:  remissionUC,
		DocumentUC:   documentUC,
		DailySalesUC: dailySalesUC,
		Metrics:      metrics.New(),
		DB:           store.db,
		ServiceName:  cfg.App.Name,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == "memory" {
		log.Warn().Msg("STORAGE=memory: los datos se pierden al reiniciar")
		m := memory.NewStore()
		return &storage{
			customers:  m.Customers(),
			orders:     m.Orders(),
			remissions: m.Remissions(),
			sales:      m.Sales(),
			credits:    m.Credits(),
			reports:    m.Reports(),
			tx:         m.TxRunner(),
			db:         m,
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		customers:  postgres.NewCustomerRepository(pool),
		orders:     postgres.NewOrderRepository(pool),
		remissions: postgres.NewRemissionRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		credits:    postgres.NewCreditAssignmentRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		tx:         postgres.NewTxRunner(pool),
		db:         pool,
		close:      pool.Close,
	}, nil
}
