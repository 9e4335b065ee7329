package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Remisiones-api/internal/application/analytics"
	"github.com/jhoicas/Remisiones-api/internal/application/remission"
	"github.com/jhoicas/Remisiones-api/internal/application/usecase"
	"github.com/jhoicas/Remisiones-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC   *usecase.CustomerUseCase
	OrderUC      *usecase.OrderUseCase
	RemissionUC  *remission.UseCase
	DocumentUC   *remission.DocumentUseCase
	DailySalesUC *analytics.DailySalesUseCase
	Metrics      *metrics.Metrics // opcional
	DB           Pinger           // opcional; sin él /health no consulta almacenamiento
	ServiceName  string
	JWTSecret    string // vacío = rutas /api abiertas
	Log          zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	health := NewHealthHandler(deps.DB, deps.ServiceName, deps.Log)
	app.Get("/health", health.Check)

	var api fiber.Router = app.Group("/api")
	if deps.JWTSecret != "" {
		api = app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireWriteRole())
	}

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Log)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Log)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)

	remissions := api.Group("/remissions")
	remissionHandler := NewRemissionHandler(deps.RemissionUC, deps.DocumentUC, deps.Metrics, deps.Log)
	remissions.Post("/", remissionHandler.Create)
	remissions.Get("/", remissionHandler.List)
	remissions.Get("/:id", remissionHandler.GetByID)
	remissions.Patch("/:id", remissionHandler.UpdateStatus)
	remissions.Delete("/:id", remissionHandler.Delete)
	remissions.Post("/:id/close", remissionHandler.Close)
	remissions.Get("/:id/summary", remissionHandler.Summary)
	remissions.Post("/:id/sales", remissionHandler.AddSale)
	remissions.Get("/:id/sales", remissionHandler.ListSales)
	remissions.Post("/:id/credits", remissionHandler.AddCredit)
	remissions.Get("/:id/credits", remissionHandler.ListCredits)
	if deps.DocumentUC != nil {
		remissions.Get("/:id/pdf", remissionHandler.DownloadPDF)
		remissions.Get("/:id/xml", remissionHandler.ExportXML)
	}

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.DailySalesUC, deps.Metrics, deps.Log)
	reports.Get("/daily-sales", reportHandler.DailySales)
}
