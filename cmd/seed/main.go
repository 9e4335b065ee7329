// seed pobla la base con clientes, órdenes, remisiones abiertas, ventas y créditos de prueba.
//
// Uso: go run ./cmd/seed [-n 5] [-clientes clientes.csv]
// El CSV (nombre,email) se lee en ISO-8859-1, como lo exporta la hoja de cálculo heredada.
// Las ventas se fechan entre 0 y 30 días atrás para que el reporte diario tenga datos.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
	"github.com/jhoicas/Remisiones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Remisiones-api/pkg/config"
	"github.com/jhoicas/Remisiones-api/pkg/logger"
)

type clienteCSV struct {
	nombre string
	email  string
}

func main() {
	n := flag.Int("n", 5, "clientes a generar si no se indica -clientes")
	csvPath := flag.String("clientes", "", "CSV ISO-8859-1 con nombre,email")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	clientes := generados(*n)
	if *csvPath != "" {
		clientes, err = leerClientes(*csvPath)
		if err != nil {
			log.Fatal().Err(err).Str("archivo", *csvPath).Msg("leer clientes")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	s := seeder{
		customers:  postgres.NewCustomerRepository(pool),
		orders:     postgres.NewOrderRepository(pool),
		remissions: postgres.NewRemissionRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		credits:    postgres.NewCreditAssignmentRepository(pool),
		now:        time.Now(),
		tag:        uuid.NewString()[:8],
	}
	var ventas, creditos int
	for i, c := range clientes {
		v, cr, err := s.cliente(ctx, i+1, c)
		if err != nil {
			log.Fatal().Err(err).Str("cliente", c.nombre).Msg("sembrar cliente")
		}
		ventas += v
		creditos += cr
	}
	log.Info().
		Int("clientes", len(clientes)).
		Int("ventas", ventas).
		Int("creditos", creditos).
		Msg("datos de prueba creados")
}

func generados(n int) []clienteCSV {
	out := make([]clienteCSV, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, clienteCSV{
			nombre: fmt.Sprintf("Cliente de Prueba %d", i),
			email:  fmt.Sprintf("cliente%d@ejemplo.com", i),
		})
	}
	return out
}

// leerClientes decodifica el CSV desde Latin-1. La primera fila se omite si es encabezado.
func leerClientes(path string) ([]clienteCSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseClientes(f)
}

func parseClientes(r io.Reader) ([]clienteCSV, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []clienteCSV
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue
		}
		c := clienteCSV{nombre: strings.TrimSpace(rec[0])}
		if len(rec) > 1 {
			c.email = strings.TrimSpace(rec[1])
		}
		out = append(out, c)
	}
	return out, nil
}

type seeder struct {
	customers  repository.CustomerRepository
	orders     repository.OrderRepository
	remissions repository.RemissionRepository
	sales      repository.SaleRepository
	credits    repository.CreditAssignmentRepository
	now        time.Time
	tag        string // sufijo de folios para poder correr el seed varias veces
}

var (
	impuesto     = decimal.RequireFromString("16.00")
	montoCredito = decimal.RequireFromString("50.00")
)

// cliente crea cliente, orden, remisión abierta, 1..5 ventas y, con probabilidad 1/2, un crédito.
func (s seeder) cliente(ctx context.Context, i int, c clienteCSV) (ventas, creditos int, err error) {
	customer := &entity.Customer{ID: uuid.NewString(), Name: c.nombre, Email: c.email, IsActive: true, CreatedAt: s.now}
	if err := s.customers.Create(ctx, customer); err != nil {
		return 0, 0, err
	}
	order := &entity.Order{ID: uuid.NewString(), CustomerID: customer.ID, Folio: fmt.Sprintf("ORD-%s-%03d", s.tag, i), CreatedAt: s.now}
	if err := s.orders.Create(ctx, order); err != nil {
		return 0, 0, err
	}
	rem := &entity.Remission{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		Folio:     fmt.Sprintf("REM-%s-%03d", s.tag, i),
		Status:    entity.RemissionOpen,
		CreatedAt: s.now,
	}
	if err := s.remissions.Create(ctx, rem); err != nil {
		return 0, 0, err
	}

	ventas = 1 + rand.IntN(5)
	for range ventas {
		sale := &entity.Sale{
			ID:          uuid.NewString(),
			RemissionID: rem.ID,
			Subtotal:    decimal.NewFromInt(int64(100 + rand.IntN(901))).Round(2),
			Tax:         impuesto,
			CreatedAt:   s.now.AddDate(0, 0, -rand.IntN(31)),
		}
		if err := s.sales.Create(ctx, sale); err != nil {
			return 0, 0, err
		}
	}
	if rand.IntN(2) == 0 {
		credit := &entity.CreditAssignment{
			ID:          uuid.NewString(),
			RemissionID: rem.ID,
			Amount:      montoCredito,
			Reason:      "Devolución parcial",
			CreatedAt:   s.now,
		}
		if err := s.credits.Create(ctx, credit); err != nil {
			return 0, 0, err
		}
		creditos = 1
	}
	return ventas, creditos, nil
}
