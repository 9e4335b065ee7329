package report_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	"github.com/jhoicas/Remisiones-api/internal/domain/report"
)

var mx = time.FixedZone("CST", -6*3600)

func saleAt(t time.Time, subtotal, tax string) *entity.Sale {
	return &entity.Sale{
		Subtotal:  decimal.RequireFromString(subtotal),
		Tax:       decimal.RequireFromString(tax),
		CreatedAt: t,
	}
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, mx) }

// ──────────────────────────────────────────────────────────────────────────────
// ParseRange
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRange_ParametrosFaltantes(t *testing.T) {
	cases := []struct{ from, to string }{
		{"2026-02-01", ""}, // escenario D: solo from
		{"", "2026-02-09"},
		{"", ""},
		{"   ", "2026-02-09"},
		{"09/02/2026", "2026-02-10"},
		{"2026-02-01", "mañana"},
	}
	for _, c := range cases {
		_, err := report.ParseRange(c.from, c.to, mx)
		assert.ErrorIs(t, err, domain.ErrMissingParameter, "from=%q to=%q", c.from, c.to)
	}
}

func TestParseRange_VentanaSemiabierta(t *testing.T) {
	r, err := report.ParseRange("2026-02-01", "2026-02-09", mx)
	require.NoError(t, err)
	assert.Equal(t, day(2026, 2, 1), r.Start())
	assert.Equal(t, day(2026, 2, 10), r.End())
	assert.Equal(t, 9, r.Days())
}

func TestRange_Days(t *testing.T) {
	r, err := report.ParseRange("0001-01-01", "9999-12-31", mx)
	require.NoError(t, err)
	assert.Equal(t, 3652059, r.Days())

	assert.Equal(t, 1, report.NewRange(day(2026, 2, 9), day(2026, 2, 9)).Days())
	assert.Equal(t, 0, report.NewRange(day(2026, 2, 10), day(2026, 2, 9)).Days())
	assert.Equal(t, 366, report.NewRange(day(2028, 1, 1), day(2028, 12, 31)).Days())
}

func TestRange_Days_CambioDeHorario(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("zona horaria no disponible: %v", err)
	}
	// 8 de marzo de 2026 dura 23 horas y 1 de noviembre 25 en Nueva York.
	spring, err := report.ParseRange("2026-03-07", "2026-03-09", ny)
	require.NoError(t, err)
	assert.Equal(t, 3, spring.Days())

	fall, err := report.ParseRange("2026-10-31", "2026-11-02", ny)
	require.NoError(t, err)
	assert.Equal(t, 3, fall.Days())
}

func TestRange_Contains_IncluyeUltimoDiaCompleto(t *testing.T) {
	r := report.NewRange(day(2026, 2, 1), day(2026, 2, 9))

	assert.True(t, r.Contains(day(2026, 2, 1)), "inicio inclusivo")
	assert.True(t, r.Contains(time.Date(2026, 2, 9, 23, 59, 59, 999, mx)), "todo el último día")
	assert.False(t, r.Contains(day(2026, 2, 10)), "fin exclusivo")
	assert.False(t, r.Contains(day(2026, 2, 1).Add(-time.Nanosecond)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregate
// ──────────────────────────────────────────────────────────────────────────────

// Escenario C: venta hoy 12:00 (100) y ayer 12:00 (200), rango [ayer, mañana].
func TestAggregate_AgrupaPorDia(t *testing.T) {
	today := day(2026, 10, 15)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	sales := []*entity.Sale{
		saleAt(today.Add(12*time.Hour), "100", "0"),
		saleAt(yesterday.Add(12*time.Hour), "200", "0"),
	}

	out := report.Aggregate(report.NewRange(yesterday, tomorrow), sales)
	require.Len(t, out, 2)

	assert.Equal(t, yesterday, out[0].Date)
	assert.Equal(t, "200.00", out[0].TotalSales.StringFixed(2))
	assert.Equal(t, 1, out[0].SalesCount)

	assert.Equal(t, today, out[1].Date)
	assert.Equal(t, "100.00", out[1].TotalSales.StringFixed(2))
}

func TestAggregate_TotalesEImpuestos(t *testing.T) {
	d := day(2026, 3, 5)
	out := report.Aggregate(report.NewRange(d, d), []*entity.Sale{
		saleAt(d.Add(1*time.Hour), "100.00", "16.00"),
		saleAt(d.Add(23*time.Hour), "0.10", "0.20"),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "116.30", out[0].TotalSales.StringFixed(2))
	assert.Equal(t, "16.20", out[0].TotalTax.StringFixed(2))
	assert.Equal(t, 2, out[0].SalesCount)
}

func TestAggregate_ExcluyeFueraDeVentana(t *testing.T) {
	from, to := day(2026, 3, 1), day(2026, 3, 2)
	out := report.Aggregate(report.NewRange(from, to), []*entity.Sale{
		saleAt(from.Add(-time.Second), "1", "0"),
		saleAt(to.AddDate(0, 0, 1), "1", "0"),
		saleAt(to.Add(23*time.Hour+59*time.Minute), "5", "0"),
	})
	require.Len(t, out, 1)
	assert.Equal(t, to, out[0].Date)
	assert.Equal(t, "5.00", out[0].TotalSales.StringFixed(2))
}

func TestAggregate_ZonaHorariaDelRango(t *testing.T) {
	// 2026-03-02 03:00 UTC es 2026-03-01 21:00 en UTC-6.
	d := day(2026, 3, 1)
	out := report.Aggregate(report.NewRange(d, d), []*entity.Sale{
		saleAt(time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC), "10", "0"),
	})
	require.Len(t, out, 1)
	assert.Equal(t, d, out[0].Date)
}

func TestAggregate_SinVentas(t *testing.T) {
	out := report.Aggregate(report.NewRange(day(2026, 1, 1), day(2026, 1, 31)), nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

// Propiedad: la suma de sales_count es igual al número de ventas dentro de la ventana
// y la salida está ordenada estrictamente ascendente sin fechas duplicadas.
func TestAggregate_PropiedadesConteoYOrden(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := day(2026, 1, 1)

	for i := 0; i < 50; i++ {
		from := base.AddDate(0, 0, rng.Intn(20))
		to := from.AddDate(0, 0, rng.Intn(10))
		r := report.NewRange(from, to)

		var sales []*entity.Sale
		inWindow := 0
		for j := 0; j < 100; j++ {
			ts := base.Add(time.Duration(rng.Int63n(int64(40 * 24 * time.Hour))))
			sales = append(sales, saleAt(ts, "10.00", "1.60"))
			if !ts.Before(r.Start()) && ts.Before(r.End()) {
				inWindow++
			}
		}

		out := report.Aggregate(r, sales)
		total := 0
		for k, g := range out {
			total += g.SalesCount
			assert.True(t, r.Contains(g.Date), "grupo fuera de rango: %s", g.Date)
			if k > 0 {
				assert.True(t, out[k-1].Date.Before(g.Date), "orden estrictamente ascendente")
			}
		}
		assert.Equal(t, inWindow, total)
	}
}
