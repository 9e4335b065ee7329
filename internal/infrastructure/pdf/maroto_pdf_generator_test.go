package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Remisiones-api/internal/application/remission"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	rules "github.com/jhoicas/Remisiones-api/internal/domain/remission"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "$0.00",
		"5.5":        "$5.50",
		"999.99":     "$999.99",
		"1000":       "$1,000.00",
		"1234567.89": "$1,234,567.89",
		"-3":         "-$3.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateRemissionPDF_GeneraBytes(t *testing.T) {
	now := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	sales := []*entity.Sale{
		{Subtotal: decimal.RequireFromString("100.00"), Tax: decimal.RequireFromString("16.00"), CreatedAt: now},
	}
	credits := []*entity.CreditAssignment{
		{Amount: decimal.RequireFromString("16.00"), Reason: "Devolución parcial", CreatedAt: now},
	}
	doc := &remission.Document{
		Remission: &entity.Remission{
			Folio: "REM-001", Status: entity.RemissionClosed, CreatedAt: now,
			OrderFolio: "ORD-001", CustomerName: "Cliente de Prueba 1",
		},
		Sales:       sales,
		Credits:     credits,
		Summary:     rules.Summarize(sales, credits),
		GeneratedAt: now,
	}

	out, err := NewMarotoPDFGenerator("remisiones-api").GenerateRemissionPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateRemissionPDF_SinVentas(t *testing.T) {
	doc := &remission.Document{
		Remission: &entity.Remission{Folio: "REM-002", Status: entity.RemissionOpen},
	}
	out, err := NewMarotoPDFGenerator("remisiones-api").GenerateRemissionPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateRemissionPDF_DocumentoNil(t *testing.T) {
	_, err := NewMarotoPDFGenerator("x").GenerateRemissionPDF(context.Background(), nil)
	assert.Error(t, err)
}
