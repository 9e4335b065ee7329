package remission

import (
	"context"

	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD (read committed o superior),
// pasando repositorios atados a esa tx. El cierre lee ventas/créditos y persiste el estado
// dentro de la misma tx.
type TxRunner interface {
	RunRemission(ctx context.Context, fn func(
		remissionRepo repository.RemissionRepository,
		saleRepo repository.SaleRepository,
		creditRepo repository.CreditAssignmentRepository,
	) error) error
}

// PDFGenerator genera la representación imprimible de una remisión.
type PDFGenerator interface {
	GenerateRemissionPDF(ctx context.Context, doc *Document) ([]byte, error)
}

// XMLExporter serializa una remisión a XML y devuelve el digest SHA-256 (hex) de su forma canónica.
type XMLExporter interface {
	ExportRemissionXML(ctx context.Context, doc *Document) (xmlBytes []byte, digest string, err error)
}
