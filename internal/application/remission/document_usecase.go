package remission

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	rules "github.com/jhoicas/Remisiones-api/internal/domain/remission"
)

// Document datos completos de una remisión para su representación impresa o exportada.
type Document struct {
	Remission   *entity.Remission
	Sales       []*entity.Sale
	Credits     []*entity.CreditAssignment
	Summary     rules.Summary
	GeneratedAt time.Time
}

// DocumentUseCase genera el PDF y el XML de una remisión.
type DocumentUseCase struct {
	remissions *UseCase
	pdf        PDFGenerator
	xml        XMLExporter
}

// NewDocumentUseCase construye el caso de uso. Reutiliza los repos de UseCase.
func NewDocumentUseCase(remissions *UseCase, pdf PDFGenerator, xml XMLExporter) *DocumentUseCase {
	return &DocumentUseCase{remissions: remissions, pdf: pdf, xml: xml}
}

// DownloadPDF devuelve el PDF de la remisión y el nombre de archivo sugerido.
// Retorna domain.ErrNotFound si la remisión no existe.
func (uc *DocumentUseCase) DownloadPDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.GenerateRemissionPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("remision_%s.pdf", doc.Remission.Folio), nil
}

// ExportXML devuelve el XML de la remisión, su digest canónico y el nombre de archivo sugerido.
func (uc *DocumentUseCase) ExportXML(ctx context.Context, id string) (xmlBytes []byte, digest, filename string, err error) {
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", "", err
	}
	xmlBytes, digest, err = uc.xml.ExportRemissionXML(ctx, doc)
	if err != nil {
		return nil, "", "", fmt.Errorf("xml: exportación fallida: %w", err)
	}
	return xmlBytes, digest, fmt.Sprintf("remision_%s.xml", doc.Remission.Folio), nil
}

func (uc *DocumentUseCase) load(ctx context.Context, id string) (*Document, error) {
	base := uc.remissions
	rem, err := base.get(ctx, base.remissions, id)
	if err != nil {
		return nil, err
	}
	sales, err := base.sales.ListByRemission(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener ventas: %w", err)
	}
	credits, err := base.credits.ListByRemission(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener créditos: %w", err)
	}
	return &Document{
		Remission:   rem,
		Sales:       sales,
		Credits:     credits,
		Summary:     rules.Summarize(sales, credits),
		GeneratedAt: base.now(),
	}, nil
}
