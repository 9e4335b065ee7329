package remission_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Remisiones-api/internal/application/remission"
	"github.com/jhoicas/Remisiones-api/internal/domain"
)

type stubRenderer struct {
	got *remission.Document
}

func (s *stubRenderer) GenerateRemissionPDF(_ context.Context, doc *remission.Document) ([]byte, error) {
	s.got = doc
	return []byte("%PDF-1.3"), nil
}

func (s *stubRenderer) ExportRemissionXML(_ context.Context, doc *remission.Document) ([]byte, string, error) {
	s.got = doc
	return []byte("<Remision/>"), "abc123", nil
}

func TestDownloadPDF_ArmaDocumentoCompleto(t *testing.T) {
	f := newFixture(t)
	rem := f.createOpen(t, "REM-007")
	f.addSale(t, rem.ID, "100.00", "16.00")
	f.addCredit(t, rem.ID, "16.00")

	r := &stubRenderer{}
	uc := remission.NewDocumentUseCase(f.uc, r, r)

	pdf, filename, err := uc.DownloadPDF(context.Background(), rem.ID)
	require.NoError(t, err)
	assert.Equal(t, "remision_REM-007.pdf", filename)
	assert.NotEmpty(t, pdf)

	require.NotNil(t, r.got)
	assert.Len(t, r.got.Sales, 1)
	assert.Len(t, r.got.Credits, 1)
	assert.Equal(t, "100.00", r.got.Summary.Balance.StringFixed(2))
	assert.Equal(t, "Ferretería López", r.got.Remission.CustomerName)
}

func TestExportXML_DevuelveDigest(t *testing.T) {
	f := newFixture(t)
	rem := f.createOpen(t, "REM-008")
	r := &stubRenderer{}
	uc := remission.NewDocumentUseCase(f.uc, r, r)

	body, digest, filename, err := uc.ExportXML(context.Background(), rem.ID)
	require.NoError(t, err)
	assert.Equal(t, "<Remision/>", string(body))
	assert.Equal(t, "abc123", digest)
	assert.Equal(t, "remision_REM-008.xml", filename)
}

func TestDocument_RemisionInexistente(t *testing.T) {
	f := newFixture(t)
	r := &stubRenderer{}
	uc := remission.NewDocumentUseCase(f.uc, r, r)

	_, _, err := uc.DownloadPDF(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
