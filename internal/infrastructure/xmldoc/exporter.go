// Package xmldoc exporta una remisión a XML y calcula el digest SHA-256 de su forma canónica.
// La forma canónica ignora la declaración XML, el orden de atributos y la sintaxis de elementos vacíos.
package xmldoc

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Remisiones-api/internal/application/remission"
)

// Namespace del documento de remisión.
const Namespace = "urn:remisiones:remision:1"

// Exporter implementa remission.XMLExporter.
type Exporter struct {
	indent int // 0 = sin sangría
}

var _ remission.XMLExporter = (*Exporter)(nil)

// NewExporter construye el exportador con la sangría indicada (espacios).
func NewExporter(indent int) *Exporter {
	return &Exporter{indent: indent}
}

// ExportRemissionXML serializa la remisión y devuelve los bytes junto con el digest hex.
func (e *Exporter) ExportRemissionXML(_ context.Context, doc *remission.Document) ([]byte, string, error) {
	if doc == nil || doc.Remission == nil {
		return nil, "", fmt.Errorf("xml: documento vacío")
	}
	xdoc := build(doc)
	if e.indent > 0 {
		xdoc.Indent(e.indent)
	}

	var out bytes.Buffer
	if _, err := xdoc.WriteTo(&out); err != nil {
		return nil, "", fmt.Errorf("xml: serializar: %w", err)
	}
	// La declaración <?xml?> no forma parte de la forma canónica.
	body := etree.NewDocument()
	body.SetRoot(xdoc.Root().Copy())
	rootBytes, err := body.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xml: serializar raíz: %w", err)
	}
	digest, err := Digest(rootBytes)
	if err != nil {
		return nil, "", err
	}
	return out.Bytes(), digest, nil
}

// Digest canonicaliza data (C14N) y devuelve su SHA-256 en hex.
func Digest(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func build(doc *remission.Document) *etree.Document {
	rem := doc.Remission
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("Remision")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("id", rem.ID)
	root.CreateAttr("folio", rem.Folio)
	root.CreateAttr("estado", string(rem.Status))

	root.CreateElement("FechaEmision").SetText(rem.CreatedAt.UTC().Format(time.RFC3339))

	orden := root.CreateElement("Orden")
	orden.CreateAttr("id", rem.OrderID)
	orden.CreateAttr("folio", rem.OrderFolio)

	cliente := root.CreateElement("Cliente")
	cliente.CreateAttr("id", rem.CustomerID)
	cliente.SetText(rem.CustomerName)

	ventas := root.CreateElement("Ventas")
	ventas.CreateAttr("cantidad", strconv.Itoa(len(doc.Sales)))
	for _, s := range doc.Sales {
		v := ventas.CreateElement("Venta")
		v.CreateAttr("id", s.ID)
		v.CreateAttr("fecha", s.CreatedAt.UTC().Format(time.RFC3339))
		v.CreateElement("Subtotal").SetText(s.Subtotal.StringFixed(2))
		v.CreateElement("Impuesto").SetText(s.Tax.StringFixed(2))
		v.CreateElement("Total").SetText(s.Total().StringFixed(2))
	}

	creditos := root.CreateElement("Creditos")
	creditos.CreateAttr("cantidad", strconv.Itoa(len(doc.Credits)))
	for _, c := range doc.Credits {
		el := creditos.CreateElement("Credito")
		el.CreateAttr("id", c.ID)
		el.CreateAttr("fecha", c.CreatedAt.UTC().Format(time.RFC3339))
		el.CreateElement("Monto").SetText(c.Amount.StringFixed(2))
		el.CreateElement("Motivo").SetText(c.Reason)
	}

	totales := root.CreateElement("Totales")
	totales.CreateElement("TotalVendido").SetText(doc.Summary.TotalSales.StringFixed(2))
	totales.CreateElement("TotalCreditos").SetText(doc.Summary.TotalCredits.StringFixed(2))
	totales.CreateElement("Saldo").SetText(doc.Summary.Balance.StringFixed(2))
	return x
}
