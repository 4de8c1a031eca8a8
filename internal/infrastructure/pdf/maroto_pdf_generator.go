// Package pdf implementa el render de la guía de despacho con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Guía de despacho + N° documento + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN: bodega de origen                                    │
//	│  DESTINO: bodega de destino                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Código de barras | Calidad | Masa (kg)           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: fardos capturados / masa total                     │
//	│  FOOTER: código de barras del documento                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/barcode"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appdocument "github.com/jhoicas/Logistica-api/internal/application/document"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa document.DispatchNotePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDispatchNotePDF genera el PDF de la guía y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDispatchNotePDF(
	_ context.Context,
	doc *entity.MovementDocument,
	source, destination *entity.Warehouse,
	lines []appdocument.DispatchLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de Despacho", true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(warehousesRow(source, destination))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de fardos
	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lines) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc, lines))

	// Footer con el código de barras del documento
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de documento + fecha (der).
func headerRow(doc *entity.MovementDocument) core.Row {
	fecha := doc.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("GUÍA DE DESPACHO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(kindLabel(doc.Kind), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DOCUMENTO DE MOVIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// warehousesRow: bodega de origen y destino lado a lado.
func warehousesRow(source, destination *entity.Warehouse) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("ORIGEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(warehouseLabel(source), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(warehouseAddress(source), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(warehouseLabel(destination), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(warehouseAddress(destination), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de fardos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Código de barras", 6, align.Left),
		h("Calidad", 2, align.Center),
		h("Masa (kg)", 3, align.Right),
	)
}

// tableDetailRows: una fila por fardo despachado.
func tableDetailRows(lines []appdocument.DispatchLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.Barcode,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.Grade,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				l.Mass.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: fardos capturados y masa total alineados a la derecha.
func totalsRow(doc *entity.MovementDocument, lines []appdocument.DispatchLineForPDF) core.Row {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Mass)
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(20).Add(
		col.New(3),
		col.New(4).Add(
			label("Fardos capturados:"),
			label("Fardos esperados:"),
			grandLabel("MASA TOTAL (kg):"),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", doc.CapturedUnitCount)),
			value(expectedLabel(doc.ExpectedUnitCount)),
			grandValue(total.StringFixed(2)),
		),
		col.New(2),
	)
}

// footerRow: código de barras del documento para reimpresión y recepción.
func footerRow(doc *entity.MovementDocument) core.Row {
	return row.New(22).Add(
		col.New(4).Add(code.NewBar(doc.ID, props.Barcode{
			Type:    barcode.Code128,
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Escanee el código para recibir esta guía\nen la bodega de destino.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Documento generado por el núcleo logístico.\nConserve esta guía durante el transporte.", props.Text{
				Size: 7, Top: 14, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func kindLabel(kind string) string {
	switch kind {
	case entity.DocumentKindDispatch:
		return "Despacho entre bodegas"
	case entity.DocumentKindReceipt:
		return "Nota de recepción"
	case entity.DocumentKindMissingReceipt:
		return "Recepción de faltantes"
	}
	return kind
}

func warehouseLabel(w *entity.Warehouse) string {
	if w == nil {
		return "—"
	}
	return w.Name
}

func warehouseAddress(w *entity.Warehouse) string {
	if w == nil || w.Address == "" {
		return ""
	}
	return w.Address
}

func expectedLabel(expected int) string {
	if expected <= 0 {
		return "—"
	}
	return fmt.Sprintf("%d", expected)
}
