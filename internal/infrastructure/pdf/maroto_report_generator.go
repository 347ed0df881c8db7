// Package pdf implementa la generación del informe PDF del estado de
// inventario con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  RESUMEN: conteos de alertas (sin stock / bajo / caducidad)  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Reactivo | Ref. | Existencia | Mínimo | Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lotes en ventana de caducidad                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/LabStock-api/internal/application/report"
	"github.com/jhoicas/LabStock-api/internal/domain/alerts"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
)

var _ report.InventoryPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 98, Blue: 82}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorAmber   = &props.Color{Red: 190, Green: 130, Blue: 0}
)

// MarotoReportGenerator implementa report.InventoryPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInventoryPDF genera el informe y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryPDF(
	_ context.Context,
	reagents []*entity.Reagent,
	part alerts.AlertPartition,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(summaryRow(part))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(stockHeaderRow())
	for _, r := range stockRows(reagents) {
		m.AddRows(r)
	}

	if len(part.ExpiredLots)+len(part.ExpiringSoon) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(lotsHeaderRow())
		for _, r := range lotRows(part.ExpiredLots, true) {
			m.AddRows(r)
		}
		for _, r := range lotRows(part.ExpiringSoon, false) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("INVENTARIO DE REACTIVOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func summaryRow(part alerts.AlertPartition) core.Row {
	resumen := fmt.Sprintf("Sin stock: %d   |   Stock bajo: %d   |   Caducados: %d   |   Caducan pronto: %d",
		len(part.OutOfStock), len(part.LowStock), len(part.ExpiredLots), len(part.ExpiringSoon))
	return row.New(8).Add(
		col.New(12).Add(
			text.New(resumen, props.Text{Size: 9, Top: 1, Color: colorGray}),
		),
	)
}

func stockHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Reactivo", 5, align.Left),
		h("Referencia", 2, align.Left),
		h("Existencia", 2, align.Right),
		h("Mínimo", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

func stockRows(reagents []*entity.Reagent) []core.Row {
	result := make([]core.Row, 0, len(reagents))
	for _, r := range reagents {
		cls := alerts.ClassifyStock(r.TotalQuantity, r.MinimumStock)
		estadoColor := colorGray
		estado := "OK"
		switch cls.Status {
		case alerts.StockOut:
			estadoColor, estado = colorRed, "SIN STOCK"
		case alerts.StockLow:
			estadoColor, estado = colorAmber, "BAJO"
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.Reference, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d x %s %s", r.TotalQuantity, r.UnitSize.String(), r.Unit),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", r.MinimumStock),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(estado, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: estadoColor,
			})),
		))
	}
	return result
}

func lotsHeaderRow() core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("LOTES EN VENTANA DE CADUCIDAD", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func lotRows(lots []*entity.Lot, expired bool) []core.Row {
	estado := "caduca"
	estadoColor := colorAmber
	if expired {
		estado = "CADUCADO"
		estadoColor = colorRed
	}
	result := make([]core.Row, 0, len(lots))
	for _, l := range lots {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(l.ReagentName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New("Lote "+l.LotNumber, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(
				l.ExpiryDate.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(2).Add(text.New(estado, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: estadoColor,
			})),
		))
	}
	return result
}
