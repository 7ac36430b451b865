// Package pdf implementa el reporte PDF de discrepancias de un conteo físico.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sede + nombre del conteo  │  Fecha de aprobación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item | Unidad | Contado | Esperado | Dif. | Valor   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Valor contado / Valor esperado / Discrepancia     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	appcount "github.com/jhoicas/RestoStock-api/internal/application/count"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// CountReportGenerator implementa count.ReportGenerator usando Maroto v2.
type CountReportGenerator struct{}

// NewCountReportGenerator construye el generador.
func NewCountReportGenerator() *CountReportGenerator { return &CountReportGenerator{} }

// GenerateCountReport genera el PDF del reporte y devuelve sus bytes.
func (g *CountReportGenerator) GenerateCountReport(
	_ context.Context,
	count *entity.StockCount,
	store *entity.Store,
	lines []appcount.ReportLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Conteo Físico", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(count, store))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, l := range lines {
		m.AddRows(tableLineRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(count))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: sede + nombre del conteo (izq) y fecha de aprobación (der).
func headerRow(count *entity.StockCount, store *entity.Store) core.Row {
	title := count.Name
	if title == "" {
		title = "Conteo físico"
	}
	approvedAt := ""
	if count.ApprovedAt != nil {
		approvedAt = count.ApprovedAt.Format("02/01/2006 15:04")
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("REPORTE DE CONTEO FÍSICO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Aprobado: "+approvedAt, props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary}
	return row.New(7).Add(
		col.New(4).Add(text.New("Item", header)),
		col.New(1).Add(text.New("Unidad", header)),
		col.New(2).Add(text.New("Contado", headerRight)),
		col.New(2).Add(text.New("Esperado", headerRight)),
		col.New(1).Add(text.New("Dif.", headerRight)),
		col.New(2).Add(text.New("Valor dif.", headerRight)),
	)
}

func tableLineRow(l appcount.ReportLine) core.Row {
	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	diffProps := cellRight
	if l.Discrepancy.IsNegative() {
		diffProps = props.Text{Size: 8, Align: align.Right, Color: colorRed}
	}
	return row.New(6).Add(
		col.New(4).Add(text.New(l.ItemName, cell)),
		col.New(1).Add(text.New(l.Unit, cell)),
		col.New(2).Add(text.New(l.Counted.StringFixed(3), cellRight)),
		col.New(2).Add(text.New(l.Expected.StringFixed(3), cellRight)),
		col.New(1).Add(text.New(l.Discrepancy.StringFixed(3), diffProps)),
		col.New(2).Add(text.New(l.Value.StringFixed(2), diffProps)),
	)
}

func totalsRow(count *entity.StockCount) core.Row {
	discrepancyColor := colorGray
	if count.DiscrepancyValue.IsNegative() {
		discrepancyColor = colorRed
	}
	return row.New(20).Add(
		col.New(8).Add(
			text.New("Valor contado:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1}),
			text.New("Valor esperado:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7}),
			text.New("Discrepancia:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 13}),
		),
		col.New(4).Add(
			text.New(count.TotalValue.StringFixed(2), props.Text{Size: 9, Align: align.Right, Top: 1}),
			text.New(count.ExpectedValue.StringFixed(2), props.Text{Size: 9, Align: align.Right, Top: 7}),
			text.New(count.DiscrepancyValue.StringFixed(2), props.Text{Size: 9, Align: align.Right, Top: 13, Color: discrepancyColor}),
		),
	)
}
