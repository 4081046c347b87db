// Package pdf genera el comprobante de venta en PDF.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Sucursal + dirección │ N° venta/fecha │
//	│  CLIENTE: nombre + pago + referencia          │
//	│  TABLA: Cant | Descripción | P.Unit | Total   │
//	│  TOTAL                                         │
//	│  FOOTER: QR con el número de venta            │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sucursales-pos/internal/application/sales"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

var _ sales.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt arma el comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	branch *entity.Branch,
	t *entity.Transaction,
	items []*entity.TransactionItem,
) ([]byte, error) {
	if branch == nil || t == nil {
		return nil, fmt.Errorf("pdf: sucursal y venta son obligatorias")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Comprobante "+t.TransactionNumber, true).
		WithAuthor(branch.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(branch, t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(t))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(t))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(branch *entity.Branch, t *entity.Transaction) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(branch.Name, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(branch.Address, "-"), props.Text{Size: 7, Top: 7, Color: colorGray}),
			text.New("Tel: "+nonEmpty(branch.ContactNumber, "-"), props.Text{Size: 7, Top: 11, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(t.TransactionNumber, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6}),
			text.New("Fecha: "+t.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 7, Align: align.Right, Top: 12, Color: colorGray}),
		),
	)
}

func customerRow(t *entity.Transaction) core.Row {
	name := "-"
	if t.Customer != nil && t.Customer.Name != "" {
		name = t.Customer.Name
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Cliente: "+name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New(fmt.Sprintf("Pago: %s   |   Referencia: %s   |   Estado: %s",
				t.PaymentType, nonEmpty(t.ReferenceNumber, "-"), t.Status,
			), props.Text{Size: 7, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// itemRows una fila por ítem; los servicios no llevan unidad.
func itemRows(items []*entity.TransactionItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		desc := it.Name
		if it.Unit != "" {
			desc += " (" + it.Unit + ")"
		}
		out = append(out, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(desc, props.Text{Size: 7, Align: align.Left, Top: 1})),
			col.New(2).Add(text.New(formatMoney(it.Price), props.Text{Size: 7, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(formatMoney(it.Total), props.Text{Size: 7, Align: align.Right, Top: 1})),
		))
	}
	return out
}

func totalRow(t *entity.Transaction) core.Row {
	return row.New(8).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1})),
		col.New(3).Add(text.New(formatMoney(t.TotalAmount), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1})),
	)
}

func footerRow(t *entity.Transaction) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(t.TransactionNumber, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Gracias por su compra.", props.Text{Style: fontstyle.Bold, Size: 9, Top: 6, Left: 3, Color: colorPrimary}),
			text.New("Presente este comprobante para cualquier devolución.", props.Text{Size: 7, Top: 13, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales con separador de miles.
// Ej: 1234567.5 → "1,234,567.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
