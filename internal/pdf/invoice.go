package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/seovista/crm-backend/internal/mapper"
)

// InvoiceData bundles the invoice with the lookups the layout needs.
type InvoiceData struct {
	Invoice mapper.Invoice
	Concept string // line description, usually the pack or proposal title
	Client  Party
	Company Party
}

// Invoice renders the invoice PDF. Both parties must be present.
func Invoice(data InvoiceData) ([]byte, error) {
	if data.Client.empty() || data.Company.empty() {
		return nil, ErrMissingData
	}
	inv := data.Invoice
	m, err := newDocument("Factura " + inv.InvoiceNumber)
	if err != nil {
		return nil, err
	}

	m.AddRows(statusBadge(inv.Status))
	m.AddRows(
		row.New(5).Add(
			text.NewCol(6, "Fecha de emisión: "+LongDate(inv.IssueDate), props.Text{Size: 9}),
		),
	)
	if inv.DueDate != nil {
		m.AddRows(row.New(5).Add(
			text.NewCol(6, "Fecha de vencimiento: "+LongDate(*inv.DueDate), props.Text{Size: 9}),
		))
	}
	m.AddRows(separator())
	m.AddRows(partyColumns(data.Company, data.Client, "EMISOR", "CLIENTE")...)
	m.AddRows(separator())

	// line items table: one row per base amount, then tax and total
	header := row.New(8).Add(
		text.NewCol(8, "Concepto", props.Text{Size: 9, Style: fontstyle.Bold, Color: &colorWhite}),
		text.NewCol(4, "Importe", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: &colorWhite}),
	).WithStyle(&props.Cell{BackgroundColor: &colorHeader})
	concept := data.Concept
	if concept == "" {
		concept = "Servicios SEO"
	}
	m.AddRows(
		header,
		row.New(7).Add(
			text.NewCol(8, concept, props.Text{Size: 9}),
			text.NewCol(4, Money(inv.BaseAmount), props.Text{Size: 9, Align: align.Right}),
		),
		row.New(6).Add(
			col.New(6),
			text.NewCol(3, "Base imponible", props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, Money(inv.BaseAmount), props.Text{Size: 9, Align: align.Right}),
		),
		row.New(6).Add(
			col.New(6),
			text.NewCol(3, "IVA ("+Percent(inv.TaxRate)+")", props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, Money(inv.TaxAmount), props.Text{Size: 9, Align: align.Right}),
		),
		row.New(8).Add(
			col.New(6),
			text.NewCol(3, "TOTAL", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(3, Money(inv.TotalAmount), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		),
	)

	if inv.PaymentDate != nil {
		m.AddRows(row.New(6).Add(
			text.NewCol(12, "Pagada el "+LongDate(*inv.PaymentDate), props.Text{Size: 9, Color: &colorPaid}),
		))
	}
	if inv.Notes != "" {
		m.AddRows(
			separator(),
			row.New(5).Add(text.NewCol(12, "Observaciones", props.Text{Size: 9, Style: fontstyle.Bold})),
			row.New(10).Add(text.NewCol(12, inv.Notes, props.Text{Size: 9})),
		)
	}
	if !inv.TotalAmount.Equal(decimal.Zero) && data.Company.TaxID != "" {
		m.AddRows(row.New(5).Add(
			text.NewCol(12, "IVA incluido según el tipo vigente.", props.Text{Size: 7, Color: &colorMuted}),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
