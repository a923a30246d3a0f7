package pdf

import (
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/seovista/crm-backend/internal/mapper"
)

type ProposalData struct {
	Proposal mapper.Proposal
	Price    decimal.Decimal // resolved: custom price or pack price
	Features []string
	Client   Party
	Company  Party
}

func Proposal(data ProposalData) ([]byte, error) {
	if data.Client.empty() || data.Company.empty() {
		return nil, ErrMissingData
	}
	p := data.Proposal
	m, err := newDocument("Propuesta: " + p.Title)
	if err != nil {
		return nil, err
	}

	m.AddRows(partyColumns(data.Company, data.Client, "AGENCIA", "CLIENTE")...)
	m.AddRows(separator())

	if p.Description != "" {
		m.AddRows(
			row.New(5).Add(text.NewCol(12, "Descripción", props.Text{Size: 10, Style: fontstyle.Bold})),
			row.New(12).Add(text.NewCol(12, p.Description, props.Text{Size: 9})),
		)
	}
	if len(data.Features) > 0 {
		m.AddRows(row.New(6).Add(
			text.NewCol(12, "Servicios incluidos", props.Text{Size: 10, Style: fontstyle.Bold}),
		))
		for _, f := range data.Features {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			m.AddRows(row.New(5).Add(
				text.NewCol(12, "• "+f, props.Text{Size: 9}),
			))
		}
	}

	// The narrative can run long; maroto paginates the rows automatically.
	if p.AIContent != "" {
		m.AddRows(separator())
		for _, para := range strings.Split(p.AIContent, "\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			m.AddRows(row.New(8).Add(text.NewCol(12, para, props.Text{Size: 9})))
		}
	}

	m.AddRows(
		separator(),
		row.New(10).Add(
			text.NewCol(8, "Precio mensual", props.Text{Size: 12, Style: fontstyle.Bold}),
			text.NewCol(4, Money(data.Price), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
	if p.ExpiresAt != nil {
		m.AddRows(row.New(5).Add(
			text.NewCol(12, "Oferta válida hasta el "+LongDate(*p.ExpiresAt), props.Text{Size: 8, Color: &colorMuted}),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
