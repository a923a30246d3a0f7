package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/seovista/crm-backend/internal/mapper"
)

type ContractData struct {
	Contract mapper.Contract
	Client   Party
	Company  Party
}

func Contract(data ContractData) ([]byte, error) {
	if data.Client.empty() || data.Company.empty() {
		return nil, ErrMissingData
	}
	c := data.Contract
	m, err := newDocument(c.Title)
	if err != nil {
		return nil, err
	}

	m.AddRows(partyColumns(data.Company, data.Client, "PRESTADOR", "CLIENTE")...)
	m.AddRows(separator())

	period := "Inicio: " + LongDate(c.StartDate)
	if c.EndDate != nil {
		period += "   Fin: " + LongDate(*c.EndDate)
	}
	m.AddRows(
		row.New(5).Add(text.NewCol(12, period, props.Text{Size: 9})),
		row.New(5).Add(
			text.NewCol(6, "Fase inicial: "+Money(c.SetupFee), props.Text{Size: 9}),
			text.NewCol(6, "Cuota mensual: "+Money(c.MonthlyFee), props.Text{Size: 9}),
		),
		separator(),
	)

	// sections arrive ordered from the mapper
	for _, s := range c.Sections {
		m.AddRows(
			row.New(7).Add(text.NewCol(12, s.Title, props.Text{Size: 11, Style: fontstyle.Bold})),
			row.New(14).Add(text.NewCol(12, s.Content, props.Text{Size: 9})),
		)
	}

	m.AddRows(separator())
	clientSig := "Pendiente de firma"
	if c.SignedByClient {
		clientSig = "Firmado"
	}
	proSig := "Pendiente de firma"
	if c.SignedByProfessional {
		proSig = "Firmado"
	}
	m.AddRows(
		row.New(6).Add(
			text.NewCol(6, "El cliente: "+clientSig, props.Text{Size: 9, Align: align.Left}),
			text.NewCol(6, "El prestador: "+proSig, props.Text{Size: 9, Align: align.Right}),
		),
	)
	if c.SignedAt != nil {
		m.AddRows(row.New(5).Add(
			text.NewCol(12, "Firmado el "+LongDate(*c.SignedAt), props.Text{Size: 8, Color: &colorMuted}),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
