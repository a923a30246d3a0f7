package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/seovista/crm-backend/internal/mapper"
)

// ReportMetric is one dated visibility snapshot shown in the report chart
// table.
type ReportMetric struct {
	Date            time.Time
	OrganicTraffic  int
	KeywordsTop10   int
	DomainAuthority int
}

type ReportData struct {
	Client   Party
	Company  Party
	Period   string // e.g. "Agosto 2026"
	Keywords []mapper.Keyword
	Metrics  []ReportMetric
}

// Report renders the monthly SEO progress report.
func Report(data ReportData) ([]byte, error) {
	if data.Client.empty() || data.Company.empty() {
		return nil, ErrMissingData
	}
	title := "Informe SEO"
	if data.Period != "" {
		title += " · " + data.Period
	}
	m, err := newDocument(title)
	if err != nil {
		return nil, err
	}

	m.AddRows(partyColumns(data.Company, data.Client, "AGENCIA", "CLIENTE")...)
	m.AddRows(separator())

	if len(data.Metrics) > 0 {
		m.AddRows(
			row.New(7).Add(text.NewCol(12, "Evolución", props.Text{Size: 11, Style: fontstyle.Bold})),
			row.New(7).Add(
				text.NewCol(3, "Fecha", props.Text{Size: 9, Style: fontstyle.Bold, Color: &colorWhite}),
				text.NewCol(3, "Tráfico orgánico", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: &colorWhite}),
				text.NewCol(3, "Keywords top 10", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: &colorWhite}),
				text.NewCol(3, "Autoridad", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: &colorWhite}),
			).WithStyle(&props.Cell{BackgroundColor: &colorHeader}),
		)
		for _, mt := range data.Metrics {
			m.AddRows(row.New(6).Add(
				text.NewCol(3, mt.Date.Format("02/01/2006"), props.Text{Size: 9}),
				text.NewCol(3, fmt.Sprintf("%d", mt.OrganicTraffic), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(3, fmt.Sprintf("%d", mt.KeywordsTop10), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(3, fmt.Sprintf("%d", mt.DomainAuthority), props.Text{Size: 9, Align: align.Right}),
			))
		}
		m.AddRows(separator())
	}

	if len(data.Keywords) > 0 {
		m.AddRows(
			row.New(7).Add(text.NewCol(12, "Posicionamiento de keywords", props.Text{Size: 11, Style: fontstyle.Bold})),
			row.New(7).Add(
				text.NewCol(6, "Keyword", props.Text{Size: 9, Style: fontstyle.Bold, Color: &colorWhite}),
				text.NewCol(2, "Posición", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: &colorWhite}),
				text.NewCol(2, "Anterior", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: &colorWhite}),
				text.NewCol(2, "Volumen", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: &colorWhite}),
			).WithStyle(&props.Cell{BackgroundColor: &colorHeader}),
		)
		for _, kw := range data.Keywords {
			m.AddRows(row.New(6).Add(
				text.NewCol(6, kw.Keyword, props.Text{Size: 9}),
				text.NewCol(2, intOrDash(kw.Position), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, intOrDash(kw.PreviousPosition), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, intOrDash(kw.SearchVolume), props.Text{Size: 9, Align: align.Right}),
			))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}
