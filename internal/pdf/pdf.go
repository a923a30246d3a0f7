// Package pdf draws the documents the agency sends out: invoices,
// proposals, contracts and SEO reports. Rendering is a deterministic single
// pass from entity plus related lookups to a finished byte blob.
package pdf

import (
	"errors"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ErrMissingData is returned when a prerequisite entity (client, company
// settings) is absent; rendering aborts with no partial output.
var ErrMissingData = errors.New("pdf: missing client or company data")

// Party holds the identity block for either side of a document.
type Party struct {
	Name    string
	TaxID   string
	Address string
	City    string
	Email   string
	Phone   string
}

func (p Party) empty() bool { return p.Name == "" }

// newDocument builds the shared page setup: margins, page numbers, and a
// footer with the generation timestamp on every page.
func newDocument(title string) (core.Maroto, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{Pattern: "Página {current} de {total}", Place: props.Bottom}).
		Build()
	m := maroto.New(cfg)
	err := m.RegisterFooter(
		row.New(6).Add(
			text.NewCol(12, "Generado el "+LongDate(time.Now()), props.Text{
				Size: 7, Align: align.Left, Color: &colorMuted,
			}),
		),
	)
	if err != nil {
		return nil, err
	}
	m.AddRows(
		row.New(12).Add(
			text.NewCol(12, title, props.Text{
				Size: 18, Style: fontstyle.Bold, Color: &colorHeader,
			}),
		),
	)
	return m, nil
}

// partyColumns renders the two identity blocks side by side.
func partyColumns(left, right Party, leftLabel, rightLabel string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(
			text.NewCol(6, leftLabel, props.Text{Size: 9, Style: fontstyle.Bold, Color: &colorMuted}),
			text.NewCol(6, rightLabel, props.Text{Size: 9, Style: fontstyle.Bold, Color: &colorMuted}),
		),
		row.New(5).Add(
			text.NewCol(6, left.Name, props.Text{Size: 10, Style: fontstyle.Bold}),
			text.NewCol(6, right.Name, props.Text{Size: 10, Style: fontstyle.Bold}),
		),
	}
	pairs := [][2]string{
		{left.TaxID, right.TaxID},
		{left.Address, right.Address},
		{left.City, right.City},
		{left.Email, right.Email},
		{left.Phone, right.Phone},
	}
	for _, pair := range pairs {
		if pair[0] == "" && pair[1] == "" {
			continue
		}
		rows = append(rows, row.New(4).Add(
			text.NewCol(6, pair[0], props.Text{Size: 9}),
			text.NewCol(6, pair[1], props.Text{Size: 9}),
		))
	}
	return rows
}

func statusBadge(status string) core.Row {
	badge := StatusColor(status)
	return row.New(8).Add(
		col.New(9),
		text.NewCol(3, StatusLabel(status), props.Text{
			Size: 10, Style: fontstyle.Bold, Align: align.Center, Color: &colorWhite,
		}).WithStyle(&props.Cell{BackgroundColor: &badge}),
	)
}

func separator() core.Row {
	return row.New(4).Add(line.NewCol(12, props.Line{Color: &colorMuted, SizePercent: 100}))
}
