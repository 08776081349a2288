package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a summary PDF of the visible quotation list using
// maroto/v2. It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m)
	for i, r := range data.Rows {
		addTableRow(m, r, i%2 == 1)
	}
	if len(data.Rows) == 0 {
		m.AddRows(
			row.New(10).Add(
				col.New(12).Add(
					text.New("No quotations match the selected filters.", props.Text{
						Size:  9,
						Align: align.Center,
						Color: &props.Color{Red: 120, Green: 120, Blue: 120},
					}),
				),
			),
		)
	}
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the title, filter summary and generation time.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New(data.Subtitle, props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("%d quotations", len(data.Rows)), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row.
func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Quotation No", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Segment", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Customer", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Route", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Created By", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Location", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Date", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Freight", headerText)).WithStyle(&headerCell),
		),
	)
}

// addTableRow adds one quotation row; alternate rows are shaded.
func addTableRow(m core.Maroto, r ExportRow, shaded bool) {
	baseText := props.Text{
		Size:  7,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right
	idText := leftText
	idText.Style = fontstyle.Bold

	cols := []core.Col{
		col.New(1).Add(text.New(fmt.Sprintf("%d", r.Index), baseText)),
		col.New(2).Add(text.New(r.ID, idText)),
		col.New(1).Add(text.New(r.Segment, leftText)),
		col.New(2).Add(text.New(r.Customer, leftText)),
		col.New(2).Add(text.New(r.Route, leftText)),
		col.New(1).Add(text.New(r.CreatedBy, leftText)),
		col.New(1).Add(text.New(r.Location, baseText)),
		col.New(1).Add(text.New(r.CreatedDate, baseText)),
		col.New(1).Add(text.New(r.FreightTotal, rightText)),
	}

	if shaded {
		cellStyle := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
		for i := range cols {
			cols[i] = cols[i].WithStyle(cellStyle)
		}
	}

	m.AddRows(row.New(7).Add(cols...))
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.GeneratedAt),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
