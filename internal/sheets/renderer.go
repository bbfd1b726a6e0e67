// Package sheets writes ranked results into a Google Spreadsheet. The whole
// sheet is replaced on every run in a single batch update: one request
// clears the grid, the next writes all rows, so readers never see a
// half-written state.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/tabgraf/sheetnews/internal/logger"
	"github.com/tabgraf/sheetnews/internal/metrics"
	"github.com/tabgraf/sheetnews/internal/news"
)

var header = []string{"Title", "Description", "Link", "Published", "Repeats", "Tier"}

type Renderer struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetID       int64
}

func NewRenderer(ctx context.Context, spreadsheetID string, sheetID int64, credentialsFile string) (*Renderer, error) {
	srv, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return &Renderer{srv: srv, spreadsheetID: spreadsheetID, sheetID: sheetID}, nil
}

// Render replaces the sheet contents with the ranked result: header row,
// then the repeated stories, then the unique ones.
func (r *Renderer) Render(ctx context.Context, res news.Result) error {
	rows := buildRows(res)

	requests := []*sheets.Request{
		{
			UpdateCells: &sheets.UpdateCellsRequest{
				// SheetId 0 is a valid grid id and must survive marshalling.
				Range:  &sheets.GridRange{SheetId: r.sheetID, ForceSendFields: []string{"SheetId"}},
				Fields: "*",
			},
		},
		{
			UpdateCells: &sheets.UpdateCellsRequest{
				Start:  &sheets.GridCoordinate{SheetId: r.sheetID, ForceSendFields: []string{"SheetId"}},
				Rows:   rows,
				Fields: "*",
			},
		},
	}

	_, err := r.srv.Spreadsheets.
		BatchUpdate(r.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}

	metrics.Global.AddRowsWritten(int64(len(rows)))
	logger.Info("spreadsheet updated", "rows", len(rows))
	return nil
}

func buildRows(res news.Result) []*sheets.RowData {
	rows := make([]*sheets.RowData, 0, len(res.Repeated)+len(res.Unique)+1)
	rows = append(rows, headerRow())
	for _, e := range res.Repeated {
		rows = append(rows, entryRow(e))
	}
	for _, e := range res.Unique {
		rows = append(rows, entryRow(e))
	}
	return rows
}

func headerRow() *sheets.RowData {
	cells := make([]*sheets.CellData, 0, len(header))
	for _, h := range header {
		c := textCell(h, nil)
		c.UserEnteredFormat = &sheets.CellFormat{
			TextFormat: &sheets.TextFormat{Bold: true},
		}
		cells = append(cells, c)
	}
	return &sheets.RowData{Values: cells}
}

func entryRow(e news.RankedEntry) *sheets.RowData {
	format := tierFormat(e.Tier)

	title := textCell(e.Item.Title, format)
	if len(e.OtherLinks) > 0 {
		title.Note = "Also reported by:\n" + strings.Join(e.OtherLinks, "\n")
	}

	return &sheets.RowData{
		Values: []*sheets.CellData{
			title,
			textCell(e.Item.Description, format),
			textCell(e.Item.Link, format),
			textCell(e.TimeLabel, format),
			numberCell(float64(e.RepeatCount), format),
			textCell(e.Tier.String(), format),
		},
	}
}

func textCell(s string, format *sheets.CellFormat) *sheets.CellData {
	return &sheets.CellData{
		UserEnteredValue:  &sheets.ExtendedValue{StringValue: &s},
		UserEnteredFormat: format,
	}
}

func numberCell(n float64, format *sheets.CellFormat) *sheets.CellData {
	return &sheets.CellData{
		UserEnteredValue:  &sheets.ExtendedValue{NumberValue: &n},
		UserEnteredFormat: format,
	}
}

// tierFormat maps repeat-strength tiers to background intensity. The high
// tier switches to light foreground text for contrast, as the tier hints.
func tierFormat(t news.Tier) *sheets.CellFormat {
	var bg *sheets.Color
	switch t {
	case news.TierHigh:
		bg = &sheets.Color{Red: 0.8, Green: 0.2, Blue: 0.2}
	case news.TierMedium:
		bg = &sheets.Color{Red: 0.98, Green: 0.62, Blue: 0.25}
	case news.TierLow:
		bg = &sheets.Color{Red: 1, Green: 0.9, Blue: 0.55}
	default:
		return nil
	}

	format := &sheets.CellFormat{BackgroundColor: bg}
	if t.LightText() {
		format.TextFormat = &sheets.TextFormat{
			ForegroundColor: &sheets.Color{Red: 1, Green: 1, Blue: 1},
		}
	}
	return format
}
