package render

import (
	"fmt"
	"io"

	"table_spider/internal/config"
	"table_spider/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes result to w. The grid has no column names; in the
// default format rows are numbered and columns lettered by position.
func Render(w io.Writer, result *models.TabularResult, format string) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	for _, row := range result.Rows() {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		t.AppendRow(r)
	}

	switch format {
	case config.FormatTable, "":
		t.SetAutoIndex(true)
		t.SetStyle(table.StyleRounded)
		t.Render()
	case config.FormatCSV:
		t.RenderCSV()
	case config.FormatMarkdown:
		t.RenderMarkdown()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
