package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// Table writes rows under headers. Text mode draws a light box table;
// markdown mode writes a pipe table.
func (r *Renderer) Table(headers []string, rows [][]string) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeText {
		r.Println(t.Render())
	} else {
		r.Println(t.RenderMarkdown())
	}
	r.Println("")
}
