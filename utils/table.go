package utils

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const tableColumnWidth = 48

// RenderResultsTable renders records as a terminal table, or as a Markdown
// table when markdown is set.
func RenderResultsTable(records []TranslationRecord, markdown bool) string {
	w := table.NewWriter()
	w.AppendHeader(table.Row{"#", "Source", "Translation", "Error"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: tableColumnWidth},
		{Number: 3, WidthMax: tableColumnWidth},
		{Number: 4, WidthMax: tableColumnWidth},
	})

	failed := 0
	for _, r := range records {
		if r.Error != "" {
			failed++
		}
		w.AppendRow(table.Row{r.Index + 1, r.Source, r.Translation, r.Error})
	}
	w.AppendFooter(table.Row{"", "", "ok", len(records) - failed})

	if markdown {
		return w.RenderMarkdown()
	}
	w.SetStyle(table.StyleLight)
	return w.Render()
}
