package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/mattn/go-runewidth"

	"github.com/five82/paddock/ergast"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 28
)

// tableData converts an ergast table into bubbles table columns and rows.
// Column widths fit the widest cell, clamped to [minColumnWidth, maxColumnWidth].
func tableData(t ergast.Table) ([]table.Column, []table.Row) {
	records := t.Records()
	header := records[0]

	widths := make([]int, len(header))
	for _, record := range records {
		for j, cell := range record {
			widths[j] = max(widths[j], runewidth.StringWidth(cell))
		}
	}

	columns := make([]table.Column, len(header))
	for j, title := range header {
		columns[j] = table.Column{Title: title, Width: min(max(widths[j], minColumnWidth), maxColumnWidth)}
	}

	rows := make([]table.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, table.Row(record))
	}
	return columns, rows
}

// setTable replaces the contents of tbl. Rows are cleared before the columns
// change so the table never renders rows narrower than its column set.
func setTable(tbl *table.Model, t ergast.Table) {
	columns, rows := tableData(t)
	tbl.SetRows(nil)
	tbl.SetColumns(columns)
	tbl.SetRows(rows)
	if tbl.Cursor() >= len(rows) {
		tbl.SetCursor(max(len(rows)-1, 0))
	}
}

// podium returns up to three names from a table ranked by position.
func podium(t ergast.Table) []string {
	if !t.HasColumn("position") {
		return nil
	}
	nameCol := ""
	for _, col := range []string{"driver", "constructor", "name"} {
		if t.HasColumn(col) {
			nameCol = col
			break
		}
	}
	if nameCol == "" {
		return nil
	}
	names := make([]string, 0, 3)
	for i := 0; i < t.Len() && len(names) < 3; i++ {
		if t.Cell(i, "position") != strconv.Itoa(len(names)+1) {
			break
		}
		names = append(names, t.Cell(i, nameCol))
	}
	return names
}
