// Package render writes ergast tables to a terminal or a pipe.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/paddock/ergast"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat accepts table, json or csv, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown format %q (want table, json or csv)", s)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Write encodes t to w in format f.
func Write(w io.Writer, t ergast.Table, f Format) error {
	switch f {
	case FormatTable, "":
		return writeTable(w, t)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(t.Records()); err != nil {
			return fmt.Errorf("encode csv: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", f)
}

func writeTable(w io.Writer, t ergast.Table) error {
	records := t.Records()
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(records[0]...).
		Rows(records[1:]...)

	if _, err := fmt.Fprintln(w, tbl.String()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if t.Len() == 0 {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}
	_, err := fmt.Fprintf(w, "%d rows\n", t.Len())
	return err
}
