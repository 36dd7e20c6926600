package ergast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Row is one flattened record keyed by column name.
type Row map[string]any

// Table is a rectangular query result. Every row carries exactly the table's
// columns; a nil value means the source record omitted that field.
type Table struct {
	Columns []string
	Rows    []Row
}

// RaceTime is the finishing time of a classified race result.
type RaceTime struct {
	Millis string `json:"millis"`
	Time   string `json:"time"`
}

func (t RaceTime) String() string {
	return t.Time
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table's columns.
func (t Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Cell returns the value at row i, column name as text. Missing values are empty.
func (t Table) Cell(i int, name string) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	return Text(t.Rows[i][name])
}

// Column returns every value of the named column in row order.
func (t Table) Column(name string) []any {
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[name]
	}
	return out
}

// Filter returns a table with the same columns holding the rows keep accepts.
func (t Table) Filter(keep func(Row) bool) Table {
	out := Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Records returns the table as text cells, header first.
func (t Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, append([]string(nil), t.Columns...))
	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			record[j] = Text(row[col])
		}
		records = append(records, record)
	}
	return records
}

// MarshalJSON encodes the rows as an array of objects keeping column order.
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range t.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(row[col])
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Text formats a cell value for display.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case RaceTime:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
