package ergast

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// field projects one flat value out of a JSON object.
type field struct {
	to   string
	from func(obj map[string]any) any
}

// pull lifts fields of a nested object into its parent record, then deletes
// the nested key. A negative index means the key holds an object; otherwise
// it holds an array and the element at index is used. Nil fields copies every
// key of the nested object.
type pull struct {
	key    string
	index  int
	fields []field
}

// rule declares how one endpoint's response becomes a table.
type rule struct {
	path     []any
	pulls    []pull
	columns  []string
	optional []string
	convert  map[string]func(any) any
}

func (p pull) apply(record map[string]any) {
	nested := nestedObject(record[p.key], p.index)
	delete(record, p.key)
	if p.fields == nil {
		maps.Copy(record, nested)
		return
	}
	for _, f := range p.fields {
		if nested == nil {
			record[f.to] = nil
			continue
		}
		record[f.to] = f.from(nested)
	}
}

func nestedObject(v any, index int) map[string]any {
	if index >= 0 {
		list, ok := v.([]any)
		if !ok || index >= len(list) {
			return nil
		}
		v = list[index]
	}
	obj, _ := v.(map[string]any)
	return obj
}

// flatten applies r to a decoded response document.
func flatten(doc any, r rule) (Table, error) {
	raw, err := dig(doc, r.path)
	if err != nil {
		return Table{}, err
	}
	entities, ok := raw.([]any)
	if !ok {
		return Table{}, fmt.Errorf("%w: %s is not a list", ErrParse, pathString(r.path))
	}

	records := make([]map[string]any, 0, len(entities))
	for i, entity := range entities {
		obj, ok := entity.(map[string]any)
		if !ok {
			return Table{}, fmt.Errorf("%w: %s[%d] is not an object", ErrParse, pathString(r.path), i)
		}
		record := maps.Clone(obj)
		for _, p := range r.pulls {
			p.apply(record)
		}
		records = append(records, record)
	}

	columns := append([]string(nil), r.columns...)
	if len(records) > 0 {
		for _, col := range r.optional {
			if _, ok := records[0][col]; ok {
				columns = append(columns, col)
			}
		}
	}

	table := Table{Columns: columns, Rows: make([]Row, 0, len(records))}
	for i, record := range records {
		row := make(Row, len(columns))
		for _, col := range columns {
			v := record[col]
			if conv, ok := r.convert[col]; ok {
				v = conv(v)
			}
			switch v.(type) {
			case map[string]any, []any:
				return Table{}, fmt.Errorf("%w: row %d column %s is not a scalar", ErrParse, i, col)
			}
			row[col] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// dig walks string keys and integer indexes from the document root.
func dig(doc any, path []any) (any, error) {
	cur := doc
	for i, step := range path {
		switch s := step.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: missing %s", ErrParse, pathString(path[:i+1]))
			}
			next, ok := obj[s]
			if !ok {
				return nil, fmt.Errorf("%w: missing %s", ErrParse, pathString(path[:i+1]))
			}
			cur = next
		case int:
			list, ok := cur.([]any)
			if !ok || s >= len(list) {
				return nil, fmt.Errorf("%w: missing %s", ErrParse, pathString(path[:i+1]))
			}
			cur = list[s]
		default:
			return nil, fmt.Errorf("invalid path step %v", step)
		}
	}
	return cur, nil
}

func pathString(path []any) string {
	var b strings.Builder
	for i, step := range path {
		switch s := step.(type) {
		case int:
			b.WriteString("[" + strconv.Itoa(s) + "]")
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			fmt.Fprint(&b, s)
		}
	}
	return b.String()
}

// key reads a possibly nested string-keyed value.
func key(path ...string) func(map[string]any) any {
	return func(obj map[string]any) any {
		var cur any = obj
		for _, k := range path {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[k]
		}
		return cur
	}
}

// displayName joins a driver's given and family names.
func displayName(obj map[string]any) any {
	given, _ := obj["givenName"].(string)
	family, _ := obj["familyName"].(string)
	return given + " " + family
}

// raceTime turns the {millis, time} object into a RaceTime.
func raceTime(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	millis, _ := obj["millis"].(string)
	t, _ := obj["time"].(string)
	return RaceTime{Millis: millis, Time: t}
}
