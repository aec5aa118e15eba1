package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Tabular is implemented by results with a table layout.
type Tabular interface {
	// Table returns the rows to print.
	Table() *Table
	// Data returns the value printed by the json and yaml formats.
	Data() any
}

// TableFormatter renders Tabular values as aligned columns.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders data. *Table and Tabular are laid out as columns; any
// other value is printed as YAML.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case *Table:
		return v.RenderWithOptions(w, f.NoHeaders)
	case Table:
		return v.RenderWithOptions(w, f.NoHeaders)
	case Tabular:
		return v.Table().RenderWithOptions(w, f.NoHeaders)
	default:
		return (&YAMLFormatter{}).Format(w, data)
	}
}

// Table is tabular data with an optional footer.
type Table struct {
	Headers []string
	Rows    [][]string
	Footer  []string
}

// NewTable creates a table with headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetFooter sets a summary line printed after the rows.
func (t *Table) SetFooter(cells ...string) {
	t.Footer = cells
}

// Render renders the table with headers.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table, optionally without headers.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		if err := writeLine(tw, t.Headers); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if err := writeLine(tw, row); err != nil {
			return err
		}
	}
	if len(t.Footer) > 0 {
		if err := writeLine(tw, t.Footer); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeLine(w io.Writer, cells []string) error {
	out := make([]string, len(cells))
	for i, c := range cells {
		if c == "" {
			c = "-"
		}
		out[i] = c
	}
	_, err := fmt.Fprintln(w, strings.Join(out, "\t"))
	return err
}

// KeyValue is a two-column FIELD/VALUE table for single records.
type KeyValue struct {
	Pairs [][2]string
	Value any
}

// Add appends a pair.
func (kv *KeyValue) Add(key, value string) {
	kv.Pairs = append(kv.Pairs, [2]string{key, value})
}

// Table implements Tabular.
func (kv *KeyValue) Table() *Table {
	t := NewTable("FIELD", "VALUE")
	for _, p := range kv.Pairs {
		t.AddRow(p[0], p[1])
	}
	return t
}

// Data implements Tabular.
func (kv *KeyValue) Data() any {
	if kv.Value != nil {
		return kv.Value
	}
	m := make(map[string]string, len(kv.Pairs))
	for _, p := range kv.Pairs {
		m[p[0]] = p[1]
	}
	return m
}
