package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Output formats accepted by Render.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Render writes t to w in the given format. An empty format means table.
func Render(w io.Writer, t *Table, format string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, t)
	case FormatTable, "":
		return renderTable(w, t)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderFailure writes a placeholder for a report whose query failed, so a
// failure is never printed as an empty result.
func RenderFailure(w io.Writer, title string, format string, cause error) error {
	if format == FormatJSON {
		return writeJSON(w, jsonReport{Title: title, Rows: []map[string]any{}, Error: cause.Error()})
	}
	_, err := fmt.Fprintf(w, "%s:\n(query failed: %v)\n\n", title, cause)
	return err
}

func renderTable(w io.Writer, t *Table) error {
	if _, err := fmt.Fprintf(w, "%s:\n", t.Title); err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		_, err := fmt.Fprint(w, "(0 rows)\n\n")
		return err
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	style := table.StyleLight
	// Column labels are printed verbatim.
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = formatValue(v)
		}
		tw.AppendRow(r)
	}

	tw.Render()
	_, err := fmt.Fprintf(w, "(%d rows)\n\n", len(t.Rows))
	return err
}

type jsonReport struct {
	Title string           `json:"title"`
	Rows  []map[string]any `json:"rows"`
	Error string           `json:"error,omitempty"`
}

func renderJSON(w io.Writer, t *Table) error {
	return writeJSON(w, jsonReport{Title: t.Title, Rows: t.Records()})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
