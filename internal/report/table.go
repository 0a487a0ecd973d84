package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func init() {
	// Keep go-pretty's column widths in step with DisplayWidth.
	text.OverrideRuneWidthEastAsianWidth(false)
}

// ErrShapeMismatch matches any *ShapeMismatchError.
var ErrShapeMismatch = errors.New("row shape mismatch")

// ShapeMismatchError reports a body row whose cell count differs from the
// header count.
type ShapeMismatchError struct {
	Row  int // 0-based body row index
	Got  int
	Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("row %d has %d cells, want %d", e.Row, e.Got, e.Want)
}

func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// RenderedTable holds the lines of a box-drawn table, without line endings.
type RenderedTable []string

func (t RenderedTable) String() string {
	var b strings.Builder
	for _, line := range t {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes every line followed by a newline.
func (t RenderedTable) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}

// Renderer lays out headers and rows as an ASCII table:
//
//	+----+-------------+
//	| id | name        |
//	+----+-------------+
//	| 1  | Derek Jones |
//	|    | Jr.         |
//	+----+-------------+
//
// A cell holding line breaks spans several lines of its row.
type Renderer struct {
	// HeaderStyle, when set, decorates header text. Only ANSI escape
	// sequences may be added; anything else widens the column.
	HeaderStyle func(string) string
}

// Render builds the table. Every row must hold exactly len(headers) cells.
func (r Renderer) Render(headers []string, rows [][]string) (RenderedTable, error) {
	for n, row := range rows {
		if len(row) != len(headers) {
			return nil, &ShapeMismatchError{Row: n, Got: len(row), Want: len(headers)}
		}
	}
	if len(headers) == 0 {
		return RenderedTable{}, nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleDefault)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(headers))
	columns := make([]table.ColumnConfig, len(headers))
	for i, h := range headers {
		if r.HeaderStyle != nil {
			h = r.HeaderStyle(h)
		}
		header[i] = h
		columns[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(columns)
	for _, row := range rows {
		cells := make(table.Row, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		tw.AppendRow(cells)
	}

	lines := RenderedTable(strings.Split(tw.Render(), "\n"))
	if len(rows) == 0 {
		// The header separator already closes an empty table.
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
