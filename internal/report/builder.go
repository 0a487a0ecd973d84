// Package report turns table listings, column metadata and row data into
// box-drawn console tables.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"dbtable/internal/introspect"
)

// Inspector provides the schema side of a report.
type Inspector interface {
	ListTables(ctx context.Context) ([]introspect.TableSummary, error)
	Describe(ctx context.Context, table string) ([]introspect.ColumnMeta, error)
}

// RowSource provides table rows. An empty orderBy keeps the natural scan
// order and a limit of zero or less returns every row.
type RowSource interface {
	Fetch(ctx context.Context, table, orderBy string, descending bool, limit int) ([]introspect.Row, error)
}

// Styles decorates titles and header cells, e.g. with terminal colors.
type Styles interface {
	Title(s string) string
	Header(s string) string
}

// PlainStyles leaves text untouched.
type PlainStyles struct{}

func (PlainStyles) Title(s string) string  { return s }
func (PlainStyles) Header(s string) string { return s }

var (
	tableListHeaders = []string{"ID", "Table Name", "Num of Rows", "Num of Fields"}
	metadataHeaders  = []string{"Field Name", "Type", "Max Length", "Nullable", "Default", "Primary Key"}
)

// Report is a fully built report, ready to be written.
type Report struct {
	Title string
	Table RenderedTable
}

// WriteTo writes the title, a blank line and the table.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "%s\n\n", r.Title)
	if err != nil {
		return int64(n), err
	}
	m, err := r.Table.WriteTo(w)
	return int64(n) + m, err
}

// Builder assembles reports from an Inspector and a RowSource.
type Builder struct {
	Inspector Inspector
	Rows      RowSource
	Styles    Styles
}

// NewBuilder returns a Builder. A nil styles means PlainStyles.
func NewBuilder(in Inspector, rows RowSource, styles Styles) *Builder {
	if styles == nil {
		styles = PlainStyles{}
	}
	return &Builder{Inspector: in, Rows: rows, Styles: styles}
}

// Run builds the report selected by opts and writes it to w. Nothing is
// written when building fails.
func (b *Builder) Run(ctx context.Context, w io.Writer, opts DisplayOptions) error {
	rep, err := b.Build(ctx, opts)
	if err != nil {
		return err
	}
	_, err = rep.WriteTo(w)
	return err
}

// Build produces the report selected by opts.Mode. Errors from the
// inspector and row source are returned unchanged.
func (b *Builder) Build(ctx context.Context, opts DisplayOptions) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch opts.Mode {
	case ModeListTables:
		return b.tableList(ctx)
	case ModeShowMetadata:
		return b.metadata(ctx, opts.Table)
	default:
		return b.data(ctx, opts)
	}
}

func (b *Builder) render(title string, headers []string, rows [][]string) (*Report, error) {
	table, err := Renderer{HeaderStyle: b.Styles.Header}.Render(headers, rows)
	if err != nil {
		return nil, err
	}
	return &Report{Title: b.Styles.Title(title), Table: table}, nil
}

func (b *Builder) tableList(ctx context.Context) (*Report, error) {
	tables, err := b.Inspector.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(tables))
	for i, t := range tables {
		rows[i] = []string{
			strconv.Itoa(t.ID),
			t.Name,
			strconv.FormatInt(t.RowCount, 10),
			strconv.Itoa(t.FieldCount),
		}
	}
	return b.render("The following is a list of the names of all database tables:", tableListHeaders, rows)
}

func (b *Builder) metadata(ctx context.Context, table string) (*Report, error) {
	cols, err := b.Inspector.Describe(ctx, table)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(cols))
	for i, c := range cols {
		var maxLen, dflt string
		if c.MaxLength != nil {
			maxLen = strconv.FormatInt(*c.MaxLength, 10)
		}
		if c.Default != nil {
			dflt = *c.Default
		}
		rows[i] = []string{c.Name, c.Type, maxLen, yesNo(c.Nullable), dflt, yesNo(c.IsPrimaryKey)}
	}
	return b.render(`List of Metadata Information in Table "`+table+`":`, metadataHeaders, rows)
}

func (b *Builder) data(ctx context.Context, opts DisplayOptions) (*Report, error) {
	cols, err := b.Inspector.Describe(ctx, opts.Table)
	if err != nil {
		return nil, err
	}
	rows, err := b.Rows.Fetch(ctx, opts.Table, introspect.PrimaryKey(cols), opts.Descending, opts.RowLimit)
	if err != nil {
		return nil, err
	}
	if opts.RowLimit > 0 && len(rows) > opts.RowLimit {
		rows = rows[:opts.RowLimit]
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Name
	}
	body := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, &ShapeMismatchError{Row: i, Got: len(row), Want: len(cols)}
		}
		cells := make([]string, len(cols))
		for j, c := range cols {
			v, ok := row.Get(c.Name)
			if !ok {
				return nil, fmt.Errorf("%w: row %d has no column %q", ErrShapeMismatch, i, c.Name)
			}
			cells[j] = Truncate(v.String(), opts.FieldValueLimit)
		}
		body[i] = cells
	}
	return b.render(`Data of Table "`+opts.Table+`":`, headers, body)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
