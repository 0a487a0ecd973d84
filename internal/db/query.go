package db

import (
	"database/sql"
	"fmt"
	"strings"

	"dbtable/internal/introspect"
)

// Quote wraps name in the left and right delimiters, doubling any embedded
// right delimiter.
func Quote(name, left, right string) string {
	return left + strings.ReplaceAll(name, right, right+right) + right
}

// SelectQuery builds the row query for table in the syntax of d.
func SelectQuery(d Dialect, table, orderBy string, descending bool, limit int) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if limit > 0 && d.LimitStyle() == LimitTop {
		fmt.Fprintf(&b, "TOP (%d) ", limit)
	}
	b.WriteString("* FROM ")
	b.WriteString(d.QuoteIdent(table))
	if orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(d.QuoteIdent(orderBy))
		if descending {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}
	if limit > 0 {
		switch d.LimitStyle() {
		case LimitClause:
			fmt.Fprintf(&b, " LIMIT %d", limit)
		case LimitFetchFirst:
			fmt.Fprintf(&b, " FETCH FIRST %d ROWS ONLY", limit)
		}
	}
	return b.String()
}

// scanRows reads every remaining row of rs, keeping the column order of the
// result set.
func scanRows(rs *sql.Rows) ([]introspect.Row, error) {
	cols, err := rs.Columns()
	if err != nil {
		return nil, err
	}

	var rows []introspect.Row
	for rs.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(introspect.Row, len(cols))
		for i, col := range cols {
			row[i] = introspect.Cell{Column: col, Value: introspect.NewValue(values[i])}
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
