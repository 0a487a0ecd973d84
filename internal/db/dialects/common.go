// Package dialects registers the catalog queries of each supported database
// with package db. Import it for its side effects.
package dialects

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"

	"dbtable/internal/introspect"
)

// queryNames runs q and collects the first column of every row.
func queryNames(ctx context.Context, dbConn *sql.DB, q string, args ...any) ([]string, error) {
	rows, err := dbConn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// markPrimaryKeys flags the columns named by the rows of the pk query.
func markPrimaryKeys(ctx context.Context, dbConn *sql.DB, cols []introspect.ColumnMeta, q string, args ...any) error {
	pks, err := queryNames(ctx, dbConn, q, args...)
	if err != nil {
		return fmt.Errorf("query primary key: %w", err)
	}
	for _, pk := range pks {
		for j := range cols {
			if cols[j].Name == pk {
				cols[j].IsPrimaryKey = true
			}
		}
	}
	return nil
}

func optInt(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func optString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

var typeLength = regexp.MustCompile(`\(\s*(\d+)`)

// lengthFromType extracts the declared length of a type such as VARCHAR(255).
func lengthFromType(typ string) *int64 {
	m := typeLength.FindStringSubmatch(typ)
	if m == nil {
		return nil
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
