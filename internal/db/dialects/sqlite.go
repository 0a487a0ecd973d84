package dialects

import (
	"context"
	"database/sql"
	"fmt"

	"dbtable/internal/db"
	"dbtable/internal/introspect"
)

// sqliteDialect reads sqlite_master and pragma_table_info of the main database.
type sqliteDialect struct{}

func (sqliteDialect) Tables(ctx context.Context, dbConn *sql.DB) ([]string, error) {
	return queryNames(ctx, dbConn, `
        SELECT name
        FROM sqlite_master
        WHERE type = 'table'
          AND name NOT LIKE 'sqlite_%'
        ORDER BY name`)
}

func (sqliteDialect) Columns(ctx context.Context, dbConn *sql.DB, table string) ([]introspect.ColumnMeta, error) {
	pr, err := dbConn.QueryContext(ctx, `
        SELECT name, type, "notnull", dflt_value, pk
        FROM pragma_table_info(?)
        ORDER BY cid`, table)
	if err != nil {
		return nil, err
	}
	defer pr.Close()

	var cols []introspect.ColumnMeta
	for pr.Next() {
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := pr.Scan(&name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		cols = append(cols, introspect.ColumnMeta{
			Name:         name,
			Type:         ctype,
			MaxLength:    lengthFromType(ctype),
			Nullable:     notnull == 0,
			Default:      optString(dflt),
			IsPrimaryKey: pk != 0,
		})
	}
	return cols, pr.Err()
}

func (sqliteDialect) QuoteIdent(name string) string { return db.Quote(name, `"`, `"`) }

func (sqliteDialect) LimitStyle() db.LimitStyle { return db.LimitClause }

func init() {
	db.Register("sqlite3", sqliteDialect{})
	db.Register("sqlite", sqliteDialect{})
}
