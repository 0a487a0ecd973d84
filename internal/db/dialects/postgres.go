package dialects

import (
	"context"
	"database/sql"
	"fmt"

	"dbtable/internal/db"
	"dbtable/internal/introspect"
)

// pgDialect reads information_schema + pg_catalog of the current schema.
type pgDialect struct{}

func (pgDialect) Tables(ctx context.Context, dbConn *sql.DB) ([]string, error) {
	return queryNames(ctx, dbConn, `
        SELECT table_name
        FROM information_schema.tables
        WHERE table_type = 'BASE TABLE'
          AND table_schema = current_schema()
        ORDER BY table_name`)
}

func (pgDialect) Columns(ctx context.Context, dbConn *sql.DB, table string) ([]introspect.ColumnMeta, error) {
	cr, err := dbConn.QueryContext(ctx, `
        SELECT column_name, data_type, character_maximum_length, is_nullable = 'YES', column_default
        FROM information_schema.columns
        WHERE table_schema = current_schema() AND table_name = $1
        ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	var cols []introspect.ColumnMeta
	for cr.Next() {
		var col introspect.ColumnMeta
		var maxLen sql.NullInt64
		var dflt sql.NullString
		if err := cr.Scan(&col.Name, &col.Type, &maxLen, &col.Nullable, &dflt); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		col.MaxLength = optInt(maxLen)
		col.Default = optString(dflt)
		cols = append(cols, col)
	}
	if err := cr.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, nil
	}

	err = markPrimaryKeys(ctx, dbConn, cols, `
        SELECT a.attname
        FROM pg_index i
        JOIN pg_class c ON i.indrelid = c.oid
        JOIN pg_namespace ns ON c.relnamespace = ns.oid
        JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = ANY(i.indkey)
        WHERE ns.nspname = current_schema() AND c.relname = $1 AND i.indisprimary`, table)
	return cols, err
}

func (pgDialect) QuoteIdent(name string) string { return db.Quote(name, `"`, `"`) }

func (pgDialect) LimitStyle() db.LimitStyle { return db.LimitClause }

func init() {
	db.Register("postgres", pgDialect{})
	db.Register("postgresql", pgDialect{})
}
