package dialects

import (
	"context"
	"database/sql"
	"fmt"

	"dbtable/internal/db"
	"dbtable/internal/introspect"
)

// myDialect reads information_schema of the selected MySQL database.
type myDialect struct{}

func (myDialect) Tables(ctx context.Context, dbConn *sql.DB) ([]string, error) {
	return queryNames(ctx, dbConn, `
        SELECT table_name
        FROM information_schema.tables
        WHERE table_type = 'BASE TABLE'
          AND table_schema = DATABASE()
        ORDER BY table_name`)
}

func (myDialect) Columns(ctx context.Context, dbConn *sql.DB, table string) ([]introspect.ColumnMeta, error) {
	cr, err := dbConn.QueryContext(ctx, `
        SELECT column_name, data_type, character_maximum_length, is_nullable = 'YES', column_default, column_key = 'PRI'
        FROM information_schema.columns
        WHERE table_schema = DATABASE() AND table_name = ?
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
		if err := cr.Scan(&col.Name, &col.Type, &maxLen, &col.Nullable, &dflt, &col.IsPrimaryKey); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		col.MaxLength = optInt(maxLen)
		col.Default = optString(dflt)
		cols = append(cols, col)
	}
	return cols, cr.Err()
}

func (myDialect) QuoteIdent(name string) string { return db.Quote(name, "`", "`") }

func (myDialect) LimitStyle() db.LimitStyle { return db.LimitClause }

func init() {
	db.Register("mysql", myDialect{})
	db.Register("mariadb", myDialect{})
}
