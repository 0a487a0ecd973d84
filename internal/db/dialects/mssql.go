package dialects

import (
	"context"
	"database/sql"
	"fmt"

	"dbtable/internal/db"
	"dbtable/internal/introspect"
)

// mssqlDialect reads INFORMATION_SCHEMA of the caller's default schema.
type mssqlDialect struct{}

func (mssqlDialect) Tables(ctx context.Context, dbConn *sql.DB) ([]string, error) {
	return queryNames(ctx, dbConn, `
        SELECT TABLE_NAME
        FROM INFORMATION_SCHEMA.TABLES
        WHERE TABLE_TYPE = 'BASE TABLE'
          AND TABLE_SCHEMA = SCHEMA_NAME()
        ORDER BY TABLE_NAME`)
}

func (mssqlDialect) Columns(ctx context.Context, dbConn *sql.DB, table string) ([]introspect.ColumnMeta, error) {
	cr, err := dbConn.QueryContext(ctx, `
        SELECT COLUMN_NAME, DATA_TYPE, CHARACTER_MAXIMUM_LENGTH,
               CASE WHEN IS_NULLABLE='YES' THEN 1 ELSE 0 END, COLUMN_DEFAULT
        FROM INFORMATION_SCHEMA.COLUMNS
        WHERE TABLE_SCHEMA = SCHEMA_NAME() AND TABLE_NAME = @p1
        ORDER BY ORDINAL_POSITION`, table)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	var cols []introspect.ColumnMeta
	for cr.Next() {
		var col introspect.ColumnMeta
		var maxLen sql.NullInt64
		var nullableInt int
		var dflt sql.NullString
		if err := cr.Scan(&col.Name, &col.Type, &maxLen, &nullableInt, &dflt); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		col.Nullable = nullableInt == 1
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
        SELECT k.COLUMN_NAME
        FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS t
        JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE k ON t.CONSTRAINT_NAME = k.CONSTRAINT_NAME AND t.TABLE_SCHEMA = k.TABLE_SCHEMA
        WHERE t.CONSTRAINT_TYPE = 'PRIMARY KEY' AND k.TABLE_SCHEMA = SCHEMA_NAME() AND k.TABLE_NAME = @p1
        ORDER BY k.ORDINAL_POSITION`, table)
	return cols, err
}

func (mssqlDialect) QuoteIdent(name string) string { return db.Quote(name, "[", "]") }

func (mssqlDialect) LimitStyle() db.LimitStyle { return db.LimitTop }

func init() {
	db.Register("sqlserver", mssqlDialect{})
	db.Register("mssql", mssqlDialect{})
}
