//go:build oracle
// +build oracle

package dialects

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/godror/godror"

	"dbtable/internal/db"
	"dbtable/internal/introspect"
)

// oracleDialect reads the USER_* views of the connected schema.
type oracleDialect struct{}

func (oracleDialect) Tables(ctx context.Context, dbConn *sql.DB) ([]string, error) {
	return queryNames(ctx, dbConn, `
        SELECT table_name
        FROM user_tables
        ORDER BY table_name`)
}

func (oracleDialect) Columns(ctx context.Context, dbConn *sql.DB, table string) ([]introspect.ColumnMeta, error) {
	cr, err := dbConn.QueryContext(ctx, `
        SELECT column_name, data_type, NULLIF(char_length, 0), nullable, data_default
        FROM user_tab_columns
        WHERE table_name = :1
        ORDER BY column_id`, table)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	var cols []introspect.ColumnMeta
	for cr.Next() {
		var col introspect.ColumnMeta
		var maxLen sql.NullInt64
		var nullable string
		var dflt sql.NullString
		if err := cr.Scan(&col.Name, &col.Type, &maxLen, &nullable, &dflt); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		col.Nullable = nullable == "Y"
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
        SELECT ucc.column_name
        FROM user_cons_columns ucc
        JOIN user_constraints uc ON ucc.constraint_name = uc.constraint_name
        WHERE uc.constraint_type = 'P' AND ucc.table_name = :1
        ORDER BY ucc.position`, table)
	return cols, err
}

func (oracleDialect) QuoteIdent(name string) string { return db.Quote(name, `"`, `"`) }

func (oracleDialect) LimitStyle() db.LimitStyle { return db.LimitFetchFirst }

func init() {
	db.Register("godror", oracleDialect{})
	db.Register("oracle", oracleDialect{})
}
