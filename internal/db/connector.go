package db

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"dbtable/internal/introspect"
	"dbtable/internal/logger"
	"dbtable/pkg/config"
)

// LimitStyle is the SQL syntax a dialect uses to cap a result set.
type LimitStyle int

const (
	LimitClause     LimitStyle = iota // ... LIMIT n
	LimitTop                          // SELECT TOP (n) ...
	LimitFetchFirst                   // ... FETCH FIRST n ROWS ONLY
)

// Dialect holds the catalog queries and SQL syntax of one database type.
type Dialect interface {
	// Tables returns the base tables of the connected schema in catalog order.
	Tables(ctx context.Context, db *sql.DB) ([]string, error)

	// Columns returns the columns of table in ordinal order. A table that
	// does not exist yields no columns and no error.
	Columns(ctx context.Context, db *sql.DB, table string) ([]introspect.ColumnMeta, error)

	// QuoteIdent quotes a table or column name.
	QuoteIdent(name string) string

	// LimitStyle tells SelectQuery how to cap the result set.
	LimitStyle() LimitStyle
}

var dialects = map[string]Dialect{}

// Register makes a Dialect available under name.
func Register(name string, d Dialect) {
	dialects[strings.ToLower(name)] = d
}

// listRegistered returns the registered dialect keys (for diagnostics).
func listRegistered() []string {
	keys := make([]string, 0, len(dialects))
	for k := range dialects {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// RegisteredDialects returns the names accepted by Open, sorted.
func RegisteredDialects() []string {
	return listRegistered()
}

func lookup(driver string) (Dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("dialect not registered: %q (available: %v)", driver, listRegistered())
	}
	return d, nil
}

// Conn is an open database together with the dialect used to inspect it.
// It serves as both the schema inspector and the row source of a report.
type Conn struct {
	DB      *sql.DB
	Driver  string
	dialect Dialect
}

// Open connects to the database and verifies the connection within timeout.
// The timeout only applies to the initial ping.
func Open(ctx context.Context, driver, dsn string, timeout time.Duration) (*Conn, error) {
	driver = config.NormalizeDriver(driver)
	d, err := lookup(driver)
	if err != nil {
		return nil, err
	}
	dbConn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, connectionError(err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := dbConn.PingContext(pingCtx); err != nil {
		dbConn.Close()
		return nil, connectionError(err)
	}
	logger.Debug("connected using %s dialect", driver)
	return &Conn{DB: dbConn, Driver: driver, dialect: d}, nil
}

// NewConn wraps an already open database handle.
func NewConn(dbConn *sql.DB, driver string) (*Conn, error) {
	driver = config.NormalizeDriver(driver)
	d, err := lookup(driver)
	if err != nil {
		return nil, err
	}
	return &Conn{DB: dbConn, Driver: driver, dialect: d}, nil
}

// Close closes the underlying database handle.
func (c *Conn) Close() error {
	return c.DB.Close()
}

// ListTables returns a summary of every table with live row and field counts.
func (c *Conn) ListTables(ctx context.Context) ([]introspect.TableSummary, error) {
	names, err := c.dialect.Tables(ctx, c.DB)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}

	tables := make([]introspect.TableSummary, 0, len(names))
	for i, name := range names {
		cols, err := c.dialect.Columns(ctx, c.DB, name)
		if err != nil {
			return nil, fmt.Errorf("query columns for %s: %w", name, err)
		}
		var rows int64
		q := "SELECT COUNT(*) FROM " + c.dialect.QuoteIdent(name)
		if err := c.DB.QueryRowContext(ctx, q).Scan(&rows); err != nil {
			return nil, fmt.Errorf("count rows of %s: %w", name, err)
		}
		tables = append(tables, introspect.TableSummary{
			ID:         i + 1,
			Name:       name,
			RowCount:   rows,
			FieldCount: len(cols),
		})
	}
	return tables, nil
}

// Describe returns the column metadata of table.
func (c *Conn) Describe(ctx context.Context, table string) ([]introspect.ColumnMeta, error) {
	cols, err := c.dialect.Columns(ctx, c.DB, table)
	if err != nil {
		return nil, fmt.Errorf("query columns for %s: %w", table, err)
	}
	if len(cols) == 0 {
		return nil, &TableNotFoundError{Table: table}
	}
	return cols, nil
}

// Fetch returns the rows of table, ordered by orderBy when it is not empty
// and capped at limit when limit is positive.
func (c *Conn) Fetch(ctx context.Context, table, orderBy string, descending bool, limit int) ([]introspect.Row, error) {
	q := SelectQuery(c.dialect, table, orderBy, descending, limit)
	logger.Debug("fetch: %s", q)

	rs, err := c.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, c.fetchError(ctx, table, err)
	}
	defer rs.Close()

	rows, err := scanRows(rs)
	if err != nil {
		return nil, fmt.Errorf("scan rows of %s: %w", table, err)
	}
	logger.Info("fetched %d rows from %s", len(rows), table)
	return rows, nil
}

// fetchError reports a missing table as such and any other failure as is.
func (c *Conn) fetchError(ctx context.Context, table string, err error) error {
	cols, cerr := c.dialect.Columns(ctx, c.DB, table)
	if cerr == nil && len(cols) == 0 {
		return &TableNotFoundError{Table: table}
	}
	return fmt.Errorf("query rows of %s: %w", table, err)
}
