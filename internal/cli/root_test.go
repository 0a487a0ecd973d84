package cli

import (
	"bytes"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbtable/internal/db"
	"dbtable/internal/report"
	"dbtable/pkg/config"
)

// seedDB creates a SQLite database holding the tables the report
// scenarios run against.
func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.db")

	dbConn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = dbConn.Close() }()

	_, err = dbConn.Exec(`
		CREATE TABLE db_migrations (
			id INTEGER PRIMARY KEY,
			version VARCHAR(255) NOT NULL,
			class VARCHAR(255) NOT NULL,
			"group" VARCHAR(255) NOT NULL DEFAULT 'default',
			namespace VARCHAR(255) NOT NULL,
			time INTEGER NOT NULL,
			batch INTEGER NOT NULL
		);
		INSERT INTO db_migrations (id, version, class, namespace, time, batch) VALUES
			(1, '2024-01-10-083000', 'CreateUserTable', 'App', 1704875400, 1),
			(2, '2024-02-02-120000', 'AddCountryToUser', 'App', 1706875200, 2);
		CREATE TABLE db_user (
			id INTEGER PRIMARY KEY,
			name VARCHAR(80),
			email VARCHAR(100),
			country VARCHAR(40)
		);
		INSERT INTO db_user (id, name, email, country) VALUES
			(1, 'Derek Jones', 'derek@world.com', 'US'),
			(2, 'Ahmadinejad', 'ahmadinejad@world.com', 'Iran'),
			(3, 'Richard A Causey', 'richard@world.com', 'US'),
			(4, 'Chris Martin', 'chris@world.com', 'UK');
	`)
	require.NoError(t, err)
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func golden(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

func TestReports(t *testing.T) {
	conn := []string{"--driver", "sqlite", "--dsn", seedDB(t), "--no-color"}

	var tests = []struct {
		name   string
		args   []string
		golden string
	}{
		{"ascending", []string{"db_user"}, "data_asc.golden"},
		{"descending", []string{"db_user", "--desc"}, "data_desc.golden"},
		{"limit rows", []string{"db_user", "--limit-rows", "2"}, "data_limit_rows.golden"},
		{"limit field value", []string{"db_user", "--limit-field-value", "5"}, "data_limit_field_value.golden"},
		{"all options", []string{"db_user", "--desc", "--limit-rows", "2", "--limit-field-value", "5"}, "data_all_options.golden"},
		{"show", []string{"--show"}, "show.golden"},
		{"show wins over table", []string{"db_user", "--show", "--limit-rows", "1"}, "show.golden"},
		{"metadata", []string{"db_migrations", "--metadata", "--limit-rows", "1", "--limit-field-value", "2"}, "metadata.golden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, append(tt.args, conn...)...)
			require.NoError(t, err)
			assert.Equal(t, golden(t, tt.golden), stdout)
		})
	}
}

func TestConfigGroups(t *testing.T) {
	dbPath := seedDB(t)
	cfgPath := filepath.Join(t.TempDir(), "dbtable.yaml")
	cfg := fmt.Sprintf(`
connections:
  default:
    type: postgres
    host: 127.0.0.1
    port: 1
  tests:
    type: sqlite3
    database_name: %s
report:
  limit_rows: 1
  no_color: true
`, dbPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	stdout, _, err := execute(t, "db_user", "--config", cfgPath, "--dbgroup", "tests")
	require.NoError(t, err)
	assert.Equal(t, golden(t, "data_config_limit.golden"), stdout)

	stdout, _, err = execute(t, "db_user", "--config", cfgPath, "--dbgroup", "tests", "--limit-rows", "2")
	require.NoError(t, err)
	assert.Equal(t, golden(t, "data_limit_rows.golden"), stdout)

	t.Setenv("DBTABLE_REPORT__LIMIT_ROWS", "0")
	stdout, _, err = execute(t, "db_user", "--config", cfgPath, "--dbgroup", "tests")
	require.NoError(t, err)
	assert.Equal(t, golden(t, "data_asc.golden"), stdout)

	_, _, err = execute(t, "db_user", "--config", cfgPath, "--dbgroup", "staging")
	assert.ErrorContains(t, err, `unknown database group "staging"`)
}

func TestVerbose(t *testing.T) {
	dbPath := seedDB(t)

	_, stderr, err := execute(t, "--show", "--no-color", "-v", "--driver", "sqlite", "--dsn", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "connected using sqlite dialect")

	_, stderr, err = execute(t, "db_user", "--no-color", "-v", "--driver", "sqlite", "--dsn", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, `level=INFO msg="fetched 4 rows from db_user"`)

	_, stderr, err = execute(t, "db_user", "--no-color", "--driver", "sqlite", "--dsn", dbPath)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestDriverFlagListsDialects(t *testing.T) {
	usage := NewRootCmd().Flags().Lookup("driver").Usage
	for _, name := range []string{"mysql", "postgres", "sqlite", "sqlserver"} {
		assert.Contains(t, usage, name)
	}
}

func TestErrors(t *testing.T) {
	dbPath := seedDB(t)

	var tests = []struct {
		name     string
		args     []string
		is       error
		contains string
	}{
		{"no table", []string{"--driver", "sqlite", "--dsn", dbPath}, ErrUsage, "table name is required"},
		{"metadata without table", []string{"--metadata", "--driver", "sqlite", "--dsn", dbPath}, ErrUsage, "table name is required"},
		{"zero row limit", []string{"db_user", "--limit-rows", "0", "--driver", "sqlite", "--dsn", dbPath}, ErrUsage, "--limit-rows must be positive"},
		{"negative field limit", []string{"db_user", "--limit-field-value=-1", "--driver", "sqlite", "--dsn", dbPath}, ErrUsage, "--limit-field-value must be positive"},
		{"zero timeout", []string{"db_user", "--timeout", "0", "--driver", "sqlite", "--dsn", dbPath}, ErrUsage, "--timeout must be positive"},
		{"driver without dsn", []string{"db_user", "--driver", "sqlite"}, ErrUsage, "must be given together"},
		{"unsupported driver", []string{"db_user", "--driver", "db2", "--dsn", "x"}, nil, "dialect not registered"},
		{"unknown table", []string{"ghost", "--driver", "sqlite", "--dsn", dbPath}, db.ErrTableNotFound, `table "ghost" not found`},
		{"unknown table metadata", []string{"ghost", "--metadata", "--driver", "sqlite", "--dsn", dbPath}, db.ErrTableNotFound, `table "ghost" not found`},
		{"unreachable server", []string{"db_user", "--timeout", "2", "--driver", "postgres", "--dsn", "postgres://u:p@127.0.0.1:1/app?sslmode=disable"}, db.ErrConnection, ""},
		{"too many args", []string{"db_user", "db_migrations"}, nil, "accepts at most 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
			assert.Empty(t, stdout)
		})
	}
}

func TestDisplayOptions(t *testing.T) {
	var tests = []struct {
		name string
		args []string
		f    flags
		cfg  config.AppConfig
		want report.DisplayOptions
	}{
		{"data",
			[]string{"db_user"}, flags{desc: true},
			config.AppConfig{Report: config.ReportConfig{LimitRows: 2, LimitFieldValue: 5}},
			report.DisplayOptions{Mode: report.ModeShowData, Table: "db_user", Descending: true, RowLimit: 2, FieldValueLimit: 5}},
		{"metadata",
			[]string{"db_user"}, flags{metadata: true},
			config.AppConfig{},
			report.DisplayOptions{Mode: report.ModeShowMetadata, Table: "db_user"}},
		{"show without table",
			nil, flags{show: true, metadata: true},
			config.AppConfig{},
			report.DisplayOptions{Mode: report.ModeListTables}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			opts, err := displayOptions(cmd.Flags(), tt.args, &tt.f, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts)
		})
	}
}
