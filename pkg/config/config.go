package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// DefaultFile is read from the working directory when no --config is given.
	DefaultFile = "dbtable.yaml"

	// DefaultGroup names the connection under the top-level database key.
	DefaultGroup = "default"

	// DefaultTimeout is the connect timeout in seconds.
	DefaultTimeout = 10

	// EnvPrefix marks environment overrides. Nested keys are separated by a
	// double underscore: DBTABLE_DATABASE__DSN -> database.dsn.
	EnvPrefix = "DBTABLE_"
)

type DBConfig struct {
	Type         string `koanf:"type"`
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	DatabaseName string `koanf:"database_name"`
	DSN          string `koanf:"dsn"` // optional explicit DSN
}

// ReportConfig holds display defaults. Zero limits mean no limit.
type ReportConfig struct {
	LimitRows       int  `koanf:"limit_rows"`
	LimitFieldValue int  `koanf:"limit_field_value"`
	NoColor         bool `koanf:"no_color"`
}

type AppConfig struct {
	Database    DBConfig            `koanf:"database"`
	Connections map[string]DBConfig `koanf:"connections"`
	Report      ReportConfig        `koanf:"report"`
	Timeout     int                 `koanf:"timeout"`
	Verbose     bool                `koanf:"verbose"`
}

// flagKeys maps command-line flags onto config keys. Flags not listed here
// are not configuration.
var flagKeys = map[string]string{
	"timeout":           "timeout",
	"verbose":           "verbose",
	"limit-rows":        "report.limit_rows",
	"limit-field-value": "report.limit_field_value",
	"no-color":          "report.no_color",
}

func loadDefaults(k *koanf.Koanf) error {
	return k.Load(confmap.Provider(map[string]interface{}{
		"timeout": DefaultTimeout,
	}, "."), nil)
}

func decode(k *koanf.Koanf) (AppConfig, error) {
	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return cfg, nil
}

// LoadFile loads YAML config from path on top of the defaults.
func LoadFile(path string) (AppConfig, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return AppConfig{}, err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return AppConfig{}, err
	}
	return decode(k)
}

// Load builds the configuration from, lowest to highest priority: defaults,
// the YAML file at path (or DefaultFile when path is empty and it exists),
// DBTABLE_ environment variables and explicitly set flags.
func Load(path string, flags *pflag.FlagSet) (AppConfig, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return AppConfig{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return AppConfig{}, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return AppConfig{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return AppConfig{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	return decode(k)
}

// Group returns the connection settings registered under name. The default
// group is the top-level database key, or connections.default when that is
// the only one given.
func (c AppConfig) Group(name string) (DBConfig, error) {
	if name == "" {
		name = DefaultGroup
	}
	if name == DefaultGroup && c.Database != (DBConfig{}) {
		return c.Database, nil
	}
	if db, ok := c.Connections[name]; ok {
		return db, nil
	}
	if name == DefaultGroup {
		return DBConfig{}, fmt.Errorf("no database configured")
	}
	return DBConfig{}, fmt.Errorf("unknown database group %q", name)
}

// NormalizeDriver maps common aliases to canonical keys (keeps backwards compat).
func NormalizeDriver(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "postgresql", "pg", "postgres":
		return "postgres"
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	case "mssql", "sqlserver":
		return "sqlserver"
	case "godror", "oracle":
		return "godror"
	default:
		return strings.ToLower(d)
	}
}

// BuildDriverAndDSN produces a driver name and DSN string for supported DB types.
func BuildDriverAndDSN(db DBConfig) (driver string, dsn string, err error) {
	// If explicit DSN provided, user must also set Type to choose driver
	t := NormalizeDriver(db.Type)

	if db.DSN != "" {
		return t, db.DSN, nil
	}

	hostPort := net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
	switch t {
	case "postgres":
		driver = "postgres"
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(db.Username, db.Password),
			Host:     hostPort,
			Path:     "/" + db.DatabaseName,
			RawQuery: "sslmode=disable",
		}
		dsn = u.String()
	case "mysql":
		driver = "mysql"
		mc := mysql.NewConfig()
		mc.User = db.Username
		mc.Passwd = db.Password
		mc.Net = "tcp"
		mc.Addr = hostPort
		mc.DBName = db.DatabaseName
		mc.ParseTime = true
		dsn = mc.FormatDSN()
	case "sqlite":
		driver = "sqlite"
		if db.DatabaseName == "" {
			return "", "", fmt.Errorf("sqlite needs a file path in database_name")
		}
		dsn = fmt.Sprintf("file:%s?mode=ro", db.DatabaseName)
	case "sqlserver":
		driver = "sqlserver"
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(db.Username, db.Password),
			Host:     hostPort,
			RawQuery: url.Values{"database": {db.DatabaseName}}.Encode(),
		}
		dsn = u.String()
	case "godror":
		driver = "godror"
		// simple EZCONNECT style; may need adjustments per environment
		dsn = fmt.Sprintf("%s/%s@%s/%s",
			db.Username, db.Password, hostPort, db.DatabaseName)
	default:
		err = fmt.Errorf("unsupported database type: %s", db.Type)
	}
	return
}
