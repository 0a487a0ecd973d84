// Package cli provides the command-line interface for dbtable.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"dbtable/internal/console"
	"dbtable/internal/db"
	_ "dbtable/internal/db/dialects"
	"dbtable/internal/logger"
	"dbtable/internal/report"
	"dbtable/pkg/config"
)

// Version information (set at build time).
var Version = "0.1.0"

// ErrUsage marks invalid command-line input.
var ErrUsage = errors.New("usage error")

type flags struct {
	cfgFile  string
	group    string
	driver   string
	dsn      string
	show     bool
	metadata bool
	desc     bool
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:   "dbtable [table]",
		Short: "Show database tables, their metadata or their data",
		Long: `dbtable prints the contents of a database table as a console table.

With --show it lists every table with its row and field count instead, and
with --metadata it describes the columns of the given table.`,
		Example: `  dbtable db_user
  dbtable db_user --desc --limit-rows 10 --limit-field-value 20
  dbtable db_user --metadata
  dbtable --show --dbgroup tests`,
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	fs := rootCmd.Flags()
	fs.BoolVar(&f.show, "show", false, "list all tables")
	fs.BoolVar(&f.metadata, "metadata", false, "show column metadata of the table")
	fs.BoolVar(&f.desc, "desc", false, "order rows by primary key, descending")
	fs.Int("limit-rows", 0, "maximum number of rows to show")
	fs.Int("limit-field-value", 0, "maximum display width of a field value")
	fs.StringVar(&f.group, "dbgroup", config.DefaultGroup, "database group from the config file")
	fs.StringVar(&f.cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	fs.StringVar(&f.driver, "driver", "", "db driver override ("+strings.Join(db.RegisteredDialects(), ",")+")")
	fs.StringVar(&f.dsn, "dsn", "", "dsn override, requires --driver")
	fs.Int("timeout", config.DefaultTimeout, "db connect timeout seconds")
	fs.Bool("no-color", false, "disable colored output")
	fs.BoolP("verbose", "v", false, "verbose output")

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func run(cmd *cobra.Command, args []string, f *flags) error {
	cfg, err := config.Load(f.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger.Setup(cmd.ErrOrStderr(), cfg.Verbose)

	opts, err := displayOptions(cmd.Flags(), args, f, cfg)
	if err != nil {
		return err
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("%w: --timeout must be positive, got %d", ErrUsage, cfg.Timeout)
	}

	dbCfg, err := connection(f, cfg)
	if err != nil {
		return err
	}
	driver, dsn, err := config.BuildDriverAndDSN(dbCfg)
	if err != nil {
		return err
	}
	logger.Debug("building %s report using %s", opts.Mode, driver)

	conn, err := db.Open(cmd.Context(), driver, dsn, time.Duration(cfg.Timeout)*time.Second)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn("closing connection: %v", err)
		}
	}()

	out := cmd.OutOrStdout()
	styles := console.New(out, !cfg.Report.NoColor)
	return report.NewBuilder(conn, conn, styles).Run(cmd.Context(), out, opts)
}

// displayOptions resolves the report mode once from the command line.
// --show wins over a table argument.
func displayOptions(fs *pflag.FlagSet, args []string, f *flags, cfg config.AppConfig) (report.DisplayOptions, error) {
	for name, v := range map[string]int{
		"limit-rows":        cfg.Report.LimitRows,
		"limit-field-value": cfg.Report.LimitFieldValue,
	} {
		if fs.Changed(name) && v <= 0 {
			return report.DisplayOptions{}, fmt.Errorf("%w: --%s must be positive, got %d", ErrUsage, name, v)
		}
	}

	opts := report.DisplayOptions{
		Descending:      f.desc,
		RowLimit:        cfg.Report.LimitRows,
		FieldValueLimit: cfg.Report.LimitFieldValue,
	}
	if len(args) > 0 {
		opts.Table = args[0]
	}

	switch {
	case f.show:
		opts.Mode = report.ModeListTables
	case opts.Table == "":
		return report.DisplayOptions{}, fmt.Errorf("%w: a table name is required unless --show is given", ErrUsage)
	case f.metadata:
		opts.Mode = report.ModeShowMetadata
	default:
		opts.Mode = report.ModeShowData
	}
	if err := opts.Validate(); err != nil {
		return report.DisplayOptions{}, err
	}
	return opts, nil
}

// connection picks the database settings: --driver/--dsn when given,
// otherwise the configured --dbgroup.
func connection(f *flags, cfg config.AppConfig) (config.DBConfig, error) {
	if f.driver == "" && f.dsn == "" {
		dbCfg, err := cfg.Group(f.group)
		if err != nil {
			return config.DBConfig{}, err
		}
		logger.Debug("using database group %s", f.group)
		return dbCfg, nil
	}
	if f.driver == "" || f.dsn == "" {
		return config.DBConfig{}, fmt.Errorf("%w: --driver and --dsn must be given together", ErrUsage)
	}
	return config.DBConfig{Type: f.driver, DSN: f.dsn}, nil
}
