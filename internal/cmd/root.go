package cmd

import (
	"context"
	"log/slog"

	"github.com/admin/sqlloader/internal/config"
	"github.com/admin/sqlloader/internal/dataset"
	"github.com/admin/sqlloader/internal/db"
	"github.com/admin/sqlloader/internal/errors"
	"github.com/admin/sqlloader/internal/logger"
	"github.com/admin/sqlloader/internal/runner"
	"github.com/spf13/cobra"
)

// Global flag values, shared by every subcommand.
type options struct {
	user     string
	password string
	dbname   string
	port     int
	host     string
	driver   string
	datasets string
	logLevel string
}

type app struct {
	opts     options
	cfg      config.Config
	provider db.Provider
	log      *slog.Logger
}

// Execute runs the sqlloader command line against real databases.
func Execute() error {
	return NewRootCmd(nil).ExecuteContext(context.Background())
}

// NewRootCmd builds the command tree. A nil provider means connections are
// dialed from the tool settings.
func NewRootCmd(provider db.Provider) *cobra.Command {
	a := &app{cfg: config.Load(), provider: provider}

	root := &cobra.Command{
		Use:   "sqlloader",
		Short: "Load or reset sets of SQL scripts against a database",
		Long: `sqlloader executes the SQL scripts of a dataset directory.

A dataset is a directory holding a config.json file and any number of .sql
files, nested at any depth. Load scripts run in file name order. Files named
reset.sql are reset scripts.

Examples:
  sqlloader list
  sqlloader load SQL/demo -d testdb
  sqlloader reset demo -U admin -W secret -p 6543`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.NewMissingArgument("You must specify one of list, load or reset.")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVarP(&a.opts.user, "user", "U", "", "Specify username")
	pf.StringVarP(&a.opts.password, "password", "W", "", "Specify password")
	pf.StringVarP(&a.opts.dbname, "database", "d", "", "Specify database name")
	pf.IntVarP(&a.opts.port, "port", "p", dataset.DefaultPort, "Specify port")
	pf.StringVar(&a.opts.host, "host", a.cfg.Host, "Database host (or set SQLLOADER_HOST)")
	pf.StringVar(&a.opts.driver, "driver", a.cfg.Driver, "Database driver: pgx, postgres or sqlite (or set SQLLOADER_DRIVER)")
	pf.StringVar(&a.opts.datasets, "datasets", a.cfg.DatasetsDir, "Directory holding the datasets (or set SQLLOADER_DATASETS)")
	pf.StringVar(&a.opts.logLevel, "log-level", a.cfg.LogLevel, "Log level: debug, info, warn or error")

	root.AddCommand(a.newListCmd(), a.newLoadCmd(), a.newResetCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	log, runID := logger.New(cmd.ErrOrStderr(), a.opts.logLevel)
	a.log = log
	if a.provider == nil {
		a.provider = db.Dialer{
			Host:    a.cfg.Host,
			Driver:  a.cfg.Driver,
			SSLMode: a.cfg.SSLMode,
			AppName: "sqlloader-" + runID,
		}
	}
	return nil
}

// overrides keeps only the flags the user actually set.
func (a *app) overrides(cmd *cobra.Command) dataset.Overrides {
	var o dataset.Overrides
	flags := cmd.Flags()
	if flags.Changed("user") {
		o.User = &a.opts.user
	}
	if flags.Changed("password") {
		o.Password = &a.opts.password
	}
	if flags.Changed("database") {
		o.DBName = &a.opts.dbname
	}
	if flags.Changed("port") {
		o.Port = &a.opts.port
	}
	if flags.Changed("host") {
		o.Host = &a.opts.host
	}
	if flags.Changed("driver") {
		o.Driver = &a.opts.driver
	}
	return o
}

func (a *app) runner(cmd *cobra.Command) *runner.Runner {
	return runner.New(a.provider, cmd.OutOrStdout(), a.log)
}
