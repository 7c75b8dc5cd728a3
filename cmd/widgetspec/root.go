package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gnana997/widgetspec/pkg/catalog"
	"github.com/gnana997/widgetspec/pkg/util"
	"github.com/gnana997/widgetspec/pkg/watch"
)

type rootFlags struct {
	configPath  string
	catalogPath string
	logLevel    string
	logFormat   string
}

// environment is the resolved configuration shared by every command.
type environment struct {
	flags  rootFlags
	cfg    ProjectConfig
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	env := &environment{}

	cmd := &cobra.Command{
		Use:           "widgetspec",
		Short:         "Widget catalog, calculators and checkers for the web toolbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.init(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&env.flags.configPath, "config", defaultConfigPath, "Project config file")
	pf.StringVar(&env.flags.catalogPath, "catalog", "", "Catalog file (JSON or YAML); the embedded catalog when empty")
	pf.StringVar(&env.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&env.flags.logFormat, "log-format", "", "Log format: json, text, pretty")

	cmd.AddCommand(
		newServeCmd(env),
		newHTTPCmd(env),
		newListCmd(env),
		newShowCmd(env),
		newFAQsCmd(env),
		newSearchCmd(env),
		newValidateCatalogCmd(env),
		newCheckCmd(env),
		newColorCmd(env),
		newRemCmd(env),
		newCSSCmd(env),
		newCalcCmd(env),
		newClockCmd(env),
		newTimerCmd(env),
		newSysinfoCmd(env),
		newSetupCmd(env),
		newVersionCmd(),
	)

	return cmd
}

func (e *environment) init(cmd *cobra.Command) error {
	cfg, err := loadProjectConfig(e.flags.configPath)
	if err != nil {
		return err
	}
	e.cfg = cfg

	level, err := util.ParseLogLevel(pick(e.flags.logLevel, cfg.LogLevel, string(util.LevelInfo)))
	if err != nil {
		return err
	}
	format, err := util.ParseLogFormat(pick(e.flags.logFormat, cfg.LogFormat, string(util.FormatText)))
	if err != nil {
		return err
	}

	e.logger = util.NewLogger(util.LoggerConfig{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})
	util.SetDefault(e.logger)
	return nil
}

// catalogPath is the catalog file to load, or "" for the embedded catalog.
func (e *environment) catalogPath() string {
	return pick(e.flags.catalogPath, e.cfg.CatalogPath, "")
}

func (e *environment) loadCatalog() (*catalog.QueryService, error) {
	path := e.catalogPath()
	if path == "" {
		return catalog.Default()
	}
	qs, err := catalog.LoadAndQuery(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return qs, nil
}

// startWatcher reloads the catalog file into onReload until the returned
// stop function is called.
func (e *environment) startWatcher(onReload watch.ReloadFunc) (func(), error) {
	path := e.catalogPath()
	if path == "" {
		return nil, fmt.Errorf("--watch needs a catalog file (--catalog or catalog_path)")
	}
	w, err := watch.New(path, onReload, watch.Options{Logger: e.logger})
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return func() { _ = w.Stop() }, nil
}
