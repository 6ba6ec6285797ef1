package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/LogLens/internal/config"
	"github.com/Egor213/LogLens/internal/metrics"
	"github.com/Egor213/LogLens/internal/output"
	"github.com/Egor213/LogLens/internal/repo"
	"github.com/Egor213/LogLens/internal/service"
	"github.com/Egor213/LogLens/internal/watcher"
	errorsUtils "github.com/Egor213/LogLens/pkg/errors"
	"github.com/Egor213/LogLens/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"
)

type cliOptions struct {
	configPath string
	outputFmt  string
	pretty     bool
	ignoreSize bool
}

// Execute runs the logviewer command line.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	opts := &cliOptions{}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parsed log over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}
			Run(cfg)
			return nil
		},
	}

	rootCmd := &cobra.Command{
		Use:   "logviewer",
		Short: "Group and count the errors in a PHP-style error log",
		Long: `logviewer splits an error log on its bracketed timestamps, folds repeated
errors into one row with a count, and serves or prints the result.

Examples:
  logviewer serve
  logviewer parse /var/log/php/error.log --output json
  logviewer watch debug.log`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         serveCmd.RunE,
	}

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse the log once and print the records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(args)
			if err != nil {
				return err
			}
			logger.SetOutput(cmd.ErrOrStderr())
			return opts.printOnce(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-parse and print the log whenever it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(args)
			if err != nil {
				return err
			}
			logger.SetOutput(cmd.ErrOrStderr())
			return opts.watch(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: $APP_CONFIG_PATH or configs/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&opts.outputFmt, "output", "o", "text", "output format: text, json")
	rootCmd.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	rootCmd.PersistentFlags().BoolVar(&opts.ignoreSize, "ignore-size", false, "parse even when the file exceeds max_size_mb")

	rootCmd.AddCommand(serveCmd, parseCmd, watchCmd)
	return rootCmd
}

func (o *cliOptions) loadConfig(args []string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.New()
	}
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	if len(args) > 0 {
		cfg.Viewer.FilePath = args[0]
	}

	logger.SetupLogger(cfg.Log.Level)
	return cfg, nil
}

// newLocalService builds a service with its own metrics registry; nothing
// scrapes it from the command line.
func newLocalService(cfg *config.Config) (service.Log, error) {
	deps := service.ServicesDependencies{
		Repos:       repo.NewRepositories(cfg.Viewer.FilePath),
		Counters:    metrics.NewWithRegistry(prometheus.NewRegistry()),
		ParseConfig: cfg.Viewer.ParseConfig(),
		MaxSizeMB:   cfg.Viewer.MaxSizeMB,
	}
	services, err := service.NewServices(deps)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return services.Log, nil
}

func (o *cliOptions) printOnce(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	renderer, err := output.New(o.outputFmt, o.pretty)
	if err != nil {
		return err
	}
	svc, err := newLocalService(cfg)
	if err != nil {
		return err
	}
	return o.render(ctx, svc, renderer, stdout, stderr)
}

func (o *cliOptions) render(ctx context.Context, svc service.Log, renderer output.Renderer, stdout, stderr io.Writer) error {
	records, err := svc.GetLog(ctx, o.ignoreSize)
	var issue *service.IssueError
	switch {
	case errors.As(err, &issue) && issue.Kind == service.IssueEmpty:
		fmt.Fprintln(stderr, issue.Message)
		return nil
	case errors.As(err, &issue):
		return errors.New(issue.Message)
	case err != nil:
		return err
	}
	return renderer.Render(stdout, records)
}

func (o *cliOptions) watch(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	renderer, err := output.New(o.outputFmt, o.pretty)
	if err != nil {
		return err
	}
	svc, err := newLocalService(cfg)
	if err != nil {
		return err
	}
	w, err := watcher.New(cfg.Viewer.FilePath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresh := func() {
		if err := o.render(ctx, svc, renderer, stdout, stderr); err != nil {
			fmt.Fprintln(stderr, err)
		}
	}

	log.WithField("file", cfg.Viewer.FilePath).Info("Watching log file")
	refresh()

	err = w.Run(ctx, refresh)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
