package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/docstore/v1/logger"
	"github.com/Aleph-Alpha/docstore/v1/metrics"
	"github.com/Aleph-Alpha/docstore/v1/provider"
	"github.com/Aleph-Alpha/docstore/v1/sodaqbe"
	"github.com/Aleph-Alpha/docstore/v1/sodarest"
	"github.com/Aleph-Alpha/docstore/v1/sodasql"
	"github.com/Aleph-Alpha/docstore/v1/tracer"
)

// Backends accepted by --backend.
var Backends = []string{"rest", "sql", "qbe"}

// RootOptions holds the global flags.
type RootOptions struct {
	Backend    string
	ConfigPath string
	EnvFile    string
	Metrics    bool
	Timeout    time.Duration

	// backend returns the fx options providing provider.Provider.
	backend func(o *RootOptions, cfg Config) fx.Option
}

// NewRootCommand creates the sodactl command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{backend: backendModule})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sodactl",
		Short: "Work with SODA document collections",
		Long: `sodactl creates, reads, filters and deletes JSON documents in Oracle SODA
collections through ORDS REST, native SQL or SQL with query-by-example filters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(Backends, opts.Backend) {
				return fmt.Errorf("invalid backend %q: must be one of %v", opts.Backend, Backends)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Backend, "backend", "b", "rest", "document backend (rest|sql|qbe)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before the configuration")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "serve /metrics while the command runs")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", time.Minute, "deadline of the whole command")

	cmd.AddCommand(
		newEnsureCommand(opts),
		newCreateCommand(opts),
		newGetCommand(opts),
		newUpdateCommand(opts),
		newUpsertCommand(opts),
		newDeleteCommand(opts),
		newListCommand(opts),
		newFilterCommand(opts),
	)
	return cmd
}

func backendModule(o *RootOptions, cfg Config) fx.Option {
	switch o.Backend {
	case "sql":
		return fx.Options(fx.Supply(cfg.SQL), sodasql.FXModule)
	case "qbe":
		return fx.Options(fx.Supply(cfg.SQL), sodasql.FXModule, sodaqbe.FXModule)
	default:
		return fx.Options(fx.Supply(cfg.REST), sodarest.FXModule)
	}
}

func (o *RootOptions) modules(cfg Config) fx.Option {
	opts := []fx.Option{
		fx.NopLogger,
		fx.Supply(cfg.Logger, cfg.Tracer),
		logger.FXModule,
		fx.Provide(func(l logger.Logger) tracer.Logger { return l }),
		tracer.FXModule,
		o.backend(o, cfg),
	}
	if o.Metrics {
		opts = append(opts, fx.Supply(cfg.Metrics), metrics.FXModule)
	}
	return fx.Options(opts...)
}

type action func(ctx context.Context, p provider.Provider) (interface{}, error)

// run starts the application for one command, executes fn inside a span
// and prints its result as JSON.
func (o *RootOptions) run(cmd *cobra.Command, fn action) error {
	cfg, err := loadConfig(o.ConfigPath, o.EnvFile)
	if err != nil {
		return err
	}

	var (
		p   provider.Provider
		tr  *tracer.Tracer
		log logger.Logger
	)
	app := fx.New(o.modules(cfg), fx.Populate(&p, &tr, &log))
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), o.Timeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
		defer stopCancel()
		_ = app.Stop(stopCtx)
	}()

	ctx, span := tr.StartSpan(ctx, "sodactl."+cmd.Name())
	defer span.End()
	tr.SetAttributes(span, map[string]interface{}{"backend": o.Backend})

	result, err := fn(ctx, p)
	if err != nil {
		tr.RecordErrorOnSpan(span, err)
		log.ErrorWithContext(ctx, "command failed", err, map[string]interface{}{"command": cmd.Name()})
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
