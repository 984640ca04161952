package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/ipl-stats-service/internal/app/stats"
	"github.com/preston-bernstein/ipl-stats-service/internal/config"
	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
	"github.com/preston-bernstein/ipl-stats-service/internal/logging"
	"github.com/preston-bernstein/ipl-stats-service/internal/server"
	"github.com/preston-bernstein/ipl-stats-service/internal/store"
)

type options struct {
	provider string
	edition  string
	envFile  string
	asJSON   bool
	logLevel string
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd(os.Stdout, os.Stderr).Execute()
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "iplctl",
		Short:         "iplctl - IPL match and delivery statistics",
		Long:          "Run the dashboard views against the matches and deliveries datasets.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.provider, "provider", "", "dataset provider (fixture, file, remote, sqlite, postgres); defaults to PROVIDER")
	flags.StringVar(&opts.edition, "edition", "", "view edition; defaults to DEFAULT_EDITION or the first edition")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.BoolVar(&opts.asJSON, "json", false, "print JSON instead of tables")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(newEditionsCmd(opts))
	root.AddCommand(newViewsCmd(opts))
	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newResolveCmd(opts))
	root.AddCommand(newSummaryCmd(opts))
	return root
}

// session bundles everything a command needs after configuration is read.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	service *stats.Service
}

func (o *options) config() (config.Config, error) {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return config.Config{}, err
	}
	cfg := config.Load()
	if o.provider != "" {
		cfg.Provider = o.provider
	}
	if o.edition != "" {
		cfg.Views.DefaultEdition = o.edition
	}
	// The CLI loads once; watching and polling only apply to the server.
	cfg.Reload = config.ReloadConfig{}
	return cfg, nil
}

// open reads configuration and builds the service. When load is set the
// dataset is fetched from the configured provider and installed.
func (o *options) open(cmd *cobra.Command, load bool) (*session, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(logging.Config{
		Level:  o.logLevel,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})

	catalog, runner, err := stats.NewViews(cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	s := &session{
		cfg:     cfg,
		logger:  logger,
		service: stats.NewService(store.NewDatasetStore(), catalog, runner),
	}
	if load {
		ds, err := loadDataset(cmd.Context(), cfg, logger)
		if err != nil {
			return nil, err
		}
		s.service.Set(ds)
	}
	return s, nil
}

func loadDataset(ctx context.Context, cfg config.Config, logger *slog.Logger) (*dataset.Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := server.NewProvider(ctx, cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	if c, ok := provider.(interface{ Close() error }); ok {
		defer c.Close()
	}
	return dataset.Load(ctx, provider)
}
