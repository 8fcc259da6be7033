package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/noelruault/shepherd/internal/aws"
	"github.com/noelruault/shepherd/internal/cache"
	"github.com/noelruault/shepherd/internal/config"
	"github.com/noelruault/shepherd/internal/core"
	"github.com/noelruault/shepherd/internal/ui"
	"github.com/noelruault/shepherd/internal/version"
)

const identityTimeout = 5 * time.Second

// options holds the command line overrides for the config file.
type options struct {
	configPath string
	region     string
	profile    string
	cachePath  string
	logFile    string
	tickRate   time.Duration
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "shepherd",
		Short: "Terminal dashboard for AWS Lambda functions",
		Long: `shepherd lists the Lambda functions of an AWS region, lets you fuzzy
search them and shows a dashboard with the last 24 hours of metrics and
the triggers of the selected function.`,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context(), cmd, opts)
		},
	}
	bindFlags(rootCmd.PersistentFlags(), opts)

	rootCmd.AddCommand(newCacheCmd(opts), newVersionCmd())
	return rootCmd
}

func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/shepherd/config.toml)")
	flags.StringVar(&opts.region, "region", "", "AWS region")
	flags.StringVar(&opts.profile, "profile", "", "AWS shared config profile")
	flags.StringVar(&opts.cachePath, "cache", "", "function list cache file (default ~/.config/shepherd/lambdas-<profile>-<region>.json)")
	flags.StringVar(&opts.logFile, "log-file", "", "write debug logs to this file")
	flags.DurationVar(&opts.tickRate, "tick", 0, "render tick rate (default 250ms)")
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("region") && opts.region != "" {
		cfg.Region = opts.region
	}
	if flags.Changed("profile") {
		cfg.Profile = opts.profile
	}
	if flags.Changed("cache") {
		path, err := config.ExpandPath(opts.cachePath)
		if err != nil {
			return nil, fmt.Errorf("cache path: %w", err)
		}
		cfg.CachePath = path
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("tick") {
		if opts.tickRate <= 0 {
			return nil, fmt.Errorf("tick rate must be positive, got %s", opts.tickRate)
		}
		cfg.TickRate = opts.tickRate
	}
	return cfg, nil
}

// newLogger returns a file logger when a log file is configured. stdout
// belongs to the terminal UI, so logs are discarded otherwise.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	path, err := config.ExpandPath(cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	f, err := tea.LogToFile(path, "shepherd")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

func runDashboard(ctx context.Context, cmd *cobra.Command, opts *options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := aws.NewClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	idCtx, idCancel := context.WithTimeout(ctx, identityTimeout)
	identity, err := client.CallerIdentity(idCtx)
	idCancel()
	if err != nil {
		logger.Warn("resolve caller identity", "error", err)
	}

	actions := core.NewMailbox[core.Action](ctx)
	states := core.NewMailbox[core.State](ctx)
	manager := core.NewStateManager(client, cache.New(cfg.CacheFile()), actions, states,
		core.WithConsole(client),
		core.WithLogger(logger),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		manager.Run(ctx)
	}()

	logger.Info("starting session", "region", identity.Region, "account", identity.Account, "cache", cfg.CacheFile())
	err = ui.Run(ctx, ui.Options{
		Actions:  actions,
		States:   states,
		Account:  identity.Account,
		Region:   identity.Region,
		TickRate: cfg.TickRate,
		Logger:   logger,
	})

	cancel()
	<-done
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get())
		},
	}
}
