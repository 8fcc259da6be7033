package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/noelruault/shepherd/internal/aws"
	"github.com/noelruault/shepherd/internal/cache"
)

func newCacheCmd(opts *options) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cached function list",
	}

	cacheCmd.AddCommand(
		&cobra.Command{
			Use:   "refresh",
			Short: "Fetch the function list and store it in the cache",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return refreshCache(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the cached function list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(cmd, opts)
				if err != nil {
					return err
				}
				fc := cache.New(cfg.CacheFile())
				if err := fc.Clear(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", fc.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show what the cache holds",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(cmd, opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cacheInfo(cache.New(cfg.CacheFile())))
				return nil
			},
		},
	)
	return cacheCmd
}

func refreshCache(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := aws.NewClient(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	sp.Writer = os.Stderr
	sp.Suffix = fmt.Sprintf(" Listing Lambda functions in %s ...", client.GetRegion())
	sp.Start()
	functions, err := client.ListFunctions(cmd.Context())
	sp.Stop()
	if err != nil {
		return err
	}

	fc := cache.New(cfg.CacheFile())
	if err := fc.Write(functions); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cached %d functions in %s\n", len(functions), fc.Path())
	return nil
}

func cacheInfo(fc *cache.FileCache) string {
	functions, ok := fc.Read()
	if !ok {
		return fmt.Sprintf("No cached function list at %s", fc.Path())
	}
	updated := "at an unknown time"
	if mod, ok := fc.ModTime(); ok {
		updated = humanize.Time(mod)
	}
	return fmt.Sprintf("%s: %d functions, updated %s", fc.Path(), len(functions), updated)
}
