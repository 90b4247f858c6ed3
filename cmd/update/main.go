// Package main is the one-shot updater, meant to be run from cron. It runs
// every enabled integration once and exits non-zero if any of them failed.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pkordes/status-bot/internal/app"
	"github.com/pkordes/status-bot/internal/config"
	"github.com/pkordes/status-bot/internal/logging"
)

func main() {
	if err := newRootCmd(run).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options are the parsed command-line flags.
type options struct {
	force        bool
	integrations []string
}

// apply overrides cfg with the flags that have a config counterpart.
func (o options) apply(cfg config.Config) config.Config {
	if len(o.integrations) > 0 {
		cfg.EnabledIntegrations = o.integrations
	}
	return cfg
}

func newRootCmd(runFn func(context.Context, options) error) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Updates your Slack status from your enabled integrations",
		Long: `Runs every integration named in ENABLED_INTEGRATIONS once, in order.

A status that has not expired yet is left alone unless
--ignore-slack-status-expiration is given.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFn(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.force, "ignore-slack-status-expiration", false,
		"update your status regardless of its expiration time")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "alias for --ignore-slack-status-expiration")
	cmd.Flags().StringSliceVar(&opts.integrations, "integrations", nil,
		"run these integrations instead of ENABLED_INTEGRATIONS")
	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.CheckFiles(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	cfg = opts.apply(cfg)

	logger, logCloser := logging.New(os.Stderr, logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer logCloser.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.Update(ctx, opts.force)
	for _, r := range results {
		if r.Error == "" {
			logger.Info("integration finished", "integration", r.Name, "updated", r.Status.Updated, "reason", r.Status.Reason, "text", r.Status.Text)
		}
	}
	if err != nil {
		return fmt.Errorf("%w. See logs for more", err)
	}
	return nil
}
