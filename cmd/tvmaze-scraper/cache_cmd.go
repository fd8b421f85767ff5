package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/tvmaze-scraper/internal/cache"
	"github.com/amaumene/tvmaze-scraper/internal/models"
	"github.com/amaumene/tvmaze-scraper/internal/scheduler"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the show cache",
	}
	cmd.AddCommand(newCachePruneCmd(), newCacheStatsCmd())
	return cmd
}

func newCachePruneCmd() *cobra.Command {
	var schedule string
	var daemon bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete expired and corrupt cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			store := cache.New(a.cfg.CacheDir, a.logger, a.metrics)
			if schedule == "" && daemon {
				schedule = a.cfg.PruneSchedule
			}
			if schedule == "" {
				removed, err := store.Prune()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d cache entries\n", removed)
				return nil
			}

			sched := scheduler.NewScheduler(store, schedule, a.logger)
			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer sched.Stop()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			select {
			case sig := <-sigChan:
				a.logger.WithField("signal", sig).Info("Received shutdown signal")
			case <-cmd.Context().Done():
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron schedule to keep pruning on, e.g. \"@every 6h\"")
	cmd.Flags().BoolVar(&daemon, "daemon", false, "keep pruning on PRUNE_SCHEDULE")
	return cmd
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache and id map statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := cache.New(a.cfg.CacheDir, a.logger, a.metrics).Stats()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cache dir: %s\n", a.cfg.CacheDir)
			fmt.Fprintf(out, "entries:   %d (%d expired, %d corrupt, %d bytes)\n", st.Entries, st.Expired, st.Corrupt, st.Bytes)

			db, err := models.NewDatabase(a.cfg.IDMapFile, a.logger, a.metrics)
			if err != nil {
				fmt.Fprintf(out, "id map:    unavailable (%v)\n", err)
				return nil
			}
			defer db.Close()
			n, err := db.Count()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "id map:    %d mappings\n", n)
			return nil
		},
	}
}
