package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"nautilus/internal/feature/stock/adapters/csvimport"
	symbollistadapters "nautilus/internal/feature/symbollist/adapters"
	symbolentity "nautilus/internal/feature/symbollist/domain/entity"
	"nautilus/internal/platform/scheduler"
)

// storedIntervals are the candle intervals written by ingestion.
var storedIntervals = map[string]bool{"1day": true, "60min": true, "5min": true}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch history for every active watchlist symbol",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app) error {
			if err := a.ingestWatchlist(ctx); err != nil {
				return err
			}
			slog.Info("ingest ok")
			return nil
		}),
	}
}

type csvOptions struct {
	symbol   string
	interval string
	timezone string
}

func newCSVCmd() *cobra.Command {
	var opts csvOptions
	cmd := &cobra.Command{
		Use:   "csv FILE",
		Short: "Import candles from a CSV file with a time,open,high,low,close,volume header",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(*cobra.Command, []string) error {
			if !storedIntervals[opts.interval] {
				return fmt.Errorf("unsupported interval %q (want 1day, 60min or 5min)", opts.interval)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(opts.timezone)
			if err != nil {
				return fmt.Errorf("timezone: %w", err)
			}
			candles, err := csvimport.ParseFile(args[0], loc)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				if err := a.ingest.Import(ctx, opts.symbol, opts.interval, candles); err != nil {
					return err
				}
				slog.Info("imported csv", "file", args[0], "symbol", opts.symbol, "interval", opts.interval, "count", len(candles))
				return nil
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&opts.symbol, "symbol", "", "ticker the rows belong to")
	cmd.Flags().StringVar(&opts.interval, "interval", "1day", "bar interval: 1day, 60min or 5min")
	cmd.Flags().StringVar(&opts.timezone, "tz", "America/New_York", "zone of timestamps without offset")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func newScheduleCmd() *cobra.Command {
	var (
		spec   string
		tz     string
		runNow bool
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the watchlist ingest on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app) error {
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("timezone: %w", err)
			}
			s := scheduler.New(ctx, loc)
			if err := s.Add("ingest", spec, a.ingestWatchlist); err != nil {
				return err
			}
			if runNow {
				if err := a.ingestWatchlist(ctx); err != nil {
					slog.Error("initial ingest failed", "error", err)
				}
			}
			s.Run(ctx)
			return nil
		}),
	}
	cmd.Flags().StringVar(&spec, "cron", "0 0 22 * * 1-5", "six-field cron spec, seconds first")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "zone the cron spec is evaluated in")
	cmd.Flags().BoolVar(&runNow, "run-now", false, "ingest once before waiting for the first tick")
	return cmd
}

func newSymbolCmd() *cobra.Command {
	var (
		name     string
		market   string
		sortKey  int
		inactive bool
	)
	cmd := &cobra.Command{
		Use:   "symbol CODE",
		Short: "Add or update a watchlist symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				s := &symbolentity.Symbol{
					Code:     args[0],
					Name:     name,
					Market:   market,
					IsActive: !inactive,
					SortKey:  sortKey,
				}
				if s.Name == "" {
					s.Name = s.Code
				}
				if err := symbollistadapters.NewSymbolRepository(a.db).Upsert(ctx, s); err != nil {
					return err
				}
				slog.Info("symbol saved", "code", s.Code, "name", s.Name, "active", s.IsActive)
				return nil
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to CODE)")
	cmd.Flags().StringVar(&market, "market", "US", "listing market")
	cmd.Flags().IntVar(&sortKey, "sort", 0, "display order")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "store the symbol without ingesting or listing it")
	return cmd
}
