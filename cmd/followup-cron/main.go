// Command followup-cron runs the scheduled follow-up sweep. It stays in the
// foreground and sweeps on FOLLOWUP_SWEEP_SCHEDULE (standard five-field cron,
// evaluated in FOLLOWUP_TIMEZONE) until interrupted. With -once it sweeps a
// single time and exits, for use from an external scheduler.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/liamdatt/invoicegen/internal/app"
	"github.com/liamdatt/invoicegen/internal/service/followup"
	"github.com/liamdatt/invoicegen/pkg/ctxutil"
)

const sweepTimeout = 30 * time.Minute

func main() {
	once := flag.Bool("once", false, "run one sweep and exit")
	flag.Parse()

	cfg, logger, err := app.Bootstrap()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("start", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	if *once {
		if err := sweep(ctx, a.FollowUps, logger); err != nil {
			a.Close()
			os.Exit(1)
		}
		return
	}

	loc := followup.ParseTimezone(cfg.FollowUp.Timezone)
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := c.AddFunc(cfg.FollowUp.SweepSchedule, func() {
		_ = sweep(ctx, a.FollowUps, logger)
	}); err != nil {
		logger.Error("schedule sweep",
			slog.String("schedule", cfg.FollowUp.SweepSchedule),
			slog.String("error", err.Error()),
		)
		a.Close()
		os.Exit(1)
	}

	c.Start()
	logger.Info("follow-up scheduler started",
		slog.String("schedule", cfg.FollowUp.SweepSchedule),
		slog.String("timezone", loc.String()),
	)

	<-ctx.Done()
	logger.Info("shutting down, waiting for running sweep")
	<-c.Stop().Done()
}

type sweeper interface {
	Sweep(ctx context.Context) (followup.SweepReport, error)
}

// sweep runs one sweep detached from ctx's cancellation, bounded by
// sweepTimeout. A shutdown signal lets the running sweep finish so every
// delivered message is recorded.
func sweep(ctx context.Context, svc sweeper, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sweepTimeout)
	defer cancel()
	ctx, _ = ctxutil.NewRun(ctx)

	report, err := svc.Sweep(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "sweep failed", slog.String("error", err.Error()))
		return err
	}
	logger.InfoContext(ctx, "sweep completed",
		slog.Int("due", report.Due),
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
		slog.Int("errored", report.Errored),
	)
	return nil
}
