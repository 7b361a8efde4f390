// Command complete-bookings completes every confirmed booking whose
// checkout grace period has passed, then exits. Meant for cron.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"sublet-booking/cmd/bootstrap"
	"sublet-booking/internal/pkg/config"
	"sublet-booking/internal/usecase/commands"

	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

func main() {
	fs := pflag.NewFlagSet("complete-bookings", pflag.ContinueOnError)
	limit := fs.Int("limit", commands.DefaultCompleteDueBatch, "maximum bookings to complete in this run")
	timeout := fs.Duration("timeout", 5*time.Minute, "overall timeout")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(*limit, *timeout); err != nil {
		slog.Error("completion run failed", "error", err)
		os.Exit(1)
	}
}

func run(limit int, timeout time.Duration) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	var (
		cmds   commands.BookingCommands
		logger *slog.Logger
	)
	app := fx.New(
		bootstrap.CoreModule(cfg),
		fx.Populate(&cmds, &logger),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			logger.Error("failed to stop application cleanly", "error", err)
		}
	}()

	res, err := cmds.CompleteDue(ctx, limit)
	if err != nil {
		return err
	}
	logger.Info("completion run finished", "completed", len(res.Completed), "failed", len(res.Failed))
	if len(res.Failed) > 0 {
		logger.Warn("some bookings were not completed", "booking_ids", res.Failed)
	}
	return nil
}
