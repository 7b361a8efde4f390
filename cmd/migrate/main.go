// Command migrate applies the SQL migrations in migrations/ with the atlas CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"sublet-booking/internal/handler/middleware"
	"sublet-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/spf13/pflag"
)

type options struct {
	dir        string
	atlasBin   string
	statusOnly bool
	timeout    time.Duration
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	fs.StringVar(&opts.dir, "dir", "migrations", "migration directory")
	fs.StringVar(&opts.atlasBin, "atlas", "atlas", "path to the atlas binary")
	fs.BoolVar(&opts.statusOnly, "status", false, "print pending migrations without applying them")
	fs.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall timeout")
	return opts, fs.Parse(args)
}

func run(opts options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return fmt.Errorf("migrations only apply to STORAGE_DRIVER=%s", config.StorageDriverPostgres)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	client, err := atlasexec.NewClient(".", opts.atlasBin)
	if err != nil {
		return fmt.Errorf("failed to initialize atlas client: %w", err)
	}
	url := cfg.DB.BuildDSN()
	dirURL := "file://" + opts.dir

	status, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{URL: url, DirURL: dirURL})
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	logger.Info("migration status", "current", status.Current, "next", status.Next, "pending", len(status.Pending))
	if opts.statusOnly || len(status.Pending) == 0 {
		return nil
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: url, DirURL: dirURL})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, f := range res.Applied {
		logger.Info("migration applied", "file", f.Name)
	}
	logger.Info("database is up to date", "version", res.Target)
	return nil
}
