package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harness/nexus-migrate/config"
	"github.com/harness/nexus-migrate/internal/terminal"
	"github.com/harness/nexus-migrate/module/migrate"
	"github.com/harness/nexus-migrate/module/migrate/crawler"
	"github.com/harness/nexus-migrate/util/common/printer"
	"github.com/harness/nexus-migrate/util/common/progress"

	"github.com/MakeNowJust/heredoc"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var errArtifactsFailed = errors.New("one or more artifacts failed to migrate")

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy every missing artifact to the destination repository",
		Long: heredoc.Doc(`
			Crawl the source repository, check each artifact against the
			destination and upload the ones it does not have.

			The command exits with status 1 when the run was aborted or when
			any artifact failed.
		`),
		Example: heredoc.Doc(`
			$ nexus-migrate sync -c config.yaml
			$ nexus-migrate sync -c config.yaml --concurrency 8 --failure-mode continue
			$ nexus-migrate sync -c config.yaml --details
		`),
		Args: cobra.NoArgs,
		RunE: runSync,
	}
	cmd.Flags().IntVar(&config.Global.Concurrency, "concurrency", 0,
		"Number of artifacts migrated in parallel (overrides config)")
	cmd.Flags().StringVar(&config.Global.FailureMode, "failure-mode", "",
		"What to do when an artifact can not be checked or downloaded, stop or continue (overrides config)")
	cmd.Flags().StringVar(&config.Global.TempDir, "temp-dir", "",
		"Directory for downloaded artifacts (overrides config)")
	cmd.Flags().BoolVar(&config.Global.Details, "details", false,
		"Print the outcome of every artifact after the summary")
	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := terminal.Detect(config.Global.NoColor)
	reporter := progress.Reporter(progress.NewNopReporter())
	if !config.Global.Verbose && config.Global.Output != "json" {
		reporter = progress.NewAutoReporter(info, cmd.OutOrStdout())
	}
	defer reporter.End()

	crawled := false
	opts := []migrate.Option{
		migrate.WithOnCandidates(func(count int) {
			crawled = true
			reporter.Success(fmt.Sprintf("%d artifacts to check", count))
		}),
	}
	if info.LiveOutput {
		opts = append(opts, migrate.WithCrawlerOptions(crawler.WithOnDirectory(reporter.Step)))
	}

	svc, err := migrate.NewMigrationService(cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to create migration service: %w", err)
	}

	reporter.Start("Crawling source repository")
	report, runErr := svc.Run(ctx)
	if !crawled {
		reporter.Error("Crawl failed")
	}
	if errors.Is(runErr, context.Canceled) && ctx.Err() != nil {
		pterm.Warning.Println("Received interrupt signal, shutting down gracefully...")
	}

	if config.Global.Output == "json" {
		if err := printer.PrintJSON(cmd.OutOrStdout(), printer.Summarize(report, runErr)); err != nil {
			return err
		}
	} else {
		if err := printer.PrintReport(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if config.Global.Details {
			if err := printer.PrintFileStats(cmd.OutOrStdout(), report.Stats()); err != nil {
				return err
			}
		}
	}
	if runErr != nil {
		return runErr
	}
	if report.Failed() > 0 {
		return errArtifactsFailed
	}
	pterm.Success.Println("Migration completed successfully")
	return nil
}
