package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"scraper/internal/config"
	"scraper/internal/scraper"
	"scraper/pkg/domain"
	"scraper/pkg/logger"
	"scraper/pkg/metrics"
	"scraper/pkg/report"
	"scraper/pkg/serrors"
	"scraper/pkg/webclient"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type scrapeFlags struct {
	configPath  string
	debug       bool
	silent      bool
	haltOnError bool
	dryRun      bool
	fileTypes   string
	waitTime    int
	concurrency int
	reportPath  string
	metricsPath string
}

func scrapeCommand(stdout io.Writer) *cobra.Command {
	var flags scrapeFlags

	cmd := &cobra.Command{
		Use:   "scraper [flags] <target-url> <destination-dir>",
		Short: "Downloads the files linked from a web page",
		Long: "Fetches a single web page, collects the target of every href, keeps the ones whose\n" +
			"extension is allowed and downloads them into an existing directory.",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return serrors.Wrap(serrors.ErrBadRequest, err, "invalid arguments")
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			logger.Setup(cfg.Environment, logger.Level(flags.debug, flags.silent))

			opts := scraper.NewOptions(cfg)
			opts.TargetURL = args[0]
			opts.Destination = args[1]
			opts.DryRun = flags.dryRun
			opts.HaltOnError = flags.haltOnError

			return runScrape(cmd.Context(), cfg, opts, report.NewConsole(stdout, flags.silent))
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid flags")
	})

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Config file path")
	f.BoolVarP(&flags.debug, "debug", "d", false, "Print debug logs")
	f.BoolVarP(&flags.silent, "silent", "s", false, "Do not print progress, only fatal errors")
	f.BoolVarP(&flags.haltOnError, "halt-error", "e", false, "Stop at the first failed download")
	f.BoolVarP(&flags.dryRun, "dry-run", "D", false, "List the files without downloading them")
	f.StringVarP(&flags.fileTypes, "file-types", "f", config.DefaultFileTypes,
		`Comma-separated extensions to download, "`+scraper.AllowAll+`" for all`)
	f.IntVarP(&flags.waitTime, "wait-time", "w", 1, "Seconds to wait after each download, 0 disables")
	f.IntVar(&flags.concurrency, "concurrency", 1, "Number of downloads in flight")
	f.StringVar(&flags.reportPath, "report", "", "Write a JSON report of the run to this file")
	f.StringVar(&flags.metricsPath, "metrics-file", "", "Write Prometheus metrics of the run to this file")

	return cmd
}

// loadConfig reads the config file and environment, then applies the flags
// that were set explicitly on the command line.
func loadConfig(cmd *cobra.Command, flags scrapeFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not load config")
	}

	changed := cmd.Flags().Changed
	if changed("file-types") {
		cfg.Scraper.FileTypes = flags.fileTypes
	}
	if changed("wait-time") {
		if flags.waitTime < 0 {
			return nil, serrors.With(serrors.ErrBadRequest, "wait time must not be negative, got %d", flags.waitTime)
		}
		cfg.Scraper.WaitTime = time.Duration(flags.waitTime) * time.Second
	}
	if changed("concurrency") {
		cfg.Scraper.Concurrency = flags.concurrency
	}
	if changed("report") {
		cfg.Output.ReportPath = flags.reportPath
	}
	if changed("metrics-file") {
		cfg.Output.MetricsPath = flags.metricsPath
	}

	switch {
	case cfg.Scraper.WaitTime < 0:
		return nil, serrors.With(serrors.ErrBadRequest, "wait time must not be negative, got %s", cfg.Scraper.WaitTime)
	case cfg.Scraper.Concurrency < 1:
		return nil, serrors.With(serrors.ErrBadRequest, "concurrency must be at least 1, got %d", cfg.Scraper.Concurrency)
	case cfg.Scraper.FileTypes == "":
		return nil, serrors.With(serrors.ErrBadRequest, "file types must not be empty")
	}

	return cfg, nil
}

func runScrape(ctx context.Context, cfg *config.Config, opts scraper.Options, console *report.Console) error {
	recorder, err := metrics.New()
	if err != nil {
		return fmt.Errorf("could not set up metrics: %w", err)
	}
	defer func() {
		if err := recorder.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "could not shut down metrics", zap.Error(err))
		}
	}()

	httpClient := &http.Client{
		Transport: webclient.WithLogger(http.DefaultTransport),
		Timeout:   cfg.Scraper.HTTPTimeout,
	}
	client := webclient.New(httpClient, cfg.Scraper.UserAgent)

	logger.Debug(ctx, "starting run",
		zap.String("target", opts.TargetURL),
		zap.String("destination", opts.Destination),
		zap.Bool("dryRun", opts.DryRun),
		zap.Bool("haltOnError", opts.HaltOnError),
		zap.Duration("wait", opts.Wait),
		zap.Int("concurrency", opts.Concurrency))

	summary, runErr := scraper.New(client, opts, console, recorder).Run(ctx)

	if err := writeArtifacts(cfg, summary, recorder); err != nil {
		if runErr != nil {
			logger.Warn(ctx, "could not write run artifacts", zap.Error(err))

			return runErr
		}

		return err
	}

	return runErr
}

// writeArtifacts writes the optional JSON report and metrics textfile.
func writeArtifacts(cfg *config.Config, summary domain.Summary, recorder *metrics.Recorder) error {
	if cfg.Output.ReportPath != "" {
		if err := report.WriteFile(cfg.Output.ReportPath, summary); err != nil {
			return fmt.Errorf("could not write report: %w", err)
		}
	}
	if cfg.Output.MetricsPath != "" {
		if err := recorder.WriteTextfile(cfg.Output.MetricsPath); err != nil {
			return fmt.Errorf("could not write metrics: %w", err)
		}
	}

	return nil
}
