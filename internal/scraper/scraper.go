package scraper

import (
	"bytes"
	"context"
	"fmt"
	"scraper/internal/config"
	"scraper/internal/worker"
	"scraper/pkg/domain"
	"scraper/pkg/logger"
	"scraper/pkg/metrics"
	"scraper/pkg/report"
	"scraper/pkg/serrors"
	"scraper/pkg/webclient"
	"time"

	"go.uber.org/zap"
)

// Options configure one scraping run.
type Options struct {
	// TargetURL is the page whose links are harvested. Its scheme is borrowed by
	// links that have none.
	TargetURL string
	// Destination is the existing directory downloaded files are written to.
	Destination string
	// AllowList selects links by extension.
	AllowList AllowList
	// DryRun lists what would be downloaded without retrieving anything.
	DryRun bool
	// HaltOnError stops the run at the first failed download.
	HaltOnError bool
	// Wait is the pause after every successful download.
	Wait time.Duration
	// Concurrency is the number of downloads allowed in flight.
	Concurrency int
}

// NewOptions constructs an Options value from the provided application config.
// Target and destination are left for the caller.
func NewOptions(cfg *config.Config) Options {
	return Options{
		AllowList:   ParseAllowList(cfg.Scraper.FileTypes),
		Wait:        cfg.Scraper.WaitTime,
		Concurrency: cfg.Scraper.Concurrency,
	}
}

// scraper is the concrete implementation of the Scraper interface.
type scraper struct {
	options Options
	client  webclient.Client
	console *report.Console
	metrics *metrics.Recorder
}

// Run executes the pipeline:
//
//	check destination -> fetch page -> extract -> filter -> fix scheme -> download
//
// The destination is checked before any request is made. A failure to fetch
// the page ends the run. Download failures are recorded in the summary and
// only end the run when HaltOnError is set. The returned summary is filled as
// far as the run got, even when an error is returned.
func (s scraper) Run(ctx context.Context) (domain.Summary, error) {
	summary := domain.Summary{TargetURL: s.options.TargetURL, Destination: s.options.Destination}
	ctx = logger.WithFields(ctx, zap.String("target", s.options.TargetURL))

	s.console.Printf("[+] Scraping %s", s.options.TargetURL)
	s.console.Printf("[+] Saving to %s", s.options.Destination)

	if err := CheckWritable(ctx, s.options.Destination); err != nil {
		return summary, err
	}

	page, err := s.client.Page(ctx, s.options.TargetURL)
	if err != nil {
		return summary, serrors.Wrap(serrors.ErrFetch, err, "could not connect to target %s", s.options.TargetURL)
	}
	logger.Debug(ctx, "fetched target page", zap.Int("bytes", len(page.Body)),
		zap.String("contentType", page.ContentType))

	found, err := ExtractLinks(bytes.NewReader(page.Body), page.ContentType)
	if err != nil {
		return summary, serrors.Wrap(serrors.ErrFetch, err, "could not read target %s", s.options.TargetURL)
	}

	links := FixProtocol(s.options.TargetURL, Filter(found, s.options.AllowList))
	logger.Debug(ctx, "selected links", zap.Int("found", len(found)), zap.Int("selected", len(links)),
		zap.Bool("allowAll", s.options.AllowList.AllowsAll()))

	summary.Links = links
	s.metrics.LinksFound(ctx, len(links))
	s.console.Lines(fmt.Sprintf("[+] Found %d hotlinks.", len(links)), links)

	downloader := worker.NewDownloader(s.client, worker.Options{
		Dir:         s.options.Destination,
		DryRun:      s.options.DryRun,
		HaltOnError: s.options.HaltOnError,
		Wait:        s.options.Wait,
	}, s.console, s.metrics)

	summary.Outcomes, err = worker.NewBatch(downloader, s.options.Concurrency).Run(ctx, links)
	if err != nil {
		return summary, fmt.Errorf("could not download links: %w", err)
	}

	s.console.Printf("[+] Finished: %d downloaded, %d skipped, %d failed.",
		summary.Count(domain.OutcomeSuccess),
		summary.Count(domain.OutcomeSkipped),
		summary.Count(domain.OutcomeFailed))

	return summary, nil
}

// New creates a Scraper. console and recorder may be nil to disable progress
// output and metrics.
func New(client webclient.Client, options Options, console *report.Console, recorder *metrics.Recorder) Scraper {
	return scraper{
		options: options,
		client:  client,
		console: console,
		metrics: recorder,
	}
}
