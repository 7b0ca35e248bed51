package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"scraper/pkg/domain"
	"scraper/pkg/logger"
	"scraper/pkg/metrics"
	"scraper/pkg/report"
	"scraper/pkg/serrors"
	"scraper/pkg/webclient"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Action tells the batch what to do once a link has been processed.
type Action int

const (
	// ActionContinue moves on to the next link.
	ActionContinue Action = iota
	// ActionAbort abandons every link not yet started.
	ActionAbort
)

func (a Action) String() string {
	if a == ActionAbort {
		return "abort"
	}

	return "continue"
}

// Options controls how a Downloader treats each link.
type Options struct {
	// Dir is the destination directory. It must already be writable.
	Dir string
	// DryRun reports every link without retrieving or writing anything.
	DryRun bool
	// HaltOnError turns a failed download into ActionAbort.
	HaltOnError bool
	// Wait is the pause after each successful download.
	Wait time.Duration
}

// Downloader retrieves one link into the destination directory.
//
// Every link produces exactly one Outcome. A failure is reported on the
// console and, unless HaltOnError is set, the batch keeps going. After a
// successful retrieval the Downloader sleeps for Wait so that consecutive
// requests to the same server are spaced out; the sleep ends early when ctx
// is cancelled.
type Downloader struct {
	client  webclient.Client
	options Options
	console *report.Console
	metrics *metrics.Recorder
}

// NewDownloader constructs a Downloader. console and recorder may be nil.
func NewDownloader(client webclient.Client, options Options, console *report.Console,
	recorder *metrics.Recorder,
) *Downloader {
	return &Downloader{
		client:  client,
		options: options,
		console: console,
		metrics: recorder,
	}
}

// FileName returns the local name for link: the text after its last "/".
func FileName(link string) string {
	return link[strings.LastIndex(link, "/")+1:]
}

// Work processes a single link and maps the result to an Action.
func (d *Downloader) Work(ctx context.Context, link string) (domain.Outcome, Action) {
	name := FileName(link)
	path := filepath.Join(d.options.Dir, name)
	outcome := domain.Outcome{URL: link, Path: path}
	ctx = logger.WithFields(ctx, zap.String("url", link), zap.String("path", path))

	d.console.Printf("[+] Downloading %s to %s...", link, path)

	if d.options.DryRun {
		d.console.Printf("[!] Dry Run, no file saved!")
		d.console.Printf("[+] Done.")
		outcome.Status = domain.OutcomeSkipped
		d.metrics.Outcome(ctx, outcome)

		return outcome, ActionContinue
	}

	start := time.Now()
	n, err := d.save(ctx, link, name, path)
	outcome.Elapsed = time.Since(start)

	if err != nil {
		outcome.Status = domain.OutcomeFailed
		outcome.Err = serrors.Wrap(serrors.ErrDownload, err, "could not download %s", link)
		d.metrics.Outcome(ctx, outcome)
		logger.Debug(ctx, "download failed", zap.Error(err), zap.Duration("elapsed", outcome.Elapsed))

		if d.options.HaltOnError {
			return outcome, ActionAbort
		}
		d.console.Printf("[-] Download of %s failed: %v", link, err)

		return outcome, ActionContinue
	}

	outcome.Status = domain.OutcomeSuccess
	outcome.Bytes = n
	d.metrics.Outcome(ctx, outcome)
	logger.Debug(ctx, "download finished", zap.Int64("bytes", n), zap.Duration("elapsed", outcome.Elapsed))
	d.console.Printf("[+] Done.")

	d.pause(ctx)

	return outcome, ActionContinue
}

// save streams link into path. The file is only created once the server starts
// sending a body, and it is removed again if the transfer fails halfway.
func (d *Downloader) save(ctx context.Context, link, name, path string) (int64, error) {
	if name == "" || name == "." || name == ".." {
		return 0, fmt.Errorf("link %q has no file name", link)
	}

	f := &lazyFile{path: path}
	n, err := d.client.Download(ctx, link, f)
	if err == nil {
		err = f.open()
	}
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("could not close %s: %w", path, closeErr)
	}

	if err != nil {
		if f.opened() {
			if rmErr := os.Remove(path); rmErr != nil {
				logger.Warn(ctx, "could not remove partial file", zap.Error(rmErr))
			}
		}

		return n, err //nolint: wrapcheck
	}

	return n, nil
}

func (d *Downloader) pause(ctx context.Context) {
	if d.options.Wait <= 0 {
		return
	}

	timer := time.NewTimer(d.options.Wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// lazyFile creates its file on the first write.
type lazyFile struct {
	path string
	f    *os.File
}

func (l *lazyFile) open() error {
	if l.f != nil {
		return nil
	}
	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", l.path, err)
	}
	l.f = f

	return nil
}

func (l *lazyFile) opened() bool { return l.f != nil }

func (l *lazyFile) Write(p []byte) (int, error) {
	if err := l.open(); err != nil {
		return 0, err
	}

	return l.f.Write(p) //nolint: wrapcheck
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}

	return l.f.Close() //nolint: wrapcheck
}
