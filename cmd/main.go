// Package main provides the CLI entrypoint of the scraper. It wires flags and
// configuration into the scraping pipeline and turns a failed run into a
// single diagnostic line and a non-zero exit status: 2 for an invalid
// invocation, 1 otherwise.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"scraper/pkg/logger"
	"scraper/pkg/serrors"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	err := scrapeCommand(os.Stdout).ExecuteContext(ctx)
	stop()
	logger.Sync()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error: "+oneLine(err.Error()))
		os.Exit(exitCode(err)) //nolint: gocritic
	}
}

const (
	exitFailure = 1
	exitUsage   = 2
)

// exitCode is exitUsage for invalid invocations and exitFailure for every
// other fatal error.
func exitCode(err error) int {
	if serrors.KindOf(err) == serrors.ErrBadRequest {
		return exitUsage
	}

	return exitFailure
}

// oneLine collapses every run of whitespace, newlines included, into a space.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
