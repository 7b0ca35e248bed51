package worker

import (
	"context"
	"fmt"
	"scraper/pkg/domain"
	"scraper/pkg/logger"
	"scraper/pkg/serrors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Worker processes a single link.
//
//go:generate mockgen -package mockworker -source=worker.go -destination=mock/mockworker.go *
type Worker interface {
	Work(ctx context.Context, link string) (domain.Outcome, Action)
}

// Batch runs a Worker over a list of links with bounded concurrency.
type Batch struct {
	worker      Worker
	concurrency int
}

// NewBatch constructs a Batch. A concurrency below one is treated as one,
// which processes links strictly in order.
func NewBatch(worker Worker, concurrency int) *Batch {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Batch{worker: worker, concurrency: concurrency}
}

// Run processes links and returns the outcomes of every link that was
// started, in the order of links.
//
// When a worker answers ActionAbort no further link is started, links already
// in flight finish, and Run returns an ErrHalted error wrapping the failure.
// When ctx is cancelled Run stops the same way and returns ctx.Err().
func (b *Batch) Run(ctx context.Context, links []string) ([]domain.Outcome, error) {
	logger.Debug(ctx, "starting download batch", zap.Int("links", len(links)), zap.Int("concurrency", b.concurrency))

	outcomes := make([]domain.Outcome, len(links))
	started := make([]bool, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, link := range links {
		if gctx.Err() != nil {
			break
		}

		i, link := i, link
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			started[i] = true

			outcome, action := b.worker.Work(gctx, link)
			outcomes[i] = outcome
			if action == ActionAbort {
				return serrors.Wrap(serrors.ErrHalted, outcome.Err, "halted on failed download")
			}

			return nil
		})
	}

	err := g.Wait()

	done := make([]domain.Outcome, 0, len(links))
	for i, ok := range started {
		if ok {
			done = append(done, outcomes[i])
		}
	}

	if err != nil {
		return done, err //nolint: wrapcheck
	}
	if ctx.Err() != nil {
		return done, fmt.Errorf("download batch interrupted: %w", ctx.Err())
	}

	logger.Debug(ctx, "download batch finished", zap.Int("attempted", len(done)))

	return done, nil
}
