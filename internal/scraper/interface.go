package scraper

import (
	"context"
	"scraper/pkg/domain"
)

// Scraper runs the whole pipeline for one target page.
type Scraper interface {
	Run(ctx context.Context) (domain.Summary, error)
}
