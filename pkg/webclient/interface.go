// Package webclient retrieves pages and linked files over HTTP(S) on behalf of
// the scraper. Every request carries the configured User-Agent so simple bot
// filters treat the scraper like a browser.
package webclient

import (
	"context"
	"io"
)

// Page is the raw result of fetching the target page.
type Page struct {
	// Body is the unparsed response body.
	Body []byte
	// ContentType is the response Content-Type header, used to detect the charset.
	ContentType string
}

// Client is the abstraction the scraper stages depend on.
//
//go:generate mockgen -package mockwebclient -source=interface.go -destination=mock/mockwebclient.go *
type Client interface {
	// Page performs a single GET of URL and returns the whole body.
	// Transport failures and non-2xx statuses are errors.
	Page(ctx context.Context, URL string) (Page, error)
	// Download performs a single GET of URL and streams the body into w,
	// returning the number of bytes copied.
	Download(ctx context.Context, URL string, w io.Writer) (int64, error)
}
