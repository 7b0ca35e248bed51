package webclient

import (
	"net/http"
	"scraper/pkg/logger"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// rtFunc adapts a function to http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// WithLogger wraps next so every outgoing request is logged at debug level
// with a request ID, its status and latency. Requests pass straight through
// when the logger in their context is not at debug level. A nil next means
// http.DefaultTransport.
func WithLogger(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return rtFunc(func(r *http.Request) (*http.Response, error) {
		if !logger.IsDebug(r.Context()) {
			return next.RoundTrip(r) //nolint: wrapcheck
		}

		ctx := logger.WithFields(r.Context(),
			zap.String("request_id", uuid.New().String()),
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
		)

		start := time.Now()
		resp, err := next.RoundTrip(r)
		latency := zap.Float64("latency", time.Since(start).Seconds())
		if err != nil {
			logger.Debug(ctx, "request failed", latency, zap.Error(err))

			return nil, err //nolint: wrapcheck
		}

		logger.Debug(ctx, "request finished",
			latency,
			zap.Int("status_code", resp.StatusCode),
			zap.String("content_type", resp.Header.Get("Content-Type")),
			zap.Int64("content_length", resp.ContentLength),
			zap.String("user_agent", r.UserAgent()),
		)

		return resp, nil
	})
}
