package webclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response is quoted in an error.
const maxErrorBody = 512

// HTTPClient implements Client on top of net/http. It is safe for concurrent use.
type HTTPClient struct {
	httpClient *http.Client // httpClient performs the requests
	userAgent  string       // userAgent is sent with every request
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
	}

	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Page fetches URL and returns its body and Content-Type.
func (c *HTTPClient) Page(ctx context.Context, URL string) (Page, error) {
	resp, err := c.get(ctx, URL)
	if err != nil {
		return Page{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, fmt.Errorf("could not read response body: %w", err)
	}

	return Page{Body: b, ContentType: resp.Header.Get("Content-Type")}, nil
}

// Download fetches URL and copies its body into w.
func (c *HTTPClient) Download(ctx context.Context, URL string, w io.Writer) (int64, error) {
	resp, err := c.get(ctx, URL)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("could not copy response body: %w", err)
	}

	return n, nil
}

// get issues the GET and checks the status. On success the caller owns resp.Body.
func (c *HTTPClient) get(ctx context.Context, URL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()

		return nil, &StatusError{URL: URL, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	return resp, nil
}

var _ Client = (*HTTPClient)(nil)

// New constructs an HTTPClient that sends userAgent with every request made
// through httpClient.
func New(httpClient *http.Client, userAgent string) *HTTPClient {
	return &HTTPClient{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}
