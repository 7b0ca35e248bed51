package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"scraper/pkg/serrors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSite(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		host := "http://" + r.Host
		_, _ = w.Write([]byte(`<html><body>
<a href="` + host + `/files/a.jpg">a</a>
<a href="` + host + `/files/b.pdf">b</a>
<a href="` + host + `/files/missing.png">missing</a>
<a href="/index.html">home</a>
</body></html>`))
	})
	mux.HandleFunc("/files/a.jpg", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("jpeg"))
	})
	mux.HandleFunc("/files/b.pdf", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("pdf"))
	})
	mux.HandleFunc("/files/missing.png", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.NotFound(w, nil)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := scrapeCommand(&out)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestScrape_DownloadsAndReports(t *testing.T) {
	var hits atomic.Int32
	srv := newSite(t, &hits)
	dir := t.TempDir()
	artifacts := t.TempDir()
	reportPath := filepath.Join(artifacts, "report.json")
	metricsPath := filepath.Join(artifacts, "scraper.prom")

	out, err := execute(t, "-w", "0", "--report", reportPath, "--metrics-file", metricsPath, srv.URL+"/page", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	require.Equal(t, "jpeg", string(content))
	content, err = os.ReadFile(filepath.Join(dir, "b.pdf"))
	require.NoError(t, err)
	require.Equal(t, "pdf", string(content))
	_, err = os.Stat(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.Contains(t, out, "[+] Found 3 hotlinks.")
	require.Contains(t, out, "[-] Download of "+srv.URL+"/files/missing.png failed")
	require.Contains(t, out, "[+] Finished: 2 downloaded, 0 skipped, 1 failed.")

	rep, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var got struct {
		Totals map[string]int `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(rep, &got))
	require.Equal(t, 2, got.Totals["success"])
	require.Equal(t, 1, got.Totals["failed"])

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(prom), "scraper_links_found")
	require.Contains(t, string(prom), `outcome="success"`)
}

func TestScrape_FileTypesFlag(t *testing.T) {
	var hits atomic.Int32
	srv := newSite(t, &hits)
	dir := t.TempDir()

	_, err := execute(t, "-w", "0", "-f", "pdf", "-s", srv.URL+"/page", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "b.pdf", entries[0].Name())
}

func TestScrape_DryRun(t *testing.T) {
	var hits atomic.Int32
	srv := newSite(t, &hits)
	dir := t.TempDir()

	out, err := execute(t, "-D", srv.URL+"/page", dir)
	require.NoError(t, err)
	require.EqualValues(t, 1, hits.Load(), "only the page is fetched")
	require.Contains(t, out, "[!] Dry Run, no file saved!")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestScrape_HaltOnError(t *testing.T) {
	var hits atomic.Int32
	srv := newSite(t, &hits)

	_, err := execute(t, "-w", "0", "-e", "-f", "png", srv.URL+"/page", t.TempDir())
	require.ErrorIs(t, err, serrors.ErrHalted)
}

func TestScrape_Silent(t *testing.T) {
	var hits atomic.Int32
	srv := newSite(t, &hits)

	out, err := execute(t, "-w", "0", "-s", srv.URL+"/page", t.TempDir())
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestScrape_MissingDestination(t *testing.T) {
	var hits atomic.Int32
	srv := newSite(t, &hits)

	_, err := execute(t, srv.URL+"/page", filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, serrors.ErrUnwritable)
	require.Zero(t, hits.Load())
}

func TestScrape_PageNotFound(t *testing.T) {
	var hits atomic.Int32
	srv := newSite(t, &hits)

	_, err := execute(t, srv.URL+"/nowhere", t.TempDir())
	require.ErrorIs(t, err, serrors.ErrFetch)
}

func TestScrape_BadArguments(t *testing.T) {
	_, err := execute(t, "-w", "-1", "http://example.com", t.TempDir())
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = execute(t, "--concurrency", "0", "http://example.com", t.TempDir())
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, err = execute(t, "http://example.com")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.Equal(t, exitUsage, exitCode(err))
}

func TestExitCode(t *testing.T) {
	var hits atomic.Int32
	srv := newSite(t, &hits)

	_, err := execute(t, "-w", "-1", "http://example.com", t.TempDir())
	require.Equal(t, exitUsage, exitCode(err))

	_, err = execute(t, srv.URL+"/page", filepath.Join(t.TempDir(), "nope"))
	require.Equal(t, exitFailure, exitCode(err))

	_, err = execute(t, srv.URL+"/nowhere", t.TempDir())
	require.Equal(t, exitFailure, exitCode(err))

	_, err = execute(t, "--no-such-flag", "http://example.com", t.TempDir())
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.Equal(t, exitUsage, exitCode(err))

	require.Equal(t, exitFailure, exitCode(context.Canceled))
}

func TestScrape_ConfigFile(t *testing.T) {
	var hits atomic.Int32
	srv := newSite(t, &hits)
	dir := t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("scraper:\n  fileTypes: jpg\n"), 0o600))

	_, err := execute(t, "-c", cfgPath, "-w", "0", srv.URL+"/page", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a.jpg", entries[0].Name())
}

func TestOneLine(t *testing.T) {
	require.Equal(t, "a b c", oneLine("a\nb\t  c\n"))
	require.False(t, strings.Contains(oneLine("x\r\ny"), "\n"))
}
