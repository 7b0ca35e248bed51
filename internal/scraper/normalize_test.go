package scraper_test

import (
	"scraper/internal/scraper"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheme(t *testing.T) {
	require.Equal(t, "http", scraper.Scheme("http://example.com/page"))
	require.Equal(t, "https", scraper.Scheme("https://example.com:8443/page"))
	require.Equal(t, "example.com", scraper.Scheme("example.com"))
}

func TestFixProtocol(t *testing.T) {
	cases := []struct {
		name   string
		target string
		in     string
		out    string
	}{
		{
			name:   "protocol relative gets target scheme",
			target: "http://example.com/page",
			in:     "//cdn.example.com/a.jpg",
			out:    "http://cdn.example.com/a.jpg",
		},
		{
			name:   "https target",
			target: "https://example.com/",
			in:     "//cdn.example.com/a.jpg",
			out:    "https://cdn.example.com/a.jpg",
		},
		{
			name:   "absolute link unchanged",
			target: "http://example.com/page",
			in:     "https://x.com/b.png",
			out:    "https://x.com/b.png",
		},
		{
			name:   "colon anywhere means unchanged",
			target: "http://example.com/page",
			in:     "/files/a:b.png",
			out:    "/files/a:b.png",
		},
		{
			name:   "relative path is not resolved",
			target: "http://example.com/page",
			in:     "../img/a.png",
			out:    "http:../img/a.png",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, []string{c.out}, scraper.FixProtocol(c.target, []string{c.in}))
		})
	}
}

func TestFixProtocol_Idempotent(t *testing.T) {
	target := "http://example.com/page"
	links := []string{"//cdn.example.com/a.jpg", "https://x.com/b.png", "/local/c.gif"}

	once := scraper.FixProtocol(target, links)
	require.Equal(t, once, scraper.FixProtocol(target, once))
	require.Len(t, once, len(links))
}
