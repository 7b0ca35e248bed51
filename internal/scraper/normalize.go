package scraper

import "strings"

// Scheme returns the part of targetURL before its first ":".
func Scheme(targetURL string) string {
	scheme, _, _ := strings.Cut(targetURL, ":")

	return scheme
}

// FixProtocol gives every link an explicit scheme borrowed from targetURL.
//
// A link containing ":" anywhere is assumed to carry a scheme already and is
// returned unchanged. Any other link is prefixed with "<scheme>:", which turns
// protocol-relative links such as "//cdn.example.com/a.png" into absolute
// URLs. Relative paths like "../img/a.png" are not resolved against targetURL.
func FixProtocol(targetURL string, links []string) []string {
	prefix := Scheme(targetURL) + ":"

	out := make([]string, 0, len(links))
	for _, link := range links {
		if strings.Contains(link, ":") {
			out = append(out, link)

			continue
		}
		out = append(out, prefix+link)
	}

	return out
}
