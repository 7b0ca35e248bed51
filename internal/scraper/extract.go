package scraper

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// ExtractLinks returns the href value of every element that has one, in
// document order, keeping only the first occurrence of identical strings.
//
// The markup is parsed the way browsers do, so broken HTML never causes an
// error; only failing to read r does. contentType may be empty; when it or a
// <meta> tag names a non-UTF-8 charset the markup is decoded first.
func ExtractLinks(r io.Reader, contentType string) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read markup: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(decode(raw, contentType))
	if err != nil {
		return nil, fmt.Errorf("could not parse markup: %w", err)
	}

	seen := make(map[string]struct{})
	var out []string
	doc.Find("[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		out = append(out, href)
	})

	return out, nil
}

// fallbackEncoding is what charset detection reports when nothing in the
// headers or markup names an encoding.
const fallbackEncoding = "windows-1252"

// decode returns raw as UTF-8. An encoding named by the Content-Type, a BOM or
// a <meta> tag is honoured, except that markup which is valid UTF-8 is never
// read as windows-1252 unless the Content-Type or a BOM says so. Only
// undeclared markup that is not valid UTF-8 falls back to windows-1252.
func decode(raw []byte, contentType string) io.Reader {
	enc, name, certain := charset.DetermineEncoding(raw, contentType)
	if name == "utf-8" || (!certain && name == fallbackEncoding && utf8.Valid(raw)) {
		return bytes.NewReader(raw)
	}

	return transform.NewReader(bytes.NewReader(raw), enc.NewDecoder())
}
