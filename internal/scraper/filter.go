package scraper

import "strings"

// AllowAll is the allow-list value that disables extension filtering.
const AllowAll = "*"

// AllowList is a set of file extensions without the leading dot. Matching is
// exact and case-sensitive: "PDF" does not allow "pdf".
type AllowList struct {
	all  bool
	exts map[string]struct{}
}

// ParseAllowList builds an AllowList from a comma-separated value. Entries are
// kept exactly as given. AllowAll yields a list that allows every link.
func ParseAllowList(value string) AllowList {
	if value == AllowAll {
		return AllowList{all: true}
	}

	exts := make(map[string]struct{})
	for _, ext := range strings.Split(value, ",") {
		exts[ext] = struct{}{}
	}

	return AllowList{exts: exts}
}

// AllowsAll reports whether filtering is disabled.
func (a AllowList) AllowsAll() bool { return a.all }

// Allows reports whether link passes the list.
func (a AllowList) Allows(link string) bool {
	if a.all {
		return true
	}
	_, ok := a.exts[Extension(link)]

	return ok
}

// Extension returns the text after the last "." of link, or link itself when
// it has no ".". Query strings and fragments are not stripped, so
// "file.pdf?x=1" has the extension "pdf?x=1".
func Extension(link string) string {
	return link[strings.LastIndex(link, ".")+1:]
}

// Filter returns the links allowed by allow, preserving order.
func Filter(links []string, allow AllowList) []string {
	if allow.AllowsAll() {
		return links
	}

	out := make([]string, 0, len(links))
	for _, link := range links {
		if allow.Allows(link) {
			out = append(out, link)
		}
	}

	return out
}
