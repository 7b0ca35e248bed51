// Package report renders the results of a run: progress lines for the
// terminal and an optional JSON summary file.
package report

import (
	"fmt"
	"io"
	"sync"
)

// Console prints user-facing progress lines. When silent, nothing is written.
// It is safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	silent bool
}

// NewConsole returns a Console writing to out.
func NewConsole(out io.Writer, silent bool) *Console {
	if out == nil {
		out = io.Discard
	}

	return &Console{out: out, silent: silent}
}

// Printf writes one formatted line.
func (c *Console) Printf(format string, args ...any) {
	if c == nil || c.silent {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = fmt.Fprintf(c.out, format+"\n", args...)
}

// Lines writes a header line followed by each item indented with a tab.
// The block is written without interleaving.
func (c *Console) Lines(header string, items []string) {
	if c == nil || c.silent {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = fmt.Fprintln(c.out, header)
	for _, item := range items {
		_, _ = fmt.Fprintf(c.out, "\t%s\n", item)
	}
	_, _ = fmt.Fprintln(c.out)
}
