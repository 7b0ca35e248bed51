package domain

import "time"

// OutcomeStatus is the result category of a single link.
type OutcomeStatus string

const (
	// OutcomeSuccess means the file was retrieved and written to disk.
	OutcomeSuccess OutcomeStatus = "SUCCESS"
	// OutcomeSkipped means the link was processed in dry-run mode and nothing was retrieved.
	OutcomeSkipped OutcomeStatus = "SKIPPED"
	// OutcomeFailed means retrieval or writing failed; see Outcome.Err.
	OutcomeFailed OutcomeStatus = "FAILED"
)

// Outcome is the result of processing one normalized link.
type Outcome struct {
	// URL is the normalized link that was processed.
	URL string
	// Path is the destination file derived from the link's last path segment.
	Path string
	// Status is the result category.
	Status OutcomeStatus
	// Bytes is the number of bytes written; zero unless Status is OutcomeSuccess.
	Bytes int64
	// Elapsed is the time spent retrieving and writing the file.
	Elapsed time.Duration
	// Err is the failure cause when Status is OutcomeFailed.
	Err error
}

// OK reports whether the link counts as handled: downloaded or skipped by a dry run.
func (o Outcome) OK() bool {
	return o.Status == OutcomeSuccess || o.Status == OutcomeSkipped
}

// Summary describes one complete run.
type Summary struct {
	// TargetURL is the page that was scraped.
	TargetURL string
	// Destination is the directory files were written to.
	Destination string
	// Links are the normalized links selected for download, in page order.
	Links []string
	// Outcomes holds one entry per attempted link, in the same order as Links.
	// Links abandoned by halt-on-error or cancellation have no entry.
	Outcomes []Outcome
}

// Count returns how many outcomes have the given status.
func (s Summary) Count(status OutcomeStatus) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}

	return n
}
