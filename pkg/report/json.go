package report

import (
	"fmt"
	"os"
	"scraper/pkg/domain"

	"github.com/go-faster/jx"
)

// Encode renders s as an indented JSON document.
func Encode(s domain.Summary) []byte {
	e := &jx.Encoder{}
	e.SetIdent(2)

	e.ObjStart()
	e.FieldStart("target")
	e.Str(s.TargetURL)
	e.FieldStart("destination")
	e.Str(s.Destination)

	e.FieldStart("links")
	e.ArrStart()
	for _, l := range s.Links {
		e.Str(l)
	}
	e.ArrEnd()

	e.FieldStart("outcomes")
	e.ArrStart()
	for _, o := range s.Outcomes {
		encodeOutcome(e, o)
	}
	e.ArrEnd()

	e.FieldStart("totals")
	e.ObjStart()
	e.FieldStart("success")
	e.Int(s.Count(domain.OutcomeSuccess))
	e.FieldStart("skipped")
	e.Int(s.Count(domain.OutcomeSkipped))
	e.FieldStart("failed")
	e.Int(s.Count(domain.OutcomeFailed))
	e.FieldStart("notAttempted")
	e.Int(len(s.Links) - len(s.Outcomes))
	e.ObjEnd()

	e.ObjEnd()

	return e.Bytes()
}

func encodeOutcome(e *jx.Encoder, o domain.Outcome) {
	e.ObjStart()
	e.FieldStart("url")
	e.Str(o.URL)
	e.FieldStart("path")
	e.Str(o.Path)
	e.FieldStart("status")
	e.Str(string(o.Status))
	e.FieldStart("ok")
	e.Bool(o.OK())
	e.FieldStart("bytes")
	e.Int64(o.Bytes)
	e.FieldStart("elapsedSeconds")
	e.Float64(o.Elapsed.Seconds())
	e.FieldStart("error")
	if o.Err != nil {
		e.Str(o.Err.Error())
	} else {
		e.Null()
	}
	e.ObjEnd()
}

// WriteFile writes the JSON rendering of s to path.
func WriteFile(path string, s domain.Summary) error {
	if err := os.WriteFile(path, Encode(s), 0o644); err != nil { //nolint: gosec
		return fmt.Errorf("could not write report to %s: %w", path, err)
	}

	return nil
}
