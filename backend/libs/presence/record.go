// Package presence turns raw badge-reader records into per-person
// time-on-premises sessions and calendar aggregates. It is a pure
// computation library: it performs no I/O and every function is a plain
// function of its inputs, so callers may invoke it from any goroutine.
package presence

import "fmt"

// RawRecord is one row from an access-control CSV export. Field names vary
// by export and everything arrives as free text; the normalizer is the only
// component that interprets these values.
type RawRecord struct {
	BadgeNumber string
	EventDate   string
	EventTime   string
	Central     string
	Reader      string
	EventType   string
	LastName    string
	FirstName   string
	Status      string
	Group       string
}

// MalformedRecordError reports a record that cannot become an AccessEvent:
// the badge number is missing or the date does not parse. The caller decides
// whether to skip the record or abort the whole batch.
type MalformedRecordError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: %s %q: %s", e.Field, e.Value, e.Reason)
}
