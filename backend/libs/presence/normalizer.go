package presence

import (
	"strings"
	"time"
)

// Date layouts accepted in export date fields. Some exports append a time
// of day after a space; that part is cut before parsing.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
}

// Normalizer converts raw export rows into AccessEvents using a direction
// classifier. The zero-value-adjacent NewNormalizer(nil) uses the default
// vocabulary.
type Normalizer struct {
	classifier *Classifier
}

// NewNormalizer returns a normalizer; a nil classifier selects
// DefaultClassifier.
func NewNormalizer(classifier *Classifier) *Normalizer {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &Normalizer{classifier: classifier}
}

// Record normalizes a single row. The returned error is always a
// *MalformedRecordError: missing badge number or an unparsable date. A
// missing time of day is not an error; such records default to midnight.
func (n *Normalizer) Record(rec RawRecord) (AccessEvent, error) {
	badge := strings.TrimSpace(rec.BadgeNumber)
	if badge == "" {
		return AccessEvent{}, &MalformedRecordError{Field: "badge_number", Value: rec.BadgeNumber, Reason: "missing"}
	}

	day, err := parseEventDate(rec.EventDate)
	if err != nil {
		return AccessEvent{}, err
	}

	clock, err := parseEventTime(rec.EventTime)
	if err != nil {
		return AccessEvent{}, err
	}

	return AccessEvent{
		BadgeID:   badge,
		Timestamp: day.Add(clock),
		Direction: n.classifier.Classify(rec),
		Group:     strings.TrimSpace(rec.Group),
		Reader:    strings.TrimSpace(rec.Reader),
		Central:   strings.TrimSpace(rec.Central),
		EventType: strings.TrimSpace(rec.EventType),
	}, nil
}

// Records normalizes a batch, skipping malformed rows and collecting their
// errors. Callers that want abort-on-first-error semantics use Record
// directly.
func (n *Normalizer) Records(recs []RawRecord) ([]AccessEvent, []MalformedRecordError) {
	events := make([]AccessEvent, 0, len(recs))
	var malformed []MalformedRecordError
	for _, rec := range recs {
		event, err := n.Record(rec)
		if err != nil {
			malformed = append(malformed, *(err.(*MalformedRecordError)))
			continue
		}
		events = append(events, event)
	}
	return events, malformed
}

func parseEventDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, &MalformedRecordError{Field: "event_date", Value: raw, Reason: "missing"}
	}
	if idx := strings.IndexByte(value, ' '); idx > 0 {
		value = value[:idx]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &MalformedRecordError{Field: "event_date", Value: raw, Reason: "unparsable date"}
}

// parseEventTime returns the offset from midnight. An empty value maps to
// 00:00:00, which is a documented default and not an error: many exports
// carry only a date.
func parseEventTime(raw string) (time.Duration, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, &MalformedRecordError{Field: "event_time", Value: raw, Reason: "unparsable time"}
}
