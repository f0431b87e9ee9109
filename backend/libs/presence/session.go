package presence

import "time"

// MaxPlausibleMinutes bounds how long a single presence interval may last.
// Sessions at or beyond 16 hours are data-quality outliers (a missed exit
// scan paired with the next day's exit), not real presence intervals.
const MaxPlausibleMinutes = 16 * 60

// Session is a paired entry and exit for one badge. A nil ExitTime means the
// entry was never matched; such open sessions are kept in pairing output but
// never contribute to duration math.
type Session struct {
	BadgeID   string     `json:"badge_id"`
	EntryTime time.Time  `json:"entry_time"`
	ExitTime  *time.Time `json:"exit_time,omitempty"`
}

// Complete reports whether the session has a matched exit.
func (s Session) Complete() bool {
	return s.ExitTime != nil
}

// DurationMinutes is exit minus entry in minutes, 0 for open sessions. The
// value may be negative or huge for bad data; Plausible is the gate
// aggregates use.
func (s Session) DurationMinutes() float64 {
	if s.ExitTime == nil {
		return 0
	}
	return s.ExitTime.Sub(s.EntryTime).Minutes()
}

// Plausible reports whether the session qualifies for duration aggregates:
// complete, strictly positive, and under the 16 hour bound. Pairing is
// deliberately liberal; this is where quality judgments happen.
func (s Session) Plausible() bool {
	if s.ExitTime == nil {
		return false
	}
	minutes := s.DurationMinutes()
	return minutes > 0 && minutes < MaxPlausibleMinutes
}
