package presence

import "time"

// Direction of a badge scan relative to the premises.
type Direction string

// Direction values inferred from free-text labels.
const (
	DirectionEntry   Direction = "entry"
	DirectionExit    Direction = "exit"
	DirectionUnknown Direction = "unknown"
)

// AccessEvent is one normalized badge scan.
type AccessEvent struct {
	BadgeID   string    `json:"badge_id"`
	Timestamp time.Time `json:"timestamp"`
	Direction Direction `json:"direction"`
	Group     string    `json:"group,omitempty"`
	Reader    string    `json:"reader,omitempty"`
	Central   string    `json:"central,omitempty"`
	EventType string    `json:"event_type,omitempty"`
}
