package presence

import "sort"

// PairSessions walks badge scans in chronological order and matches entries
// with exits. Per badge it keeps a stack of open sessions: an entry opens a
// session, an exit closes the most recently opened one still open. An exit
// with nothing open is discarded and an entry without a later exit stays
// open; neither is an error, both are normal badge-reader data. Events with
// an unknown direction are ignored here entirely.
//
// Output order is deterministic: badges ascending, then entry order within
// a badge.
func PairSessions(events []AccessEvent) []Session {
	byBadge := make(map[string][]AccessEvent)
	for _, event := range events {
		if event.BadgeID == "" || event.Direction == DirectionUnknown {
			continue
		}
		byBadge[event.BadgeID] = append(byBadge[event.BadgeID], event)
	}

	badges := make([]string, 0, len(byBadge))
	for badge := range byBadge {
		badges = append(badges, badge)
	}
	sort.Strings(badges)

	var sessions []Session
	for _, badge := range badges {
		sessions = append(sessions, pairBadge(badge, byBadge[badge])...)
	}
	return sessions
}

func pairBadge(badge string, events []AccessEvent) []Session {
	// Upstream ordering is not trusted; exports interleave readers.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	sessions := make([]Session, 0, len(events)/2+1)
	var open []int // indices of sessions awaiting an exit, LIFO

	for _, event := range events {
		switch event.Direction {
		case DirectionEntry:
			sessions = append(sessions, Session{BadgeID: badge, EntryTime: event.Timestamp})
			open = append(open, len(sessions)-1)
		case DirectionExit:
			if len(open) == 0 {
				continue // unpaired exit, expected data
			}
			idx := open[len(open)-1]
			open = open[:len(open)-1]
			exit := event.Timestamp
			sessions[idx].ExitTime = &exit
		}
	}
	return sessions
}
