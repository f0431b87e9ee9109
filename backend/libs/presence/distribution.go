package presence

import (
	"fmt"
	"strings"
)

// Event-type fragments that mark rejected or unidentified scans. French
// firmware vocabulary plus English equivalents; "refus" also covers
// "refusé"/"refuse" variants.
var anomalyTokens = []string{
	"inconnu",
	"invalide",
	"refus",
	"unknown",
	"invalid",
	"denied",
}

// Distribution holds the independent per-event reducers: none of them need
// session pairing, they run over the normalized scans directly.
type Distribution struct {
	Hourly      map[string]int `json:"hourly"`
	ByGroup     map[string]int `json:"by_group"`
	ByReader    map[string]int `json:"by_reader"`
	ByEventType map[string]int `json:"by_event_type"`
	Anomalies   []AccessEvent  `json:"anomalies"`
}

// AnalyzeDistribution computes hourly traffic, label frequency counters and
// anomaly flags in one pass. Hourly always carries all 24 buckets keyed
// "00".."23"; empty labels are excluded from the frequency maps.
func AnalyzeDistribution(events []AccessEvent) Distribution {
	dist := Distribution{
		Hourly:      make(map[string]int, 24),
		ByGroup:     make(map[string]int),
		ByReader:    make(map[string]int),
		ByEventType: make(map[string]int),
	}
	for hour := 0; hour < 24; hour++ {
		dist.Hourly[fmt.Sprintf("%02d", hour)] = 0
	}

	for _, event := range events {
		dist.Hourly[event.Timestamp.Format("15")]++
		if event.Group != "" {
			dist.ByGroup[event.Group]++
		}
		if event.Reader != "" {
			dist.ByReader[event.Reader]++
		}
		if event.EventType != "" {
			dist.ByEventType[event.EventType]++
		}
		if isAnomaly(event.EventType) {
			dist.Anomalies = append(dist.Anomalies, event)
		}
	}
	return dist
}

// isAnomaly is a vocabulary filter, not a statistical detector.
func isAnomaly(eventType string) bool {
	if eventType == "" {
		return false
	}
	label := strings.ToLower(eventType)
	for _, token := range anomalyTokens {
		if strings.Contains(label, token) {
			return true
		}
	}
	return false
}
