package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDistributionHourly(t *testing.T) {
	dist := AnalyzeDistribution([]AccessEvent{
		scan("B1", ts(t, "2024-01-01T08:15"), DirectionEntry),
		scan("B2", ts(t, "2024-01-01T08:45"), DirectionEntry),
		scan("B1", ts(t, "2024-01-01T17:05"), DirectionExit),
	})

	// All 24 buckets exist even when empty.
	require.Len(t, dist.Hourly, 24)
	assert.Equal(t, 2, dist.Hourly["08"])
	assert.Equal(t, 1, dist.Hourly["17"])
	assert.Equal(t, 0, dist.Hourly["03"])
}

func TestAnalyzeDistributionCounters(t *testing.T) {
	events := []AccessEvent{
		{BadgeID: "B1", Timestamp: ts(t, "2024-01-01T08:00"), Group: "IT", Reader: "Lecteur 1", EventType: "Utilisateur accepté"},
		{BadgeID: "B2", Timestamp: ts(t, "2024-01-01T09:00"), Group: "IT", Reader: "Lecteur 2", EventType: "Utilisateur accepté"},
		{BadgeID: "B3", Timestamp: ts(t, "2024-01-01T10:00"), Group: "RH", Reader: "Lecteur 1", EventType: "ENTREE"},
		// Empty labels never show up as map keys.
		{BadgeID: "B4", Timestamp: ts(t, "2024-01-01T11:00")},
	}

	dist := AnalyzeDistribution(events)

	assert.Equal(t, map[string]int{"IT": 2, "RH": 1}, dist.ByGroup)
	assert.Equal(t, map[string]int{"Lecteur 1": 2, "Lecteur 2": 1}, dist.ByReader)
	assert.Equal(t, 2, dist.ByEventType["Utilisateur accepté"])
	assert.NotContains(t, dist.ByGroup, "")
	assert.NotContains(t, dist.ByReader, "")
	assert.NotContains(t, dist.ByEventType, "")
}

func TestAnalyzeDistributionAnomalies(t *testing.T) {
	events := []AccessEvent{
		{BadgeID: "B1", Timestamp: ts(t, "2024-01-01T08:00"), EventType: "Badge inconnu"},
		{BadgeID: "B2", Timestamp: ts(t, "2024-01-01T09:00"), EventType: "Accès refusé"},
		{BadgeID: "B3", Timestamp: ts(t, "2024-01-01T10:00"), EventType: "Badge INVALIDE"},
		{BadgeID: "B4", Timestamp: ts(t, "2024-01-01T11:00"), EventType: "Access denied"},
		{BadgeID: "B5", Timestamp: ts(t, "2024-01-01T12:00"), EventType: "Utilisateur accepté"},
	}

	dist := AnalyzeDistribution(events)

	require.Len(t, dist.Anomalies, 4)
	badges := make([]string, 0, len(dist.Anomalies))
	for _, event := range dist.Anomalies {
		badges = append(badges, event.BadgeID)
	}
	assert.ElementsMatch(t, []string{"B1", "B2", "B3", "B4"}, badges)
}

func TestAnalyzeDistributionEmpty(t *testing.T) {
	dist := AnalyzeDistribution(nil)

	assert.Len(t, dist.Hourly, 24)
	assert.Empty(t, dist.ByGroup)
	assert.Empty(t, dist.ByReader)
	assert.Empty(t, dist.ByEventType)
	assert.Empty(t, dist.Anomalies)
}
