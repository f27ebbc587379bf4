package scorer

import (
	"log/slog"
	"sort"

	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/pkg/config"
)

// GenerateRecommendations classifies every device and returns the full
// sorted list together with the flagged subset, in the same order.
func GenerateRecommendations(
	devices []models.DeviceSummary,
	config *config.Config,
) (all []models.RecurringProblem, flagged []models.RecurringProblem) {
	scorer := NewScorer("threshold", config.Thresholds)

	// Initialize as empty slices instead of nil to avoid JSON null values
	all = make([]models.RecurringProblem, 0, len(devices))
	flagged = []models.RecurringProblem{}

	for _, device := range devices {
		if device.IncidentCount == 0 {
			continue
		}
		all = append(all, scorer.Classify(device))
	}

	SortRecurring(all)

	for _, entry := range all {
		if entry.Flagged {
			flagged = append(flagged, entry)
		}
	}

	slog.Debug("recurring problem summary",
		slog.Int("devices", len(all)),
		slog.Int("flagged", len(flagged)),
		slog.Int("high_risk", countAction(flagged, ActionHighRisk)),
	)

	return all, flagged
}

// SortRecurring orders entries by incident count, then average impact,
// then average cost, all descending. Full ties keep their input order.
func SortRecurring(entries []models.RecurringProblem) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IncidentCount != b.IncidentCount {
			return a.IncidentCount > b.IncidentCount
		}
		if a.AvgImpact != b.AvgImpact {
			return a.AvgImpact > b.AvgImpact
		}
		return a.AvgCost.GreaterThan(b.AvgCost)
	})
}

func countAction(entries []models.RecurringProblem, action string) int {
	count := 0
	for _, e := range entries {
		if e.Action == action {
			count++
		}
	}
	return count
}
