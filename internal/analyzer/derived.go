package analyzer

import (
	"sort"

	"github.com/ppiankov/incidentlens/internal/models"
)

// TopCostly returns the n most expensive incidents, cost descending.
// Equal costs keep input order.
func TopCostly(incidents []models.Incident, n int) []models.Incident {
	if n <= 0 || len(incidents) == 0 {
		return []models.Incident{}
	}

	sorted := append([]models.Incident{}, incidents...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Cost.GreaterThan(sorted[j].Cost)
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// MostAffectedDevice returns the device with the most incidents. devices
// must be in first-appearance order; on a tie the earliest device wins.
func MostAffectedDevice(devices []models.DeviceSummary) (models.DeviceSummary, bool) {
	best := -1
	for i, d := range devices {
		if best < 0 || d.IncidentCount > devices[best].IncidentCount {
			best = i
		}
	}
	if best < 0 {
		return models.DeviceSummary{}, false
	}
	return devices[best], true
}

// ReportingWeeks returns the distinct week numbers present, ascending.
func ReportingWeeks(incidents []models.Incident) []int {
	seen := make(map[int]struct{}, 8)
	weeks := make([]int, 0, 8)
	for _, inc := range incidents {
		if _, ok := seen[inc.Week]; ok {
			continue
		}
		seen[inc.Week] = struct{}{}
		weeks = append(weeks, inc.Week)
	}
	sort.Ints(weeks)
	return weeks
}
