package scorer

import (
	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/pkg/config"
)

// ThresholdScorer flags devices whose incident count, week spread or
// average impact crosses a threshold.
type ThresholdScorer struct {
	Thresholds config.Thresholds
}

// Classify builds the recurring-problem entry for a device. The rounded
// average impact is used for every comparison so the table agrees with
// the action it prints.
func (s *ThresholdScorer) Classify(device models.DeviceSummary) models.RecurringProblem {
	entry := models.RecurringProblem{
		Hostname:      device.Hostname,
		IncidentCount: device.IncidentCount,
		WeekCount:     len(device.Weeks),
		AvgImpact:     device.AvgImpact(),
		AvgCost:       device.AvgCost(),
		Action:        ActionNone,
	}
	if device.IncidentCount == 0 {
		return entry
	}

	th := s.Thresholds
	entry.Flagged = entry.IncidentCount >= th.RecurringMinIncidents ||
		entry.WeekCount >= th.RecurringMinWeeks ||
		entry.AvgImpact > th.RecurringImpact
	if !entry.Flagged {
		return entry
	}

	if entry.AvgImpact > th.HighRiskImpact || device.HasSeverity(models.SeverityCritical.String()) {
		entry.Action = ActionHighRisk
	} else {
		entry.Action = ActionInvestigate
	}
	return entry
}
