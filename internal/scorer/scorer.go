package scorer

import (
	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/pkg/config"
)

// Suggested actions for the recurring-problem table.
const (
	ActionHighRisk    = "immediate hardware/firmware review — high risk"
	ActionInvestigate = "investigate operational/configuration pattern"
	ActionNone        = "no serious recurring problems"
)

// Scorer interface for device classification rules
type Scorer interface {
	Classify(device models.DeviceSummary) models.RecurringProblem
}

// NewScorer creates a scorer based on the rule set name
func NewScorer(rules string, thresholds config.Thresholds) Scorer {
	switch rules {
	case "threshold":
		return &ThresholdScorer{Thresholds: thresholds}
	default:
		return &ThresholdScorer{Thresholds: thresholds}
	}
}
