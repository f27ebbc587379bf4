package reporter

import (
	"testing"
	"time"

	"github.com/ppiankov/incidentlens/internal/analyzer"
	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/internal/scorer"
	"github.com/ppiankov/incidentlens/pkg/config"
	"github.com/shopspring/decimal"
)

func testIncident(ticket string, week int, site, host, severity, category, desc string, users, minutes int, cost string, impact float64) models.Incident {
	return models.Incident{
		TicketID:          ticket,
		Week:              week,
		Site:              site,
		Hostname:          host,
		DeviceType:        models.DeviceSwitch,
		Severity:          models.ParseSeverity(severity),
		RawSeverity:       severity,
		Category:          category,
		Description:       desc,
		ResolutionMinutes: minutes,
		AffectedUsers:     users,
		Cost:              decimal.RequireFromString(cost),
		ImpactScore:       impact,
	}
}

func testIncidents() []models.Incident {
	return []models.Incident{
		testIncident("INC-1", 36, "Stockholm HQ", "SW-01", "critical", "hardware", "Core switch down", 150, 120, "12500", 9),
		testIncident("INC-2", 37, "Malmö", "RT-02", "high", "network", "Routing loop", 40, 45, "1234.56", 6.5),
		testIncident("INC-3", 37, "Stockholm HQ", "SW-01", "low", "hardware", "Fan noise", 5, 15, "300", 2),
	}
}

func buildReport(t *testing.T, cfg *config.Config, incidents []models.Incident) *models.Report {
	t.Helper()

	agg := analyzer.New(cfg).Analyze(incidents)
	all, flagged := scorer.GenerateRecommendations(agg.Devices, cfg)

	return &models.Report{
		Tool:      "incidentlens",
		Version:   "test",
		Timestamp: "2026-09-14T08:00:00Z",
		Metadata: models.Metadata{
			RunID:        "00000000-0000-0000-0000-000000000000",
			GeneratedAt:  time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC),
			Organization: cfg.Organization,
			RecordsRead:  len(incidents),
		},
		Aggregates:        agg,
		RecurringProblems: flagged,
		AllDevices:        all,
		Warnings:          []models.Warning{},
	}
}
