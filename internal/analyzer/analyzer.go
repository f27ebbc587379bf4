package analyzer

import (
	"log/slog"
	"sort"

	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/pkg/config"
	"github.com/shopspring/decimal"
)

// Analyzer accumulates incident statistics in a single pass and freezes
// them into models.Aggregates.
type Analyzer struct {
	config *config.Config

	incidents  []models.Incident
	severities models.SeverityCounts
	resolution map[models.Severity]*models.SeverityResolution
	totalCost  decimal.Decimal
	highImpact []models.Incident

	sites     map[string]*models.SiteSummary
	siteOrder []string

	categories map[string]*models.CategorySummary

	devices     map[string]*deviceBucket
	deviceOrder []string

	weeks map[int]*models.WeekSummary
}

// deviceBucket keeps the set-valued device fields until the result is frozen.
type deviceBucket struct {
	summary    models.DeviceSummary
	weeks      map[int]struct{}
	severities map[string]struct{}
}

// New creates a new analyzer instance
func New(cfg *config.Config) *Analyzer {
	a := &Analyzer{config: cfg}
	a.reset()
	return a
}

func (a *Analyzer) reset() {
	a.incidents = nil
	a.severities = models.SeverityCounts{}
	a.resolution = make(map[models.Severity]*models.SeverityResolution, len(models.RecognizedSeverities))
	for _, s := range models.RecognizedSeverities {
		a.resolution[s] = &models.SeverityResolution{Severity: s, Name: s.String()}
	}
	a.totalCost = decimal.Zero
	a.highImpact = make([]models.Incident, 0)
	a.sites = make(map[string]*models.SiteSummary)
	a.siteOrder = make([]string, 0)
	a.categories = make(map[string]*models.CategorySummary)
	a.devices = make(map[string]*deviceBucket)
	a.deviceOrder = make([]string, 0)
	a.weeks = make(map[int]*models.WeekSummary)
}

// Analyze runs the aggregation pass over incidents and returns the frozen
// result. Calling it again starts from scratch.
func (a *Analyzer) Analyze(incidents []models.Incident) models.Aggregates {
	a.reset()
	a.incidents = incidents

	for i := range incidents {
		a.add(&incidents[i])
	}

	result := a.freeze()

	slog.Debug("aggregation complete",
		slog.Int("incidents", result.IncidentCount),
		slog.Int("sites", len(result.Sites)),
		slog.Int("categories", len(result.Categories)),
		slog.Int("devices", len(result.Devices)),
		slog.Int("weeks", len(result.WeeklyTrend)),
		slog.Int("unrecognized_severity", result.Severities.Unrecognized),
	)

	return result
}

// add folds one incident into every bucket.
func (a *Analyzer) add(inc *models.Incident) {
	a.severities.Add(inc.Severity)
	if r, ok := a.resolution[inc.Severity]; ok {
		r.Count++
		r.TotalMinutes += inc.ResolutionMinutes
	}

	a.totalCost = a.totalCost.Add(inc.Cost)

	if inc.AffectedUsers > a.config.Thresholds.HighImpactUsers {
		a.highImpact = append(a.highImpact, *inc)
	}

	a.addSite(inc)
	a.addCategory(inc)
	a.addDevice(inc)
	a.addWeek(inc)
}

// freeze copies the accumulators into an immutable result.
func (a *Analyzer) freeze() models.Aggregates {
	result := models.Aggregates{
		IncidentCount: len(a.incidents),
		Weeks:         ReportingWeeks(a.incidents),
		Severities:    a.severities,
		TotalCost:     a.totalCost,
		Sites:         make([]models.SiteSummary, 0, len(a.siteOrder)),
		Categories:    make([]models.CategorySummary, 0, len(a.categories)),
		Devices:       make([]models.DeviceSummary, 0, len(a.deviceOrder)),
		WeeklyTrend:   make([]models.WeekSummary, 0, len(a.weeks)),
		HighImpact:    append([]models.Incident{}, a.highImpact...),
		TopCostly:     TopCostly(a.incidents, a.config.Thresholds.TopCostCount),
	}

	for _, s := range models.RecognizedSeverities {
		result.Resolution = append(result.Resolution, *a.resolution[s])
	}

	for _, site := range a.siteOrder {
		result.Sites = append(result.Sites, *a.sites[site])
	}

	for _, c := range a.categories {
		result.Categories = append(result.Categories, *c)
	}
	sort.Slice(result.Categories, func(i, j int) bool {
		return result.Categories[i].Category < result.Categories[j].Category
	})

	for _, hostname := range a.deviceOrder {
		result.Devices = append(result.Devices, a.devices[hostname].frozen())
	}

	for _, w := range a.weeks {
		result.WeeklyTrend = append(result.WeeklyTrend, *w)
	}
	sort.Slice(result.WeeklyTrend, func(i, j int) bool {
		return result.WeeklyTrend[i].Week < result.WeeklyTrend[j].Week
	})

	if top := TopCostly(a.incidents, 1); len(top) == 1 {
		result.MostExpensive = &top[0]
	}
	if device, ok := MostAffectedDevice(result.Devices); ok {
		result.MostAffected = &device
	}

	return result
}

func (b *deviceBucket) frozen() models.DeviceSummary {
	summary := b.summary

	summary.Weeks = make([]int, 0, len(b.weeks))
	for w := range b.weeks {
		summary.Weeks = append(summary.Weeks, w)
	}
	sort.Ints(summary.Weeks)

	summary.Severities = make([]string, 0, len(b.severities))
	for s := range b.severities {
		summary.Severities = append(summary.Severities, s)
	}
	sort.Strings(summary.Severities)

	return summary
}
