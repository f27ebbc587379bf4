package models

import (
	"math"

	"github.com/shopspring/decimal"
)

// SeverityCounts holds per-severity incident counts.
type SeverityCounts struct {
	Critical     int `json:"critical"`
	High         int `json:"high"`
	Medium       int `json:"medium"`
	Low          int `json:"low"`
	Unrecognized int `json:"unrecognized"`
}

// Add increments the bucket for s.
func (c *SeverityCounts) Add(s Severity) {
	switch s {
	case SeverityCritical:
		c.Critical++
	case SeverityHigh:
		c.High++
	case SeverityMedium:
		c.Medium++
	case SeverityLow:
		c.Low++
	default:
		c.Unrecognized++
	}
}

// Get returns the count for s.
func (c SeverityCounts) Get(s Severity) int {
	switch s {
	case SeverityCritical:
		return c.Critical
	case SeverityHigh:
		return c.High
	case SeverityMedium:
		return c.Medium
	case SeverityLow:
		return c.Low
	default:
		return c.Unrecognized
	}
}

// Recognized is the sum of the four recognized severity buckets.
func (c SeverityCounts) Recognized() int {
	return c.Critical + c.High + c.Medium + c.Low
}

// SiteSummary is the per-site rollup.
type SiteSummary struct {
	Site                   string          `json:"site"`
	IncidentCount          int             `json:"incident_count"`
	Severities             SeverityCounts  `json:"severities"`
	TotalCost              decimal.Decimal `json:"total_cost_sek"`
	TotalResolutionMinutes int             `json:"total_resolution_minutes"`
}

// AvgResolutionMinutes is total minutes over incidents, 0 for an empty site.
func (s SiteSummary) AvgResolutionMinutes() float64 {
	if s.IncidentCount == 0 {
		return 0
	}
	return float64(s.TotalResolutionMinutes) / float64(s.IncidentCount)
}

// CategorySummary is the per-category rollup.
type CategorySummary struct {
	Category      string  `json:"category"`
	IncidentCount int     `json:"incident_count"`
	TotalImpact   float64 `json:"total_impact"`
}

// AvgImpact is the mean impact score, 0 for an empty category.
func (c CategorySummary) AvgImpact() float64 {
	if c.IncidentCount == 0 {
		return 0
	}
	return c.TotalImpact / float64(c.IncidentCount)
}

// DeviceSummary is the per-device rollup. Site, Category and DeviceType
// carry the values of the last incident seen for the hostname.
type DeviceSummary struct {
	Hostname           string          `json:"hostname"`
	Site               string          `json:"site"`
	Category           string          `json:"category"`
	DeviceType         DeviceType      `json:"device_type"`
	IncidentCount      int             `json:"incident_count"`
	TotalImpact        float64         `json:"total_impact"`
	TotalCost          decimal.Decimal `json:"total_cost_sek"`
	TotalAffectedUsers int             `json:"total_affected_users"`
	Weeks              []int           `json:"weeks"`
	Severities         []string        `json:"severities"`
}

// AvgImpact is the mean impact score rounded to one decimal.
func (d DeviceSummary) AvgImpact() float64 {
	if d.IncidentCount == 0 {
		return 0
	}
	return Round1(d.TotalImpact / float64(d.IncidentCount))
}

// AvgAffectedUsers is the mean affected users rounded to the nearest integer.
func (d DeviceSummary) AvgAffectedUsers() int {
	if d.IncidentCount == 0 {
		return 0
	}
	return int(math.Round(float64(d.TotalAffectedUsers) / float64(d.IncidentCount)))
}

// AvgCost is total cost over incidents, 0 for an empty device.
func (d DeviceSummary) AvgCost() decimal.Decimal {
	if d.IncidentCount == 0 {
		return decimal.Zero
	}
	return d.TotalCost.Div(decimal.NewFromInt(int64(d.IncidentCount)))
}

// HasSeverity reports whether raw severity text was seen for the device.
func (d DeviceSummary) HasSeverity(severity string) bool {
	for _, s := range d.Severities {
		if s == severity {
			return true
		}
	}
	return false
}

// WeekSummary is the per-week rollup.
type WeekSummary struct {
	Week          int             `json:"week"`
	IncidentCount int             `json:"incident_count"`
	TotalCost     decimal.Decimal `json:"total_cost_sek"`
	TotalImpact   float64         `json:"total_impact"`
}

// AvgImpact is the mean impact score rounded to one decimal.
func (w WeekSummary) AvgImpact() float64 {
	if w.IncidentCount == 0 {
		return 0
	}
	return Round1(w.TotalImpact / float64(w.IncidentCount))
}

// SeverityResolution pairs a severity with its resolution totals.
type SeverityResolution struct {
	Severity     Severity `json:"-"`
	Name         string   `json:"severity"`
	Count        int      `json:"count"`
	TotalMinutes int      `json:"total_minutes"`
}

// Average returns the mean resolution time. ok is false when no incident
// had this severity.
func (r SeverityResolution) Average() (avg float64, ok bool) {
	if r.Count == 0 {
		return 0, false
	}
	return float64(r.TotalMinutes) / float64(r.Count), true
}

// Aggregates is the frozen result of one analysis pass.
type Aggregates struct {
	IncidentCount int                  `json:"incident_count"`
	Weeks         []int                `json:"weeks"`
	Severities    SeverityCounts       `json:"severities"`
	Resolution    []SeverityResolution `json:"resolution_by_severity"`
	TotalCost     decimal.Decimal      `json:"total_cost_sek"`
	Sites         []SiteSummary        `json:"sites"`
	Categories    []CategorySummary    `json:"categories"`
	Devices       []DeviceSummary      `json:"devices"`
	WeeklyTrend   []WeekSummary        `json:"weekly_trend"`
	HighImpact    []Incident           `json:"high_impact_incidents"`
	TopCostly     []Incident           `json:"top_costly_incidents"`
	MostAffected  *DeviceSummary       `json:"most_affected_device,omitempty"`
	MostExpensive *Incident            `json:"most_expensive_incident,omitempty"`
}

// RecurringProblem is the device-level recurring-problem classification.
type RecurringProblem struct {
	Hostname      string          `json:"hostname"`
	IncidentCount int             `json:"incident_count"`
	WeekCount     int             `json:"week_count"`
	AvgImpact     float64         `json:"avg_impact_score"`
	AvgCost       decimal.Decimal `json:"avg_cost_sek"`
	Flagged       bool            `json:"flagged"`
	Action        string          `json:"action"`
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
