package reporter

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ppiankov/incidentlens/internal/models"
)

// Extract file names.
const (
	SiteStatsFile   = "site_stats.csv"
	DeviceStatsFile = "device_stats.csv"
	WeeklyTrendFile = "weekly_trend.csv"
)

var (
	siteHeader   = []string{"site", "total_incidents", "critical", "high", "medium", "low", "total_cost_sek", "avg_resolution_minutes"}
	deviceHeader = []string{"device_hostname", "site", "device_type", "incident_count", "avg_impact_score", "total_cost_sek", "avg_affected_users"}
	weeklyHeader = []string{"week_number", "incident_count", "total_cost_sek", "avg_impact_score"}
)

// SiteRows returns the per-site extract in first-appearance order.
func SiteRows(sites []models.SiteSummary) [][]string {
	rows := make([][]string, 0, len(sites))
	for _, s := range sites {
		rows = append(rows, []string{
			s.Site,
			strconv.Itoa(s.IncidentCount),
			strconv.Itoa(s.Severities.Critical),
			strconv.Itoa(s.Severities.High),
			strconv.Itoa(s.Severities.Medium),
			strconv.Itoa(s.Severities.Low),
			FormatSEK(s.TotalCost),
			FormatDecimal(models.Round1(s.AvgResolutionMinutes()), 1),
		})
	}
	return rows
}

// DeviceRows returns the per-device extract sorted by incident count, then
// total cost, both descending. Ties keep first-appearance order.
func DeviceRows(devices []models.DeviceSummary) [][]string {
	sorted := append([]models.DeviceSummary{}, devices...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IncidentCount != sorted[j].IncidentCount {
			return sorted[i].IncidentCount > sorted[j].IncidentCount
		}
		return sorted[i].TotalCost.GreaterThan(sorted[j].TotalCost)
	})

	rows := make([][]string, 0, len(sorted))
	for _, d := range sorted {
		rows = append(rows, []string{
			d.Hostname,
			d.Site,
			string(d.DeviceType),
			strconv.Itoa(d.IncidentCount),
			FormatDecimal(d.AvgImpact(), 1),
			FormatSEK(d.TotalCost),
			strconv.Itoa(d.AvgAffectedUsers()),
		})
	}
	return rows
}

// WeeklyRows returns the per-week extract. weeks must already be ascending.
func WeeklyRows(weeks []models.WeekSummary) [][]string {
	rows := make([][]string, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, []string{
			strconv.Itoa(w.Week),
			strconv.Itoa(w.IncidentCount),
			FormatSEK(w.TotalCost),
			FormatDecimal(w.AvgImpact(), 1),
		})
	}
	return rows
}

// RenderCSV encodes header and rows with the given delimiter.
func RenderCSV(header []string, rows [][]string, delimiter rune) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	if err := w.Write(header); err != nil {
		return nil, goerr.Wrap(err, "failed to write csv header")
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, goerr.Wrap(err, "failed to write csv rows", goerr.V("rows", len(rows)))
	}
	return buf.Bytes(), nil
}

// renderExtracts renders the three tabular extracts.
func renderExtracts(agg models.Aggregates, delimiter rune) ([]Artifact, error) {
	sets := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{SiteStatsFile, siteHeader, SiteRows(agg.Sites)},
		{DeviceStatsFile, deviceHeader, DeviceRows(agg.Devices)},
		{WeeklyTrendFile, weeklyHeader, WeeklyRows(agg.WeeklyTrend)},
	}

	artifacts := make([]Artifact, 0, len(sets))
	for _, set := range sets {
		data, err := RenderCSV(set.header, set.rows, delimiter)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to render extract", goerr.V("file", set.name))
		}
		artifacts = append(artifacts, Artifact{Name: set.name, Data: data})
	}
	return artifacts, nil
}
