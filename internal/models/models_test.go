package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		raw  string
		want Severity
	}{
		{raw: "critical", want: SeverityCritical},
		{raw: "high", want: SeverityHigh},
		{raw: "medium", want: SeverityMedium},
		{raw: "low", want: SeverityLow},
		{raw: "Critical", want: SeverityUnrecognized},
		{raw: "", want: SeverityUnrecognized},
		{raw: "urgent", want: SeverityUnrecognized},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			if got := ParseSeverity(tc.raw); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSeverityCountsRecognizedExcludesUnknown(t *testing.T) {
	var counts SeverityCounts
	for _, s := range []Severity{SeverityCritical, SeverityLow, SeverityUnrecognized, SeverityLow} {
		counts.Add(s)
	}

	if counts.Recognized() != 3 {
		t.Fatalf("expected 3 recognized, got %d", counts.Recognized())
	}
	if counts.Get(SeverityUnrecognized) != 1 {
		t.Fatalf("expected 1 unrecognized, got %d", counts.Get(SeverityUnrecognized))
	}
	if counts.Get(SeverityLow) != 2 {
		t.Fatalf("expected 2 low, got %d", counts.Get(SeverityLow))
	}
}

func TestDerivedAveragesGuardEmptyBuckets(t *testing.T) {
	if got := (SiteSummary{}).AvgResolutionMinutes(); got != 0 {
		t.Fatalf("expected 0 site average, got %v", got)
	}
	if got := (CategorySummary{}).AvgImpact(); got != 0 {
		t.Fatalf("expected 0 category average, got %v", got)
	}
	if got := (DeviceSummary{}).AvgImpact(); got != 0 {
		t.Fatalf("expected 0 device impact, got %v", got)
	}
	if got := (DeviceSummary{}).AvgAffectedUsers(); got != 0 {
		t.Fatalf("expected 0 device users, got %v", got)
	}
	if got := (DeviceSummary{}).AvgCost(); !got.IsZero() {
		t.Fatalf("expected 0 device cost, got %v", got)
	}
	if got := (WeekSummary{}).AvgImpact(); got != 0 {
		t.Fatalf("expected 0 week impact, got %v", got)
	}
	if _, ok := (SeverityResolution{}).Average(); ok {
		t.Fatal("expected empty severity bucket to be unavailable")
	}
}

func TestDeviceSummaryRounding(t *testing.T) {
	device := DeviceSummary{
		IncidentCount:      3,
		TotalImpact:        20,
		TotalAffectedUsers: 10,
		TotalCost:          decimal.RequireFromString("300.30"),
	}

	if got := device.AvgImpact(); got != 6.7 {
		t.Fatalf("expected 6.7, got %v", got)
	}
	if got := device.AvgAffectedUsers(); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := device.AvgCost().StringFixed(2); got != "100.10" {
		t.Fatalf("expected 100.10, got %s", got)
	}
}

func TestReportJSONTags(t *testing.T) {
	report := Report{
		Metadata:          Metadata{Version: "test"},
		RecurringProblems: []RecurringProblem{},
		Warnings:          []Warning{},
	}

	payload, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("failed to marshal report: %v", err)
	}
	encoded := string(payload)
	for _, key := range []string{"\"metadata\"", "\"aggregates\"", "\"recurring_problems\"", "\"warnings\"", "\"run_id\"", "\"all_devices\""} {
		if !strings.Contains(encoded, key) {
			t.Fatalf("expected JSON to contain %s, got %s", key, encoded)
		}
	}
}
