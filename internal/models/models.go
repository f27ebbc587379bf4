package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RawRow is one untyped input row keyed by column name.
// Columns absent from the input header are absent from the map.
type RawRow struct {
	Line   int // 1-based data row (header excluded)
	Fields map[string]string
}

// Severity is the closed set of incident severities.
type Severity int

const (
	SeverityUnrecognized Severity = iota
	SeverityCritical
	SeverityHigh
	SeverityMedium
	SeverityLow
)

// RecognizedSeverities lists the severities counted in severity tables, in report order.
var RecognizedSeverities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity maps the raw severity text onto the enumeration.
// Matching is exact, like the input contract; anything else is unrecognized.
func ParseSeverity(raw string) Severity {
	switch raw {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	case "low":
		return SeverityLow
	default:
		return SeverityUnrecognized
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	default:
		return "unrecognized"
	}
}

// Label is the capitalized name used in report tables.
func (s Severity) Label() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// DeviceType is derived from the hostname prefix.
type DeviceType string

const (
	DeviceAccessPoint  DeviceType = "Access Point"
	DeviceSwitch       DeviceType = "Switch"
	DeviceRouter       DeviceType = "Router"
	DeviceFirewall     DeviceType = "Firewall"
	DeviceLoadBalancer DeviceType = "Load Balancer"
	DeviceUnknown      DeviceType = "Okänd"
)

// Incident is one normalized input row. It is not modified after normalization.
type Incident struct {
	Row               int             `json:"row"`
	TicketID          string          `json:"ticket_id"`
	Week              int             `json:"week_number"`
	Site              string          `json:"site"`
	Hostname          string          `json:"device_hostname"`
	DeviceType        DeviceType      `json:"device_type"`
	Severity          Severity        `json:"-"`
	RawSeverity       string          `json:"severity"`
	Category          string          `json:"category"`
	Description       string          `json:"description"`
	ReportedBy        string          `json:"reported_by"`
	ResolutionMinutes int             `json:"resolution_minutes"`
	AffectedUsers     int             `json:"affected_users"`
	Cost              decimal.Decimal `json:"cost_sek"`
	ImpactScore       float64         `json:"impact_score"`
	ResolutionNotes   string          `json:"resolution_notes"`
}

// Warning records a numeric field that fell back to its default value.
type Warning struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}
