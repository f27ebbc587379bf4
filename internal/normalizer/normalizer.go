package normalizer

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/shopspring/decimal"
)

// ErrTagMissingField marks a row that lacks a required text column.
var ErrTagMissingField = goerr.NewTag("missing_field")

// Input column names.
const (
	FieldTicketID          = "ticket_id"
	FieldWeek              = "week_number"
	FieldSite              = "site"
	FieldHostname          = "device_hostname"
	FieldSeverity          = "severity"
	FieldCategory          = "category"
	FieldDescription       = "description"
	FieldReportedBy        = "reported_by"
	FieldResolutionMinutes = "resolution_minutes"
	FieldAffectedUsers     = "affected_users"
	FieldCost              = "cost_sek"
	FieldImpactScore       = "impact_score"
	FieldResolutionNotes   = "resolution_notes"
)

// RequiredFields are the text columns without a default value.
var RequiredFields = []string{
	FieldTicketID,
	FieldSite,
	FieldHostname,
	FieldSeverity,
	FieldCategory,
	FieldDescription,
	FieldReportedBy,
	FieldResolutionNotes,
}

const (
	reasonUnparsable = "unparsable, using default"
	reasonNegative   = "negative, clamped to 0"
)

// Normalize converts raw rows into incidents, preserving order.
// Malformed numeric values fall back to zero and are reported as warnings.
// A missing required text column aborts with an error tagged ErrTagMissingField.
func Normalize(rows []models.RawRow) ([]models.Incident, []models.Warning, error) {
	incidents := make([]models.Incident, 0, len(rows))
	warnings := make([]models.Warning, 0)

	for _, row := range rows {
		incident, rowWarnings, err := NormalizeRow(row)
		if err != nil {
			return nil, nil, err
		}
		incidents = append(incidents, incident)
		warnings = append(warnings, rowWarnings...)
	}

	return incidents, warnings, nil
}

// NormalizeRow converts a single raw row.
func NormalizeRow(row models.RawRow) (models.Incident, []models.Warning, error) {
	for _, field := range RequiredFields {
		if _, ok := row.Fields[field]; !ok {
			return models.Incident{}, nil, goerr.New("required field missing",
				goerr.V("row", row.Line),
				goerr.V("field", field),
				goerr.T(ErrTagMissingField))
		}
	}

	w := &warningSink{row: row.Line}
	hostname := row.Fields[FieldHostname]
	severity := row.Fields[FieldSeverity]

	incident := models.Incident{
		Row:               row.Line,
		TicketID:          row.Fields[FieldTicketID],
		Week:              w.integer(FieldWeek, row.Fields[FieldWeek]),
		Site:              row.Fields[FieldSite],
		Hostname:          hostname,
		DeviceType:        ClassifyDevice(hostname),
		Severity:          models.ParseSeverity(severity),
		RawSeverity:       severity,
		Category:          row.Fields[FieldCategory],
		Description:       row.Fields[FieldDescription],
		ReportedBy:        row.Fields[FieldReportedBy],
		ResolutionMinutes: w.nonNegative(FieldResolutionMinutes, row.Fields[FieldResolutionMinutes]),
		AffectedUsers:     w.nonNegative(FieldAffectedUsers, row.Fields[FieldAffectedUsers]),
		Cost:              w.cost(FieldCost, row.Fields[FieldCost]),
		ImpactScore:       w.number(FieldImpactScore, row.Fields[FieldImpactScore]),
		ResolutionNotes:   row.Fields[FieldResolutionNotes],
	}

	return incident, w.warnings, nil
}

// warningSink coerces numeric fields for one row and records fallbacks.
type warningSink struct {
	row      int
	warnings []models.Warning
}

func (w *warningSink) add(field, value, reason string) {
	w.warnings = append(w.warnings, models.Warning{
		Row:    w.row,
		Field:  field,
		Value:  value,
		Reason: reason,
	})
}

func (w *warningSink) integer(field, value string) int {
	v, ok := parseInt(value)
	if !ok && strings.TrimSpace(value) != "" {
		w.add(field, value, reasonUnparsable)
	}
	return v
}

func (w *warningSink) nonNegative(field, value string) int {
	v := w.integer(field, value)
	if v < 0 {
		w.add(field, value, reasonNegative)
		return 0
	}
	return v
}

func (w *warningSink) number(field, value string) float64 {
	v, ok := parseFloat(value)
	if !ok && strings.TrimSpace(value) != "" {
		w.add(field, value, reasonUnparsable)
	}
	return v
}

func (w *warningSink) cost(field, value string) decimal.Decimal {
	d, fellBack := ParseCost(value)
	if fellBack {
		w.add(field, value, reasonUnparsable)
	}
	return d
}
