package normalizer_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/internal/normalizer"
)

func fullRow(line int, overrides map[string]string) models.RawRow {
	fields := map[string]string{
		"ticket_id":          "INC-100",
		"week_number":        "36",
		"site":               "Stockholm HQ",
		"device_hostname":    "SW-edge-07",
		"severity":           "high",
		"category":           "hardware",
		"description":        "Port flapping",
		"reported_by":        "noc",
		"resolution_minutes": "45",
		"affected_users":     "120",
		"cost_sek":           "1 234,56",
		"impact_score":       "7.5",
		"resolution_notes":   "Replaced SFP",
	}
	for k, v := range overrides {
		if v == "<absent>" {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}
	return models.RawRow{Line: line, Fields: fields}
}

func TestSafeInt(t *testing.T) {
	gt.Equal(t, normalizer.SafeInt("42", 0), 42)
	gt.Equal(t, normalizer.SafeInt(" 7 ", 0), 7)
	gt.Equal(t, normalizer.SafeInt("", 0), 0)
	gt.Equal(t, normalizer.SafeInt("", 9), 9)
	gt.Equal(t, normalizer.SafeInt("abc", 3), 3)
	gt.Equal(t, normalizer.SafeInt("4.5", 0), 0)
}

func TestSafeFloat(t *testing.T) {
	gt.Equal(t, normalizer.SafeFloat("7.25", 0), 7.25)
	gt.Equal(t, normalizer.SafeFloat("", 0), 0.0)
	gt.Equal(t, normalizer.SafeFloat("high", 1.5), 1.5)
	gt.Equal(t, normalizer.SafeFloat("NaN", 0), 0.0)
	gt.Equal(t, normalizer.SafeFloat("-Inf", 2), 2.0)
}

func TestParseCost(t *testing.T) {
	t.Run("swedish format", func(t *testing.T) {
		cost, fellBack := normalizer.ParseCost("1 234,56")
		gt.False(t, fellBack)
		gt.Equal(t, cost.StringFixed(2), "1234.56")
	})

	t.Run("empty is zero without fallback", func(t *testing.T) {
		cost, fellBack := normalizer.ParseCost("")
		gt.False(t, fellBack)
		gt.True(t, cost.IsZero())
	})

	t.Run("no-break space grouping", func(t *testing.T) {
		cost, fellBack := normalizer.ParseCost("12\u00a0500,5")
		gt.False(t, fellBack)
		gt.Equal(t, cost.StringFixed(2), "12500.50")
	})

	t.Run("decimal point is kept", func(t *testing.T) {
		cost, _ := normalizer.ParseCost("850.75")
		gt.Equal(t, cost.StringFixed(2), "850.75")
	})

	t.Run("garbage falls back", func(t *testing.T) {
		cost, fellBack := normalizer.ParseCost("n/a")
		gt.True(t, fellBack)
		gt.True(t, cost.IsZero())
	})

	t.Run("mixed separators fall back", func(t *testing.T) {
		_, fellBack := normalizer.ParseCost("1,234.56")
		gt.True(t, fellBack)
	})
}

func TestNormalizeCost(t *testing.T) {
	gt.Equal(t, normalizer.NormalizeCost("1 234 567,8"), "1234567.8")
	gt.Equal(t, normalizer.NormalizeCost(""), "")
}

func TestClassifyDevice(t *testing.T) {
	cases := map[string]models.DeviceType{
		"SW-edge-07": models.DeviceSwitch,
		"ap-floor3":  models.DeviceAccessPoint,
		"Rt01":       models.DeviceRouter,
		"FW-dmz":     models.DeviceFirewall,
		"lb-web-1":   models.DeviceLoadBalancer,
		"xx01":       models.DeviceUnknown,
		"s":          models.DeviceUnknown,
		"":           models.DeviceUnknown,
		"äp-01":      models.DeviceUnknown,
	}

	for hostname, want := range cases {
		t.Run(hostname, func(t *testing.T) {
			gt.Equal(t, normalizer.ClassifyDevice(hostname), want)
		})
	}
}

func TestNormalizeRow(t *testing.T) {
	incident, warnings, err := normalizer.NormalizeRow(fullRow(4, nil))
	gt.NoError(t, err)
	gt.Equal(t, len(warnings), 0)

	gt.Equal(t, incident.Row, 4)
	gt.Equal(t, incident.TicketID, "INC-100")
	gt.Equal(t, incident.Week, 36)
	gt.Equal(t, incident.DeviceType, models.DeviceSwitch)
	gt.Equal(t, incident.Severity, models.SeverityHigh)
	gt.Equal(t, incident.RawSeverity, "high")
	gt.Equal(t, incident.ResolutionMinutes, 45)
	gt.Equal(t, incident.AffectedUsers, 120)
	gt.Equal(t, incident.Cost.StringFixed(2), "1234.56")
	gt.Equal(t, incident.ImpactScore, 7.5)
	gt.Equal(t, incident.ResolutionNotes, "Replaced SFP")
}

func TestNormalizeRowCoercionFallbacks(t *testing.T) {
	row := fullRow(2, map[string]string{
		"week_number":        "v36",
		"resolution_minutes": "-5",
		"affected_users":     "",
		"cost_sek":           "okänt",
		"impact_score":       "hög",
		"severity":           "urgent",
	})

	incident, warnings, err := normalizer.NormalizeRow(row)
	gt.NoError(t, err)

	gt.Equal(t, incident.Week, 0)
	gt.Equal(t, incident.ResolutionMinutes, 0)
	gt.Equal(t, incident.AffectedUsers, 0)
	gt.True(t, incident.Cost.IsZero())
	gt.Equal(t, incident.ImpactScore, 0.0)
	gt.Equal(t, incident.Severity, models.SeverityUnrecognized)
	gt.Equal(t, incident.RawSeverity, "urgent")

	// empty affected_users is a silent default
	gt.Equal(t, len(warnings), 4)
	fields := make([]string, 0, len(warnings))
	for _, w := range warnings {
		gt.Equal(t, w.Row, 2)
		fields = append(fields, w.Field)
	}
	gt.Equal(t, fields, []string{"week_number", "resolution_minutes", "cost_sek", "impact_score"})
}

func TestNormalizeRowAbsentNumericColumnDefaults(t *testing.T) {
	incident, warnings, err := normalizer.NormalizeRow(fullRow(1, map[string]string{
		"cost_sek":     "<absent>",
		"impact_score": "<absent>",
	}))
	gt.NoError(t, err)
	gt.Equal(t, len(warnings), 0)
	gt.True(t, incident.Cost.IsZero())
	gt.Equal(t, incident.ImpactScore, 0.0)
}

func TestNormalizeMissingRequiredField(t *testing.T) {
	rows := []models.RawRow{
		fullRow(1, nil),
		fullRow(2, map[string]string{"site": "<absent>"}),
	}

	incidents, warnings, err := normalizer.Normalize(rows)
	gt.Error(t, err)
	gt.Equal(t, len(incidents), 0)
	gt.Equal(t, len(warnings), 0)
	gt.True(t, goerr.HasTag(err, normalizer.ErrTagMissingField))

	values := goerr.Values(err)
	gt.V(t, values["row"]).Equal(2)
	gt.V(t, values["field"]).Equal("site")
}

func TestNormalizeEmptyTextIsNotMissing(t *testing.T) {
	incident, _, err := normalizer.NormalizeRow(fullRow(1, map[string]string{
		"device_hostname":  "",
		"resolution_notes": "",
	}))
	gt.NoError(t, err)
	gt.Equal(t, incident.DeviceType, models.DeviceUnknown)
}

func TestNormalizePreservesOrder(t *testing.T) {
	rows := []models.RawRow{
		fullRow(1, map[string]string{"ticket_id": "A"}),
		fullRow(2, map[string]string{"ticket_id": "B"}),
		fullRow(3, map[string]string{"ticket_id": "C"}),
	}

	incidents, warnings, err := normalizer.Normalize(rows)
	gt.NoError(t, err)
	gt.Equal(t, len(warnings), 0)
	gt.Equal(t, len(incidents), 3)
	gt.Equal(t, incidents[0].TicketID, "A")
	gt.Equal(t, incidents[1].TicketID, "B")
	gt.Equal(t, incidents[2].TicketID, "C")
}

func TestNormalizeEmpty(t *testing.T) {
	incidents, warnings, err := normalizer.Normalize(nil)
	gt.NoError(t, err)
	gt.Equal(t, len(incidents), 0)
	gt.Equal(t, len(warnings), 0)
}
