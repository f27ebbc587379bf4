package reporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/pkg/config"
)

// Column widths of the text report.
const (
	ruleWidth = 50

	labelWidth   = 18
	summaryWidth = 20
	countWidth   = 3

	ticketWidth   = 15
	severityWidth = 16
	siteWidth     = 20
	costWidth     = 12

	siteCountWidth = 10
	siteCostWidth  = 15
	minutesWidth   = 12

	avgMinutesWidth = 8
	impactWidth     = 6

	hostWidth       = 16
	recCountWidth   = 6
	recWeeksWidth   = 8
	recImpactWidth  = 10
	recAvgCostWidth = 16
)

const notApplicable = "ej tillämpligt"

// RenderText renders the fixed-width report.
func RenderText(report *models.Report, cfg *config.Config) string {
	var b strings.Builder
	agg := report.Aggregates

	writeHeader(&b, report.Metadata.Organization, agg.Weeks)
	writeSeverityCounts(&b, agg.Severities)
	writeSummary(&b, agg)
	writeHighImpact(&b, agg.HighImpact, cfg.Thresholds.HighImpactUsers)
	writeTopCostly(&b, agg.TopCostly, cfg.Thresholds.TopCostCount)
	writeSites(&b, agg.Sites)
	writeResolution(&b, agg.Resolution)
	writeCategories(&b, agg.Categories)
	writeRecurring(&b, report.RecurringProblems)

	fmt.Fprintf(&b, "Total kostnad: %s kr\n", FormatSEK(agg.TotalCost))
	return b.String()
}

func writeHeader(b *strings.Builder, organization string, weeks []int) {
	labels := make([]string, 0, len(weeks))
	for _, w := range weeks {
		labels = append(labels, strconv.Itoa(w))
	}

	title := "Incidentanalys"
	if organization != "" {
		title += " " + organization
	}
	fmt.Fprintf(b, "%s för vecka: %s\n", title, joinOrDash(labels))
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n\n")
}

func writeSection(b *strings.Builder, title string) {
	b.WriteString(title + ":\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
}

func writeSeverityCounts(b *strings.Builder, counts models.SeverityCounts) {
	writeSection(b, "Antal incidenter per allvarlighetsgrad")
	for _, s := range models.RecognizedSeverities {
		b.WriteString("  " + padRight(s.Label()+":", labelWidth) + padLeft(strconv.Itoa(counts.Get(s)), countWidth) + "\n")
	}
	if counts.Unrecognized > 0 {
		b.WriteString("  " + padRight("Okänd:", labelWidth) + padLeft(strconv.Itoa(counts.Unrecognized), countWidth) + "\n")
	}
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, agg models.Aggregates) {
	writeSection(b, "Sammanfattning")
	line := func(label, value string) {
		b.WriteString("  " + padRight(label+":", summaryWidth) + value + "\n")
	}

	line("Antal incidenter", strconv.Itoa(agg.IncidentCount))
	line("Total kostnad", FormatSEK(agg.TotalCost)+" kr")

	if inc := agg.MostExpensive; inc != nil {
		line("Dyraste incident", fmt.Sprintf("%s, %s, %s kr", inc.TicketID, inc.Site, FormatSEK(inc.Cost)))
	} else {
		line("Dyraste incident", notApplicable)
	}

	if d := agg.MostAffected; d != nil {
		line("Flest incidenter", fmt.Sprintf("%s (%d st)", d.Hostname, d.IncidentCount))
	} else {
		line("Flest incidenter", notApplicable)
	}
	b.WriteString("\n")
}

func writeHighImpact(b *strings.Builder, incidents []models.Incident, threshold int) {
	writeSection(b, fmt.Sprintf("Incidenter som påverkat mer än %d användare", threshold))
	if len(incidents) == 0 {
		b.WriteString("  Inga incidenter.\n\n")
		return
	}

	b.WriteString("  " + padRight("Ticket id", ticketWidth) + padRight("Allvarlighet", severityWidth) + "Beskrivning\n")
	for _, inc := range incidents {
		b.WriteString("  " + padRight(inc.TicketID, ticketWidth) + padRight(inc.RawSeverity, severityWidth) + inc.Description + "\n")
	}
	b.WriteString("\n")
}

func writeTopCostly(b *strings.Builder, incidents []models.Incident, n int) {
	title := fmt.Sprintf("De %d dyraste incidenterna", n)
	if n == 5 {
		title = "De fem dyraste incidenterna"
	}
	writeSection(b, title)
	if len(incidents) == 0 {
		b.WriteString("  Inga incidenter.\n\n")
		return
	}

	b.WriteString("  " + padRight("Ticket id", ticketWidth) + padRight("Site", siteWidth) +
		padLeft("Kostnad", costWidth+3) + "  Beskrivning\n")
	for _, inc := range incidents {
		b.WriteString("  " + padRight(inc.TicketID, ticketWidth) + padRight(inc.Site, siteWidth) +
			padLeft(FormatSEK(inc.Cost), costWidth) + " kr  " + inc.Description + "\n")
	}
	b.WriteString("\n")
}

func writeSites(b *strings.Builder, sites []models.SiteSummary) {
	writeSection(b, "Översikt per site")
	if len(sites) == 0 {
		b.WriteString("  Inga incidenter.\n\n")
		return
	}

	b.WriteString("  " + padRight("Site", siteWidth) + padLeft("Incidenter", siteCountWidth) +
		padLeft("Kostnad", siteCostWidth+3) + padLeft("Lösningstid", minutesWidth+4) + "\n")
	for _, s := range sites {
		b.WriteString("  " + padRight(s.Site, siteWidth) +
			padLeft(strconv.Itoa(s.IncidentCount), siteCountWidth) +
			padLeft(FormatSEK(s.TotalCost), siteCostWidth) + " kr" +
			padLeft(FormatDecimal(models.Round1(s.AvgResolutionMinutes()), 1), minutesWidth) + " min\n")
	}
	b.WriteString("\n")
}

func writeResolution(b *strings.Builder, resolution []models.SeverityResolution) {
	writeSection(b, "Genomsnittlig lösningstid per allvarlighetsgrad")
	for _, r := range resolution {
		label := "  " + padRight(r.Severity.Label()+":", labelWidth)
		avg, ok := r.Average()
		if !ok {
			b.WriteString(label + notApplicable + "\n")
			continue
		}
		b.WriteString(label + padLeft(FormatDecimal(models.Round1(avg), 1), avgMinutesWidth) + " min\n")
	}
	b.WriteString("\n")
}

func writeCategories(b *strings.Builder, categories []models.CategorySummary) {
	writeSection(b, "Genomsnittlig påverkan per kategori")
	if len(categories) == 0 {
		b.WriteString("  Inga incidenter.\n\n")
		return
	}
	for _, c := range categories {
		b.WriteString("  " + padRight(c.Category+":", labelWidth) +
			padLeft(FormatDecimal(models.Round1(c.AvgImpact()), 1), impactWidth) + "\n")
	}
	b.WriteString("\n")
}

func writeRecurring(b *strings.Builder, entries []models.RecurringProblem) {
	writeSection(b, "Återkommande problem och åtgärder")
	if len(entries) == 0 {
		b.WriteString("  Inga återkommande problem.\n\n")
		return
	}

	b.WriteString("  " + padRight("Enhet", hostWidth) + padLeft("Antal", recCountWidth) +
		padLeft("Veckor", recWeeksWidth) + padLeft("Påverkan", recImpactWidth) +
		padLeft("Snittkostnad", recAvgCostWidth) + "  Åtgärd\n")
	for _, e := range entries {
		b.WriteString("  " + padRight(e.Hostname, hostWidth) +
			padLeft(strconv.Itoa(e.IncidentCount), recCountWidth) +
			padLeft(strconv.Itoa(e.WeekCount), recWeeksWidth) +
			padLeft(FormatDecimal(e.AvgImpact, 1), recImpactWidth) +
			padLeft(FormatSEK(e.AvgCost)+" kr", recAvgCostWidth) +
			"  " + e.Action + "\n")
	}
	b.WriteString("\n")
}
