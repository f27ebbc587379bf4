package reporter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/internal/scorer"
)

// PDFFile is the name of the executive summary document.
const PDFFile = "report.pdf"

// PDFExporter renders the executive summary as a PDF document
type PDFExporter struct {
	tr func(string) string
}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export generates the executive summary PDF
func (e *PDFExporter) Export(report *models.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate å, ä, ö and the action dash.
	e.tr = pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addStatistics(pdf, report.Aggregates)
	e.addTopCostly(pdf, report.Aggregates.TopCostly)
	e.addRecurring(pdf, report.RecurringProblems)
	e.addFooter(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, goerr.Wrap(err, "failed to generate PDF")
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *models.Report) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 14, e.tr("Incidentanalys"), "", 1, "L", false, 0, "")

	if report.Metadata.Organization != "" {
		pdf.SetFont("Arial", "", 14)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 8, e.tr(report.Metadata.Organization), "", 1, "L", false, 0, "")
	}

	weeks := make([]string, 0, len(report.Aggregates.Weeks))
	for _, w := range report.Aggregates.Weeks {
		weeks = append(weeks, strconv.Itoa(w))
	}

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, e.tr(fmt.Sprintf("Veckor: %s", joinOrDash(weeks))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Genererad: %s", report.Metadata.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

func (e *PDFExporter) addSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, e.tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (e *PDFExporter) addStatistics(pdf *gofpdf.Fpdf, agg models.Aggregates) {
	e.addSectionTitle(pdf, "Sammanfattning")

	stats := []struct {
		label string
		value string
		color []int
	}{
		{"Antal incidenter", strconv.Itoa(agg.IncidentCount), []int{0, 102, 204}},
		{"Total kostnad", FormatSEK(agg.TotalCost) + " kr", []int{0, 102, 204}},
		{"Critical", strconv.Itoa(agg.Severities.Critical), []int{220, 53, 69}},
		{"High", strconv.Itoa(agg.Severities.High), []int{255, 149, 0}},
		{"Medium", strconv.Itoa(agg.Severities.Medium), []int{255, 204, 0}},
		{"Low", strconv.Itoa(agg.Severities.Low), []int{52, 199, 89}},
	}

	// Two columns
	colWidth := 85.0
	for i, stat := range stats {
		x := 20.0
		if i%2 == 1 {
			x = 105.0
		}
		pdf.SetXY(x, pdf.GetY())

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(45, 7, e.tr(stat.label+":"), "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(stat.color[0], stat.color[1], stat.color[2])
		pdf.CellFormat(colWidth-45, 7, e.tr(stat.value), "", 0, "R", false, 0, "")

		if i%2 == 1 {
			pdf.Ln(7)
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(60, 60, 60)
	if inc := agg.MostExpensive; inc != nil {
		line := fmt.Sprintf("Dyraste incident: %s, %s, %s kr", inc.TicketID, inc.Site, FormatSEK(inc.Cost))
		pdf.CellFormat(0, 6, e.tr(line), "", 1, "L", false, 0, "")
	}
	if d := agg.MostAffected; d != nil {
		line := fmt.Sprintf("Flest incidenter: %s (%d st)", d.Hostname, d.IncidentCount)
		pdf.CellFormat(0, 6, e.tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addTopCostly(pdf *gofpdf.Fpdf, incidents []models.Incident) {
	e.addSectionTitle(pdf, "Dyraste incidenter")

	if len(incidents) == 0 {
		e.addEmptyNote(pdf, "Inga incidenter")
		return
	}

	widths := []float64{30, 45, 35, 60}
	e.addTableHeader(pdf, widths, []string{"Ticket id", "Site", "Kostnad", "Beskrivning"})

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(40, 40, 40)
	for _, inc := range incidents {
		pdf.CellFormat(widths[0], 7, e.tr(inc.TicketID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, e.tr(truncateText(inc.Site, 26)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, e.tr(FormatSEK(inc.Cost)+" kr"), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, e.tr(truncateText(inc.Description, 34)), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)
}

func (e *PDFExporter) addRecurring(pdf *gofpdf.Fpdf, entries []models.RecurringProblem) {
	e.addSectionTitle(pdf, "Återkommande problem")

	if len(entries) == 0 {
		e.addEmptyNote(pdf, "Inga återkommande problem")
		return
	}

	widths := []float64{30, 15, 15, 20, 90}
	e.addTableHeader(pdf, widths, []string{"Enhet", "Antal", "Veckor", "Påverkan", "Åtgärd"})

	pdf.SetFont("Arial", "", 9)
	for _, entry := range entries {
		if entry.Action == scorer.ActionHighRisk {
			pdf.SetTextColor(220, 53, 69)
		} else {
			pdf.SetTextColor(40, 40, 40)
		}
		pdf.CellFormat(widths[0], 7, e.tr(entry.Hostname), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, strconv.Itoa(entry.IncidentCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, strconv.Itoa(entry.WeekCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, FormatDecimal(entry.AvgImpact, 1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, e.tr(entry.Action), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)
}

func (e *PDFExporter) addTableHeader(pdf *gofpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, label := range labels {
		ln := 0
		if i == len(labels)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, e.tr(label), "1", ln, "L", true, 0, "")
	}
}

func (e *PDFExporter) addEmptyNote(pdf *gofpdf.Fpdf, note string) {
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 7, e.tr(note), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, report *models.Report) {
	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	footer := fmt.Sprintf("%s %s | run %s", report.Tool, report.Version, report.Metadata.RunID)
	pdf.CellFormat(0, 5, footer, "", 1, "C", false, 0, "")
}

func truncateText(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-3]) + "..."
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
