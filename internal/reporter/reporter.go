package reporter

import (
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/pkg/config"
)

// TextFile is the name of the fixed-width text report.
const TextFile = "report.txt"

// Reporter interface for generating reports
type Reporter interface {
	Render(report *models.Report) ([]Artifact, error)
	Generate(report *models.Report) error
}

// reporter implements the Reporter interface
type reporter struct {
	config *config.Config
	stdout io.Writer
}

// New creates a new reporter instance
func New(cfg *config.Config) Reporter {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a reporter that prints the text report to w when
// cfg.Stdout is set.
func NewWithWriter(cfg *config.Config, w io.Writer) Reporter {
	return &reporter{
		config: cfg,
		stdout: w,
	}
}

// Render produces every requested artifact in memory.
func (r *reporter) Render(report *models.Report) ([]Artifact, error) {
	if report == nil {
		return nil, goerr.New("report is nil")
	}

	artifacts := make([]Artifact, 0, 6)

	if r.config.HasFormat(config.FormatText) {
		artifacts = append(artifacts, Artifact{Name: TextFile, Data: []byte(RenderText(report, r.config))})
	}

	if r.config.HasFormat(config.FormatCSV) {
		extracts, err := renderExtracts(report.Aggregates, r.config.CSVDelimiter)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, extracts...)
	}

	if r.config.HasFormat(config.FormatJSON) {
		data, err := RenderJSON(report)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Name: JSONFile, Data: data})
	}

	if r.config.HasFormat(config.FormatPDF) {
		data, err := NewPDFExporter().Export(report)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Name: PDFFile, Data: data})
	}

	return artifacts, nil
}

// Generate renders all artifacts and then writes them to the output
// directory. Nothing is written if rendering fails.
func (r *reporter) Generate(report *models.Report) error {
	artifacts, err := r.Render(report)
	if err != nil {
		return err
	}

	if r.config.DryRun {
		for _, a := range artifacts {
			slog.Info("dry run: skipping write", slog.String("file", a.Name), slog.Int("bytes", len(a.Data)))
		}
	} else {
		written, err := WriteArtifacts(r.config.OutputDir, artifacts)
		if err != nil {
			return err
		}
		for _, path := range written {
			slog.Debug("report written", slog.String("path", path))
		}
	}

	if r.config.Stdout {
		text := RenderText(report, r.config)
		if _, err := io.WriteString(r.stdout, text); err != nil {
			return goerr.Wrap(err, "failed to write text report to output")
		}
	}

	return nil
}
