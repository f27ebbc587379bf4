package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/ppiankov/incidentlens/internal/analyzer"
	"github.com/ppiankov/incidentlens/internal/collector"
	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/internal/normalizer"
	"github.com/ppiankov/incidentlens/internal/reporter"
	"github.com/ppiankov/incidentlens/internal/scorer"
	"github.com/ppiankov/incidentlens/pkg/config"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	// Raw flag values that need parsing before they reach cfg
	var formatStr string
	var inputDelimStr string
	var csvDelimStr string
	var configPath string
	var failOnHighRisk bool

	cmd := &cobra.Command{
		Use:     "analyze [incidents.csv]",
		Aliases: []string{"report"},
		Short:   "Analyze an incident export and write the report",
		Long: `Analyze a delimited incident export and write the text report,
the per-site, per-device and per-week extracts and, optionally, a JSON
report and a PDF executive summary.

Settings are read from --config, or from .incidentlens.yaml in the
working directory, the home directory or the user config directory.
Flags always win over file values.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			explicit := func(name string) bool {
				if name == "input" && len(args) == 1 {
					return true
				}
				return cmd.Flags().Changed(name)
			}
			if len(args) == 1 {
				cfg.InputPath = args[0]
			}

			fileCfg, path, err := loadConfigFile(configPath)
			if err != nil {
				return err
			}
			if fileCfg != nil {
				slog.Debug("loaded config file", slog.String("path", path))
				if err := fileCfg.ApplyTo(cfg, explicit); err != nil {
					return err
				}
			}

			if explicit("format") {
				cfg.Formats = config.ParseFormats(formatStr)
			}
			if explicit("delimiter") {
				r, err := config.ParseDelimiter(inputDelimStr)
				if err != nil {
					return fmt.Errorf("invalid --delimiter value: %w", err)
				}
				cfg.InputDelimiter = r
			}
			if explicit("csv-delimiter") {
				r, err := config.ParseDelimiter(csvDelimStr)
				if err != nil {
					return fmt.Errorf("invalid --csv-delimiter value: %w", err)
				}
				cfg.CSVDelimiter = r
			}

			cfg.Verbose = verbose
			cfg.Normalize()
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			report, err := runAnalyze(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if failOnHighRisk {
				if n := countHighRisk(report.RecurringProblems); n > 0 {
					return &FindingsError{Count: n}
				}
			}
			return nil
		},
	}

	// Input flags
	cmd.Flags().StringVar(&cfg.InputPath, "input", cfg.InputPath, "Incident export to analyze")
	cmd.Flags().StringVar(&inputDelimStr, "delimiter", ",", "Input field delimiter (single character or \"tab\")")
	cmd.Flags().StringSliceVar(&cfg.ExcludeSites, "exclude-site", nil, "Skip incidents at sites matching this glob (repeatable)")
	cmd.Flags().StringSliceVar(&cfg.ExcludeDevices, "exclude-device", nil, "Skip incidents on hostnames matching this glob (repeatable)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: auto-discover .incidentlens.yaml)")

	// Output flags
	cmd.Flags().StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory")
	cmd.Flags().StringVar(&formatStr, "format", strings.Join(cfg.Formats, ","), "Output formats, comma separated (text, csv, json, pdf)")
	cmd.Flags().StringVar(&csvDelimStr, "csv-delimiter", ";", "Delimiter for the tabular extracts")
	cmd.Flags().StringVar(&cfg.Organization, "organization", cfg.Organization, "Organization name in the report header")
	cmd.Flags().BoolVar(&cfg.Stdout, "stdout", false, "Also print the text report to stdout")

	// Analysis flags
	cmd.Flags().IntVar(&cfg.Thresholds.HighImpactUsers, "high-impact-users", cfg.Thresholds.HighImpactUsers, "List incidents affecting more than this many users")
	cmd.Flags().IntVar(&cfg.Thresholds.TopCostCount, "top", cfg.Thresholds.TopCostCount, "Number of costliest incidents to list")

	// Operational flags
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Dry run mode (don't write output)")
	cmd.Flags().BoolVar(&failOnHighRisk, "fail-on-high-risk", false, "Exit with code 6 when a device needs immediate review")

	return cmd
}

func loadConfigFile(path string) (*config.FileConfig, string, error) {
	if strings.TrimSpace(path) != "" {
		fc, err := config.LoadFile(path)
		if err != nil {
			return nil, "", err
		}
		return fc, path, nil
	}
	return config.AutoLoadFile()
}

// runAnalyze executes the analysis workflow. Progress goes to progress so
// that the text report on out stays clean.
func runAnalyze(ctx context.Context, cfg *config.Config, out, progress io.Writer) (*models.Report, error) {
	startTime := time.Now()

	slog.Debug("starting analysis",
		slog.String("input", cfg.InputPath),
		slog.String("output", cfg.OutputDir),
		slog.String("formats", strings.Join(cfg.Formats, ",")),
		slog.Any("exclude_sites", cfg.ExcludeSites),
		slog.Any("exclude_devices", cfg.ExcludeDevices),
	)

	// 1. Read rows
	fmt.Fprintf(progress, "📂 Reading %s...\n", cfg.InputPath)
	col, err := collector.New(cfg)
	if err != nil {
		return nil, err
	}
	defer col.Close()

	rows, err := col.Collect(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Normalize
	incidents, warnings, err := normalizer.Normalize(rows)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid input file", goerr.V("path", cfg.InputPath))
	}
	for _, w := range warnings {
		slog.Warn("value replaced by default",
			slog.Int("row", w.Row),
			slog.String("field", w.Field),
			slog.String("value", w.Value),
			slog.String("reason", w.Reason),
		)
	}
	fmt.Fprintf(progress, "✓ Read %d incidents (%d excluded, %d warnings)\n", len(incidents), col.Excluded(), len(warnings))

	// 3. Aggregate
	agg := analyzer.New(cfg).Analyze(incidents)

	// 4. Classify devices
	all, flagged := scorer.GenerateRecommendations(agg.Devices, cfg)
	fmt.Fprintf(progress, "✓ %d devices, %d with recurring problems\n", len(all), len(flagged))

	// 5. Build report
	report := buildReport(cfg, agg, all, flagged, warnings, len(rows), col.Excluded(), startTime)

	// 6. Render and write
	rep := reporter.NewWithWriter(cfg, out)
	if err := rep.Generate(report); err != nil {
		return nil, goerr.Wrap(err, "failed to generate report")
	}

	if cfg.DryRun {
		fmt.Fprintln(progress, "🏃 Dry run mode - skipping output")
	} else {
		fmt.Fprintf(progress, "✓ Report written to: %s\n", cfg.OutputDir)
	}

	return report, nil
}

// buildReport constructs the final report
func buildReport(
	cfg *config.Config,
	agg models.Aggregates,
	all []models.RecurringProblem,
	flagged []models.RecurringProblem,
	warnings []models.Warning,
	recordsRead int,
	excluded int,
	startTime time.Time,
) *models.Report {
	if warnings == nil {
		warnings = []models.Warning{}
	}

	now := time.Now()
	return &models.Report{
		Tool:      "incidentlens",
		Version:   version,
		Timestamp: now.UTC().Format(time.RFC3339),
		Metadata: models.Metadata{
			RunID:            uuid.NewString(),
			GeneratedAt:      now,
			Organization:     cfg.Organization,
			InputPath:        cfg.InputPath,
			RecordsRead:      recordsRead,
			RecordsExcluded:  excluded,
			WarningCount:     len(warnings),
			AnalysisDuration: time.Since(startTime).Round(time.Millisecond).String(),
			Version:          version,
		},
		Aggregates:        agg,
		RecurringProblems: flagged,
		AllDevices:        all,
		Warnings:          warnings,
	}
}

func countHighRisk(entries []models.RecurringProblem) int {
	count := 0
	for _, e := range entries {
		if e.Action == scorer.ActionHighRisk {
			count++
		}
	}
	return count
}
