package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Output formats
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatPDF  = "pdf"
)

// SupportedFormats lists every accepted --format value.
var SupportedFormats = []string{FormatText, FormatCSV, FormatJSON, FormatPDF}

// Thresholds drive the high-impact listing, rankings and recurring-problem rules.
type Thresholds struct {
	HighImpactUsers       int     `yaml:"high_impact_users"`
	TopCostCount          int     `yaml:"top_cost_count"`
	RecurringMinIncidents int     `yaml:"recurring_min_incidents"`
	RecurringMinWeeks     int     `yaml:"recurring_min_weeks"`
	RecurringImpact       float64 `yaml:"recurring_impact"`
	HighRiskImpact        float64 `yaml:"high_risk_impact"`
}

// Config holds all runtime configuration
type Config struct {
	// Input settings
	InputPath      string
	InputDelimiter rune

	// Filters
	ExcludeSites   []string
	ExcludeDevices []string

	// Output settings
	OutputDir    string
	Formats      []string
	CSVDelimiter rune
	Organization string
	Stdout       bool

	// Analysis settings
	Thresholds Thresholds

	// Operational flags
	Verbose bool
	DryRun  bool
}

// DefaultThresholds returns the standard analysis thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighImpactUsers:       100,
		TopCostCount:          5,
		RecurringMinIncidents: 5,
		RecurringMinWeeks:     2,
		RecurringImpact:       7,
		HighRiskImpact:        8,
	}
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		InputPath:      "network_incidents.csv",
		InputDelimiter: ',',
		ExcludeSites:   []string{},
		ExcludeDevices: []string{},
		OutputDir:      ".",
		Formats:        []string{FormatText, FormatCSV},
		CSVDelimiter:   ';',
		Organization:   "TechCorp AB",
		Thresholds:     DefaultThresholds(),
		Verbose:        false,
		DryRun:         false,
	}
}

// HasFormat reports whether format was requested.
func (c *Config) HasFormat(format string) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(c.InputPath) == "" {
		return fmt.Errorf("input path is required")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output directory is required")
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("at least one output format is required")
	}
	for _, f := range c.Formats {
		if !isSupportedFormat(f) {
			return fmt.Errorf("invalid --format value %q: must be one of %s", f, strings.Join(SupportedFormats, ", "))
		}
	}
	if !validDelimiter(c.InputDelimiter) {
		return fmt.Errorf("invalid input delimiter %q", c.InputDelimiter)
	}
	if !validDelimiter(c.CSVDelimiter) {
		return fmt.Errorf("invalid csv delimiter %q", c.CSVDelimiter)
	}

	th := c.Thresholds
	if th.HighImpactUsers < 0 {
		return fmt.Errorf("high impact users threshold must be >= 0")
	}
	if th.TopCostCount <= 0 {
		return fmt.Errorf("top cost count must be > 0")
	}
	if th.RecurringMinIncidents <= 0 || th.RecurringMinWeeks <= 0 {
		return fmt.Errorf("recurring thresholds must be > 0")
	}
	return nil
}

// ParseFormats splits a comma separated --format value.
func ParseFormats(value string) []string {
	parts := strings.Split(value, ",")
	formats := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		f := strings.ToLower(strings.TrimSpace(part))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats
}

// ParseDelimiter converts a one-character flag value into a rune.
// "tab" and "\t" select a tab.
func ParseDelimiter(value string) (rune, error) {
	switch value {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if !validDelimiter(r) {
		return 0, fmt.Errorf("invalid delimiter %q", value)
	}
	return r, nil
}

func isSupportedFormat(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// validDelimiter mirrors the restrictions of encoding/csv.
func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}
