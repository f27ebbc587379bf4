package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/incidentlens/internal/app"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileYAML is the canonical config filename.
	DefaultConfigFileYAML = ".incidentlens.yaml"
	// DefaultConfigFileYML is a compatible alternate config filename.
	DefaultConfigFileYML = ".incidentlens.yml"
	// AppConfigFile is looked up inside the user config directory.
	AppConfigFile = "config.yaml"
)

// FileConfig represents values loaded from a .incidentlens.yaml file.
type FileConfig struct {
	Input          string          `yaml:"input"`
	OutputDir      string          `yaml:"output_dir"`
	Format         string          `yaml:"format"` // comma separated
	Organization   string          `yaml:"organization"`
	InputDelimiter string          `yaml:"input_delimiter"`
	CSVDelimiter   string          `yaml:"csv_delimiter"`
	ExcludeSites   []string        `yaml:"exclude_sites"`
	ExcludeDevices []string        `yaml:"exclude_devices"`
	Thresholds     *FileThresholds `yaml:"thresholds"`
}

// FileThresholds holds optional threshold overrides; nil fields keep defaults.
type FileThresholds struct {
	HighImpactUsers       *int     `yaml:"high_impact_users"`
	TopCostCount          *int     `yaml:"top_cost_count"`
	RecurringMinIncidents *int     `yaml:"recurring_min_incidents"`
	RecurringMinWeeks     *int     `yaml:"recurring_min_weeks"`
	RecurringImpact       *float64 `yaml:"recurring_impact"`
	HighRiskImpact        *float64 `yaml:"high_risk_impact"`
}

// Normalize trims and removes empty items from list fields.
func (fc *FileConfig) Normalize() {
	if fc == nil {
		return
	}
	fc.ExcludeSites = normalizeList(fc.ExcludeSites)
	fc.ExcludeDevices = normalizeList(fc.ExcludeDevices)
	fc.Format = strings.TrimSpace(fc.Format)
	fc.Input = strings.TrimSpace(fc.Input)
	fc.OutputDir = strings.TrimSpace(fc.OutputDir)
	fc.Organization = strings.TrimSpace(fc.Organization)
}

// ApplyTo copies file values into cfg. Values whose flag was set explicitly
// on the command line are left alone; explicit may be nil.
func (fc *FileConfig) ApplyTo(cfg *Config, explicit func(flag string) bool) error {
	if fc == nil || cfg == nil {
		return nil
	}
	if explicit == nil {
		explicit = func(string) bool { return false }
	}

	if fc.Input != "" && !explicit("input") {
		cfg.InputPath = fc.Input
	}
	if fc.OutputDir != "" && !explicit("output") {
		cfg.OutputDir = fc.OutputDir
	}
	if fc.Format != "" && !explicit("format") {
		cfg.Formats = ParseFormats(fc.Format)
	}
	if fc.Organization != "" && !explicit("organization") {
		cfg.Organization = fc.Organization
	}
	if fc.InputDelimiter != "" && !explicit("delimiter") {
		r, err := ParseDelimiter(fc.InputDelimiter)
		if err != nil {
			return fmt.Errorf("invalid input_delimiter in config file: %w", err)
		}
		cfg.InputDelimiter = r
	}
	if fc.CSVDelimiter != "" && !explicit("csv-delimiter") {
		r, err := ParseDelimiter(fc.CSVDelimiter)
		if err != nil {
			return fmt.Errorf("invalid csv_delimiter in config file: %w", err)
		}
		cfg.CSVDelimiter = r
	}
	if len(fc.ExcludeSites) > 0 && !explicit("exclude-site") {
		cfg.ExcludeSites = append([]string{}, fc.ExcludeSites...)
	}
	if len(fc.ExcludeDevices) > 0 && !explicit("exclude-device") {
		cfg.ExcludeDevices = append([]string{}, fc.ExcludeDevices...)
	}

	if th := fc.Thresholds; th != nil {
		if th.HighImpactUsers != nil && !explicit("high-impact-users") {
			cfg.Thresholds.HighImpactUsers = *th.HighImpactUsers
		}
		if th.TopCostCount != nil && !explicit("top") {
			cfg.Thresholds.TopCostCount = *th.TopCostCount
		}
		if th.RecurringMinIncidents != nil {
			cfg.Thresholds.RecurringMinIncidents = *th.RecurringMinIncidents
		}
		if th.RecurringMinWeeks != nil {
			cfg.Thresholds.RecurringMinWeeks = *th.RecurringMinWeeks
		}
		if th.RecurringImpact != nil {
			cfg.Thresholds.RecurringImpact = *th.RecurringImpact
		}
		if th.HighRiskImpact != nil {
			cfg.Thresholds.HighRiskImpact = *th.HighRiskImpact
		}
	}

	return nil
}

// AutoLoadFile discovers and loads the first available config file.
func AutoLoadFile() (*FileConfig, string, error) {
	candidates := []string{
		DefaultConfigFileYAML,
		DefaultConfigFileYML,
	}

	if homeDir, err := os.UserHomeDir(); err == nil && strings.TrimSpace(homeDir) != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, DefaultConfigFileYAML),
			filepath.Join(homeDir, DefaultConfigFileYML),
		)
	}

	if appDir, err := app.GetAppConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(appDir, AppConfigFile))
	}

	return LoadFirstExistingFile(candidates)
}

// LoadFirstExistingFile loads the first config file that exists in paths.
func LoadFirstExistingFile(paths []string) (*FileConfig, string, error) {
	for _, path := range paths {
		candidate := strings.TrimSpace(path)
		if candidate == "" {
			continue
		}

		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to access config file %q: %w", candidate, err)
		}
		if info.IsDir() {
			return nil, "", fmt.Errorf("config path %q is a directory, expected a file", candidate)
		}

		cfg, err := LoadFile(candidate)
		if err != nil {
			return nil, "", err
		}
		return cfg, candidate, nil
	}

	return nil, "", nil
}

// LoadFile loads config values from a specific YAML file path.
func LoadFile(path string) (*FileConfig, error) {
	filename := strings.TrimSpace(path)
	if filename == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", filename, err)
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", filename, err)
	}

	cfg.Normalize()
	return cfg, nil
}

func normalizeList(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	normalized := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}
