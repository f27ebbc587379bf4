package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadFileParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileYAML)
	content := `
input: data/incidents.csv
output_dir: out
format: text, json
organization: " Nordic Net AB "
csv_delimiter: tab
exclude_sites:
  - lab-*
  - ""
exclude_devices:
  - xx*
thresholds:
  high_impact_users: 250
  top_cost_count: 3
  recurring_impact: 6.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	fc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if fc.Organization != "Nordic Net AB" {
		t.Fatalf("expected trimmed organization, got %q", fc.Organization)
	}
	if len(fc.ExcludeSites) != 1 || fc.ExcludeSites[0] != "lab-*" {
		t.Fatalf("unexpected exclude_sites: %v", fc.ExcludeSites)
	}

	cfg := DefaultConfig()
	if err := fc.ApplyTo(cfg, nil); err != nil {
		t.Fatalf("ApplyTo failed: %v", err)
	}

	if cfg.InputPath != "data/incidents.csv" {
		t.Fatalf("expected input from file, got %q", cfg.InputPath)
	}
	if cfg.OutputDir != "out" {
		t.Fatalf("expected output dir from file, got %q", cfg.OutputDir)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"text", "json"}) {
		t.Fatalf("unexpected formats: %v", cfg.Formats)
	}
	if cfg.CSVDelimiter != '\t' {
		t.Fatalf("expected tab delimiter, got %q", cfg.CSVDelimiter)
	}
	if cfg.Thresholds.HighImpactUsers != 250 || cfg.Thresholds.TopCostCount != 3 {
		t.Fatalf("unexpected thresholds: %+v", cfg.Thresholds)
	}
	if cfg.Thresholds.RecurringImpact != 6.5 {
		t.Fatalf("expected recurring impact 6.5, got %v", cfg.Thresholds.RecurringImpact)
	}
	if cfg.Thresholds.RecurringMinIncidents != 5 {
		t.Fatalf("expected untouched thresholds to keep defaults, got %+v", cfg.Thresholds)
	}
}

func TestApplyToKeepsExplicitFlags(t *testing.T) {
	fc := &FileConfig{Input: "from-file.csv", OutputDir: "file-out", Format: "pdf"}
	cfg := DefaultConfig()
	cfg.InputPath = "from-flag.csv"

	explicit := func(flag string) bool { return flag == "input" }
	if err := fc.ApplyTo(cfg, explicit); err != nil {
		t.Fatalf("ApplyTo failed: %v", err)
	}

	if cfg.InputPath != "from-flag.csv" {
		t.Fatalf("expected flag value to win, got %q", cfg.InputPath)
	}
	if cfg.OutputDir != "file-out" {
		t.Fatalf("expected file output dir, got %q", cfg.OutputDir)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"pdf"}) {
		t.Fatalf("expected file formats, got %v", cfg.Formats)
	}
}

func TestApplyToRejectsBadDelimiter(t *testing.T) {
	fc := &FileConfig{CSVDelimiter: "::"}
	if err := fc.ApplyTo(DefaultConfig(), nil); err == nil {
		t.Fatal("expected error for multi-character delimiter")
	}
}

func TestAutoLoadFilePrefersCWD(t *testing.T) {
	cwd := t.TempDir()
	home := t.TempDir()

	cwdFile := filepath.Join(cwd, DefaultConfigFileYAML)
	homeFile := filepath.Join(home, DefaultConfigFileYAML)

	if err := os.WriteFile(cwdFile, []byte("organization: CWD AB\n"), 0o644); err != nil {
		t.Fatalf("failed to write cwd config file: %v", err)
	}
	if err := os.WriteFile(homeFile, []byte("organization: Home AB\n"), 0o644); err != nil {
		t.Fatalf("failed to write home config file: %v", err)
	}

	t.Setenv("HOME", home)
	t.Chdir(cwd)

	cfg, path, err := AutoLoadFile()
	if err != nil {
		t.Fatalf("AutoLoadFile failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config file to be loaded")
	}
	if cfg.Organization != "CWD AB" {
		t.Fatalf("expected cwd config to win, got %q", cfg.Organization)
	}
	if path != DefaultConfigFileYAML {
		t.Fatalf("expected returned path to be %q, got %q", DefaultConfigFileYAML, path)
	}
}

func TestLoadFirstExistingFileNoMatch(t *testing.T) {
	cfg, path, err := LoadFirstExistingFile([]string{
		filepath.Join(t.TempDir(), "missing-1.yaml"),
		filepath.Join(t.TempDir(), "missing-2.yaml"),
	})
	if err != nil {
		t.Fatalf("expected no error when no files found, got %v", err)
	}
	if cfg != nil || path != "" {
		t.Fatalf("expected nil config and empty path, got cfg=%v path=%q", cfg, path)
	}
}

func TestLoadFirstExistingFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := LoadFirstExistingFile([]string{dir}); err == nil {
		t.Fatal("expected error for directory config path")
	}
}
