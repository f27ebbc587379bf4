package models

import "time"

// Report is the complete output structure
type Report struct {
	Tool              string             `json:"tool"`
	Version           string             `json:"version"`
	Timestamp         string             `json:"timestamp"`
	Metadata          Metadata           `json:"metadata"`
	Aggregates        Aggregates         `json:"aggregates"`
	RecurringProblems []RecurringProblem `json:"recurring_problems"` // flagged devices, report order
	AllDevices        []RecurringProblem `json:"all_devices"`        // every classified device, sorted, before filtering
	Warnings          []Warning          `json:"warnings"`
}

// Metadata contains report generation info
type Metadata struct {
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	Organization     string    `json:"organization"`
	InputPath        string    `json:"input_path"`
	RecordsRead      int       `json:"records_read"`
	RecordsExcluded  int       `json:"records_excluded"`
	WarningCount     int       `json:"warning_count"`
	AnalysisDuration string    `json:"analysis_duration"`
	Version          string    `json:"version"`
}
