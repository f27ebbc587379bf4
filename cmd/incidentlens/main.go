package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ppiankov/incidentlens/internal/collector"
	"github.com/ppiankov/incidentlens/internal/logging"
	"github.com/ppiankov/incidentlens/internal/normalizer"
	"github.com/ppiankov/incidentlens/internal/reporter"
	"github.com/spf13/cobra"
)

var (
	version = "0.3.0"
	verbose bool
)

// Exit codes for structured error reporting.
const (
	ExitSuccess      = 0
	ExitInternal     = 1
	ExitInvalidArg   = 2
	ExitNotFound     = 3
	ExitInvalidInput = 4
	ExitWriteFailed  = 5
	ExitFindings     = 6
)

// FindingsError indicates the analysis completed but high-risk devices were found.
type FindingsError struct {
	Count int
}

func (e *FindingsError) Error() string {
	return fmt.Sprintf("%d high-risk devices detected", e.Count)
}

func main() {
	logging.Init(false)

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		exitCode := classifyError(err)
		var fe *FindingsError
		if errors.As(err, &fe) {
			slog.Info("findings detected", slog.Int("count", fe.Count))
		} else {
			slog.Error("command failed", slog.Any("error", err))
		}
		os.Exit(exitCode)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "incidentlens",
		Short: "Network incident analyzer",
		Long: `IncidentLens reads a weekly export of network incidents and
produces a fixed-width Swedish incident report together with per-site,
per-device and per-week extracts.

Recurring problems are detected per device and paired with a suggested
remediation action.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(NewAnalyzeCmd())
	root.AddCommand(NewVersionCmd())

	return root
}

func classifyError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var fe *FindingsError
	if errors.As(err, &fe) {
		return ExitFindings
	}

	if errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}

	if goerr.HasTag(err, normalizer.ErrTagMissingField) || goerr.HasTag(err, collector.ErrTagReadInput) {
		return ExitInvalidInput
	}

	if goerr.HasTag(err, reporter.ErrTagWriteOutput) {
		return ExitWriteFailed
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "not a directory") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such file") {
		return ExitNotFound
	}

	if strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must be") ||
		strings.Contains(msg, "expected") {
		return ExitInvalidArg
	}

	return ExitInternal
}

