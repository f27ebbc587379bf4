package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/pkg/config"
)

const utf8BOM = "\ufeff"

// RowReader turns a delimited stream with a header row into raw rows.
type RowReader struct {
	config   *config.Config
	csv      *csv.Reader
	excluded int
}

// NewRowReader wraps r using the configured input delimiter.
func NewRowReader(r io.Reader, cfg *config.Config) *RowReader {
	reader := csv.NewReader(r)
	reader.Comma = cfg.InputDelimiter
	// Short rows are reported per field by the normalizer.
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	return &RowReader{
		config: cfg,
		csv:    reader,
	}
}

// ReadAll reads the header and every data row. An empty stream yields no rows.
func (r *RowReader) ReadAll(ctx context.Context) ([]models.RawRow, error) {
	header, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		slog.Debug("input is empty")
		return []models.RawRow{}, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read header row", goerr.T(ErrTagReadInput))
	}
	columns := normalizeHeader(header)

	rows := make([]models.RawRow, 0)
	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse input row",
				goerr.V("row", line+1),
				goerr.T(ErrTagReadInput))
		}
		line++

		if isBlank(record) {
			continue
		}

		fields := make(map[string]string, len(columns))
		for i, name := range columns {
			if i >= len(record) {
				break
			}
			fields[name] = record[i]
		}

		if r.isExcluded(fields) {
			r.excluded++
			slog.Debug("row excluded by filter",
				slog.Int("row", line),
				slog.String("site", fields["site"]),
				slog.String("device_hostname", fields["device_hostname"]),
			)
			continue
		}

		rows = append(rows, models.RawRow{Line: line, Fields: fields})
	}

	if r.excluded > 0 {
		slog.Info("rows excluded by filters", slog.Int("excluded", r.excluded), slog.Int("kept", len(rows)))
	}
	slog.Debug("read input rows", slog.Int("rows", len(rows)), slog.Int("columns", len(columns)))

	return rows, nil
}

// Excluded returns the number of rows dropped by filters so far.
func (r *RowReader) Excluded() int {
	return r.excluded
}

func (r *RowReader) isExcluded(fields map[string]string) bool {
	return r.config.IsSiteExcluded(fields["site"]) || r.config.IsDeviceExcluded(fields["device_hostname"])
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		columns[i] = strings.TrimSpace(name)
	}
	return columns
}

// isBlank reports a record made only of empty fields, e.g. a trailing
// line of delimiters written by spreadsheet exports.
func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
