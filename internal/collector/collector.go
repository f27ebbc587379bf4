package collector

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ppiankov/incidentlens/internal/models"
	"github.com/ppiankov/incidentlens/pkg/config"
)

// ErrTagReadInput marks failures to open or parse the input file.
var ErrTagReadInput = goerr.NewTag("read_input")

// Collector interface for collecting raw incident rows
type Collector interface {
	Collect(ctx context.Context) ([]models.RawRow, error)
	Excluded() int
	Close() error
}

// collector implements the Collector interface over a delimited file
type collector struct {
	config *config.Config
	file   *os.File
	reader *RowReader
}

// New opens the configured input file.
func New(cfg *config.Config) (Collector, error) {
	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open input file",
			goerr.V("path", cfg.InputPath),
			goerr.T(ErrTagReadInput))
	}

	return &collector{
		config: cfg,
		file:   f,
		reader: NewRowReader(f, cfg),
	}, nil
}

// Collect reads every data row of the input file.
func (c *collector) Collect(ctx context.Context) ([]models.RawRow, error) {
	rows, err := c.reader.ReadAll(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", c.config.InputPath))
	}
	return rows, nil
}

// Excluded returns the number of rows dropped by site/device filters.
func (c *collector) Excluded() int {
	return c.reader.Excluded()
}

// Close closes the input file
func (c *collector) Close() error {
	if c.file != nil {
		return c.file.Close()
	}
	return nil
}
