package reporter

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ppiankov/incidentlens/internal/models"
)

// JSONFile is the name of the machine-readable report.
const JSONFile = "report.json"

// RenderJSON marshals the report with pretty printing.
func RenderJSON(report *models.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal report to JSON")
	}
	return append(data, '\n'), nil
}
