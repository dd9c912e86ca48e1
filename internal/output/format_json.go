package output

import (
	"encoding/json"

	"github.com/rgehrsitz/headroom/internal/calculation"
)

// JSONFormatter formats the report as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf JSONFormatter) Name() string { return "json" }

// Format generates JSON output for the report
func (jf JSONFormatter) Format(report *calculation.Report) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
