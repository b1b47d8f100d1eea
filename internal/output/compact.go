package output

import (
	"fmt"
	"io"

	"github.com/jokarl/banlist/internal/types"
)

// CompactRenderer renders output in a condensed single-line-per-issue format
type CompactRenderer struct{}

// Render writes the check result in compact format
// Format: filename:line:column: severity: [validator_id] message
func (r *CompactRenderer) Render(w io.Writer, result *types.CheckResult) error {
	for _, f := range result.Findings {
		if f.Ignored {
			continue
		}

		filename, line, col := position(f)
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: [%s] %s\n",
			filename, line, col, f.Severity.String(), f.ValidatorID, f.Message); err != nil {
			return err
		}
	}

	return nil
}
