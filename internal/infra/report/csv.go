// Where: cli/internal/infra/report/csv.go
// What: CSV export of a consolidated match set.
// Why: Operators feed the export into review and re-run tooling.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
)

var csvHeader = []string{"name", "resourceGroup", "timeCreated", "createdBy", "subscription", "diskState", "id"}

// WriteCSV writes the consolidated match set of a search run, one row per
// snapshot, grouped by subscription in enumeration order.
func WriteCSV(w io.Writer, run snapshot.SearchRun) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, res := range run.Results {
		for _, rec := range res.Matches {
			row := []string{
				rec.Name,
				rec.ResourceGroup,
				rec.TimeCreated.Format(time.RFC3339),
				orNA(rec.CreatedBy),
				res.Subscription.DisplayName(),
				orNA(rec.DiskState),
				rec.ID,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
