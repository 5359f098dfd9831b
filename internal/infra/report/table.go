// Where: cli/internal/infra/report/table.go
// What: Per-subscription snapshot tables.
// Why: Detailed results after the live progress view completes.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
)

// WriteTables prints one table per searched subscription with the matched
// snapshots, in enumeration order.
func WriteTables(w io.Writer, run snapshot.SearchRun, now time.Time) {
	for _, res := range run.Results {
		if res.Warning != "" || res.Err != "" {
			continue
		}
		fmt.Fprintf(w, "\nSnapshots in %s\n", res.Subscription.DisplayName())
		if len(res.Matches) == 0 {
			fmt.Fprintln(w, "  (none)")
			continue
		}
		fmt.Fprintf(w, "  %-40s %-25s %-26s %5s  %-16s %s\n",
			"NAME", "RESOURCE GROUP", "CREATED", "AGE", "CREATED BY", "STATE")
		for _, rec := range res.Matches {
			fmt.Fprintf(w, "  %-40s %-25s %-26s %4dd  %-16s %s\n",
				truncate(rec.Name, 40),
				truncate(rec.ResourceGroup, 25),
				rec.TimeCreated.Format(time.RFC3339),
				rec.AgeDays(now),
				orNA(truncate(rec.CreatedBy, 16)),
				orNA(rec.DiskState))
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
