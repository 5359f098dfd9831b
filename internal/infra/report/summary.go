// Where: cli/internal/infra/report/summary.go
// What: Templated end-of-run summaries.
// Why: One rendering path for console output and log context.
package report

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
)

var searchSummaryTmpl = template.Must(template.New("search-summary").Funcs(sprig.TxtFuncMap()).Parse(`Search Summary
==============
Subscriptions searched: {{ .Subscriptions }}
Snapshots matched:      {{ .Matches }}
Forbidden (warnings):   {{ .Warnings }}
Errored after retries:  {{ .Errors }}
Runtime:                {{ .Runtime }}
{{- range .PerSubscription }}
  {{ printf "%-40s" (trunc 40 .Name) }} {{ .Status }}
{{- end }}
`))

var deletionSummaryTmpl = template.Must(template.New("deletion-summary").Funcs(sprig.TxtFuncMap()).Parse(`Deletion Summary
================
Deleted: {{ .Deleted }}
Failed:  {{ .Failed }}
Skipped: {{ .Skipped }}
Total:   {{ add .Deleted .Failed .Skipped }}
Runtime: {{ .Runtime }}
{{- if .AuditPath }}
Audit log: {{ .AuditPath }}
{{- end }}
`))

type subscriptionLine struct {
	Name   string
	Status string
}

// RenderSearchSummary renders the end-of-search report.
func RenderSearchSummary(run snapshot.SearchRun) (string, error) {
	lines := make([]subscriptionLine, 0, len(run.Results))
	for _, res := range run.Results {
		var status string
		switch {
		case res.Warning != "":
			status = "forbidden"
		case res.Err != "":
			status = "error: " + res.Err
		default:
			status = fmt.Sprintf("%d matched", len(res.Matches))
		}
		lines = append(lines, subscriptionLine{Name: res.Subscription.DisplayName(), Status: status})
	}

	data := struct {
		Subscriptions   int
		Matches         int
		Warnings        int
		Errors          int
		Runtime         time.Duration
		PerSubscription []subscriptionLine
	}{
		Subscriptions:   len(run.Results),
		Matches:         run.TotalMatches(),
		Warnings:        run.Warnings(),
		Errors:          run.Errored(),
		Runtime:         run.Runtime().Round(time.Millisecond),
		PerSubscription: lines,
	}

	var buf bytes.Buffer
	if err := searchSummaryTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render search summary: %w", err)
	}
	return buf.String(), nil
}

// RenderDeletionSummary renders the end-of-deletion report.
func RenderDeletionSummary(outcomes []snapshot.DeletionOutcome, runtime time.Duration, auditPath string) (string, error) {
	tally := snapshot.Tally(outcomes)
	data := struct {
		Deleted   int
		Failed    int
		Skipped   int
		Runtime   time.Duration
		AuditPath string
	}{
		Deleted:   tally.Deleted,
		Failed:    tally.Failed,
		Skipped:   tally.Skipped,
		Runtime:   runtime.Round(time.Millisecond),
		AuditPath: auditPath,
	}

	var buf bytes.Buffer
	if err := deletionSummaryTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render deletion summary: %w", err)
	}
	return buf.String(), nil
}
