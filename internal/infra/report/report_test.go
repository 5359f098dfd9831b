// Where: cli/internal/infra/report/report_test.go
// What: Tests for CSV export and templated summaries.
package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/ui"
)

func sampleRun() snapshot.SearchRun {
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return snapshot.SearchRun{
		Results: []snapshot.SubscriptionResult{
			{
				Subscription: snapshot.Subscription{ID: "sub-1", Name: "Prod"},
				Matches: []snapshot.Record{
					{
						ID:            "/subscriptions/sub-1/resourceGroups/rg/providers/Microsoft.Compute/snapshots/snap-a",
						Name:          "snap-a",
						ResourceGroup: "rg",
						TimeCreated:   created,
						DiskState:     "Unattached",
						CreatedBy:     "alice",
					},
				},
			},
			{
				Subscription: snapshot.Subscription{ID: "sub-2", Name: "Dev", Access: snapshot.AccessForbidden},
				Warning:      "no permission",
			},
		},
		Started:  created,
		Finished: created.Add(2 * time.Second),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRun()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 record", len(rows))
	}
	if rows[0][0] != "name" || rows[0][6] != "id" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "snap-a" || rows[1][4] != "Prod" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestRenderSearchSummary(t *testing.T) {
	text, err := RenderSearchSummary(sampleRun())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"Subscriptions searched: 2",
		"Snapshots matched:      1",
		"Forbidden (warnings):   1",
		"forbidden",
		"1 matched",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestSearchProgressPrintsMatchedRecordsLive(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSearchProgress(ui.New(&buf))

	sub := snapshot.Subscription{ID: "sub-1", Name: "Prod"}
	sink.RecordMatched(sub, snapshot.Record{Name: "snap-a"})
	sink.SubscriptionCompleted(snapshot.SubscriptionResult{
		Subscription: sub,
		Matches:      []snapshot.Record{{Name: "snap-a"}},
	}, 1, 1)

	out := buf.String()
	if !strings.Contains(out, "snap-a") || !strings.Contains(out, "Prod") {
		t.Errorf("live output missing record line:\n%s", out)
	}
	if !strings.Contains(out, "[1/1]") {
		t.Errorf("live output missing completion line:\n%s", out)
	}
}

func TestRenderDeletionSummary(t *testing.T) {
	now := time.Now()
	outcomes := []snapshot.DeletionOutcome{
		{SnapshotID: "a", Kind: snapshot.OutcomeDeleted, Timestamp: now},
		{SnapshotID: "b", Kind: snapshot.OutcomeFailed, Reason: "timeout", Timestamp: now},
		{SnapshotID: "c", Kind: snapshot.OutcomeSkipped, Reason: "cancelled", Timestamp: now},
	}
	text, err := RenderDeletionSummary(outcomes, 1500*time.Millisecond, "logs/audit.log")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"Deleted: 1",
		"Failed:  1",
		"Skipped: 1",
		"Total:   3",
		"Audit log: logs/audit.log",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}
