// Where: cli/internal/domain/snapshot/record.go
// What: Snapshot and subscription model types.
// Why: Give the orchestrators a typed view of Azure CLI output.
package snapshot

import (
	"fmt"
	"strings"
	"time"
)

// Accessibility describes what we know about our permissions on a subscription.
type Accessibility int

const (
	AccessUnknown Accessibility = iota
	AccessGranted
	AccessForbidden
)

func (a Accessibility) String() string {
	switch a {
	case AccessGranted:
		return "accessible"
	case AccessForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Subscription is one Azure subscription as returned by account enumeration.
// Access starts as unknown and is updated once, by the worker that owns the
// subscription, on the first authorization failure.
type Subscription struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Access Accessibility `json:"-"`
}

// DisplayName returns the subscription name, falling back to the ID when the
// enumeration could not resolve names.
func (s Subscription) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// Record is a single disk snapshot. Records are read-only once added to a
// search result set.
type Record struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ResourceGroup  string    `json:"resourceGroup"`
	SubscriptionID string    `json:"-"`
	TimeCreated    time.Time `json:"timeCreated"`
	DiskState      string    `json:"diskState"`
	CreatedBy      string    `json:"createdBy"`
}

// AgeDays returns the whole number of days between the snapshot creation time
// and now.
func (r Record) AgeDays(now time.Time) int {
	return int(now.Sub(r.TimeCreated).Hours() / 24)
}

// ResourceID is a parsed snapshot resource path:
// /subscriptions/<sub>/resourceGroups/<rg>/providers/Microsoft.Compute/snapshots/<name>
type ResourceID struct {
	SubscriptionID string
	ResourceGroup  string
	Name           string
}

// ParseResourceID splits a snapshot resource path into its components.
// Anything shorter than the full provider path is rejected.
func ParseResourceID(id string) (ResourceID, error) {
	parts := strings.Split(strings.TrimSpace(id), "/")
	if len(parts) < 9 || parts[0] != "" || !strings.EqualFold(parts[1], "subscriptions") {
		return ResourceID{}, fmt.Errorf("invalid snapshot resource ID: %q", id)
	}
	return ResourceID{
		SubscriptionID: parts[2],
		ResourceGroup:  parts[4],
		Name:           parts[len(parts)-1],
	}, nil
}
