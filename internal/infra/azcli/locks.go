// Where: cli/internal/infra/azcli/locks.go
// What: Resource-group scope lock operations.
// Why: CanNotDelete locks block snapshot deletion and must be lifted and
// restored around a batch.
package azcli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/azsnap/azsnap/internal/ports"
)

// ListLocks returns the management locks on a resource group.
func (c *Client) ListLocks(ctx context.Context, subscriptionID, resourceGroup string) ([]ports.ResourceLock, error) {
	stdout, stderr, err := c.run(ctx, "lock", "list",
		"--subscription", subscriptionID,
		"--resource-group", resourceGroup,
		"--query", "[].{name:name, level:level}",
		"-o", "json")
	if err != nil {
		return nil, classify("az lock list", subscriptionID, stderr, err)
	}
	var locks []ports.ResourceLock
	if err := json.Unmarshal(stdout, &locks); err != nil {
		return nil, &ports.TransportError{Op: "az lock list", Detail: fmt.Sprintf("parse output: %v", err)}
	}
	return locks, nil
}

// DeleteLock removes one lock from a resource group.
func (c *Client) DeleteLock(ctx context.Context, subscriptionID, resourceGroup, name string) error {
	_, stderr, err := c.run(ctx, "lock", "delete",
		"--subscription", subscriptionID,
		"--resource-group", resourceGroup,
		"--name", name)
	if err != nil {
		return classify("az lock delete", subscriptionID, stderr, err)
	}
	return nil
}

// CreateLock recreates a CanNotDelete lock on a resource group.
func (c *Client) CreateLock(ctx context.Context, subscriptionID, resourceGroup, name string) error {
	_, stderr, err := c.run(ctx, "lock", "create",
		"--subscription", subscriptionID,
		"--resource-group", resourceGroup,
		"--name", name,
		"--lock-type", ports.LevelCanNotDelete)
	if err != nil {
		return classify("az lock create", subscriptionID, stderr, err)
	}
	return nil
}
