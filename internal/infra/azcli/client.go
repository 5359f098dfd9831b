// Where: cli/internal/infra/azcli/client.go
// What: Azure CLI adapter for snapshot listing, deletion, and enumeration.
// Why: Map az invocations and their text failures into typed results.
package azcli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/azsnap/azsnap/internal/domain/snapshot"
	"github.com/azsnap/azsnap/internal/ports"
)

// listProjection mirrors the fields the tool consumes, keeping az output
// small and stable across CLI versions.
const listProjection = "[].{name:name, resourceGroup:resourceGroup, timeCreated:timeCreated, diskState:diskState, id:id, createdBy:tags.createdBy}"

// Client drives the az CLI. It performs no retries; retry policy belongs to
// the orchestrators.
type Client struct {
	runner CommandRunner
	log    *zap.Logger
}

// NewClient builds a Client around the given runner.
func NewClient(runner CommandRunner, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{runner: runner, log: log}
}

// ListSubscriptions enumerates the subscriptions visible to the session.
func (c *Client) ListSubscriptions(ctx context.Context) ([]snapshot.Subscription, error) {
	stdout, stderr, err := c.run(ctx, "account", "list", "--query", "[].{id:id, name:name}", "-o", "json")
	if err != nil {
		return nil, classify("az account list", "", stderr, err)
	}
	var subs []snapshot.Subscription
	if err := json.Unmarshal(stdout, &subs); err != nil {
		return nil, &ports.TransportError{Op: "az account list", Detail: fmt.Sprintf("parse output: %v", err)}
	}
	return subs, nil
}

// ListSnapshots lists every snapshot in one subscription.
func (c *Client) ListSnapshots(ctx context.Context, subscriptionID string) ([]snapshot.Record, error) {
	stdout, stderr, err := c.run(ctx, "snapshot", "list",
		"--subscription", subscriptionID,
		"--query", listProjection,
		"-o", "json")
	if err != nil {
		return nil, classify("az snapshot list", subscriptionID, stderr, err)
	}
	var records []snapshot.Record
	if err := json.Unmarshal(stdout, &records); err != nil {
		// az sometimes reports authorization failures on stdout with exit 0.
		if isAuthorizationText(string(stdout)) {
			return nil, &ports.AuthorizationError{SubscriptionID: subscriptionID, Detail: firstLine(string(stdout))}
		}
		return nil, &ports.TransportError{Op: "az snapshot list", Detail: fmt.Sprintf("parse output: %v", err)}
	}
	for i := range records {
		records[i].SubscriptionID = subscriptionID
	}
	return records, nil
}

// DeleteSnapshot removes a snapshot by resource ID.
func (c *Client) DeleteSnapshot(ctx context.Context, id string) error {
	_, stderr, err := c.run(ctx, "snapshot", "delete", "--ids", id)
	if err != nil {
		return classifyForResource("az snapshot delete", id, stderr, err)
	}
	return nil
}

// ShowSnapshot checks that a snapshot exists.
func (c *Client) ShowSnapshot(ctx context.Context, id string) error {
	_, stderr, err := c.run(ctx, "snapshot", "show", "--ids", id)
	if err != nil {
		return classifyForResource("az snapshot show", id, stderr, err)
	}
	return nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	c.log.Debug("running az command", zap.Strings("args", args))
	stdout, stderr, err := c.runner.RunOutput(ctx, "az", args...)
	if err != nil {
		c.log.Warn("az command failed",
			zap.Strings("args", args),
			zap.String("stderr", firstLine(string(stderr))),
			zap.Error(err))
	}
	return stdout, stderr, err
}

// classify maps an az failure to the typed taxonomy using stderr markers.
func classify(op, subscriptionID string, stderr []byte, err error) error {
	text := string(stderr)
	switch {
	case isAuthorizationText(text):
		return &ports.AuthorizationError{SubscriptionID: subscriptionID, Detail: firstLine(text)}
	case isNotFoundText(text):
		return &ports.NotFoundError{ID: subscriptionID, Detail: firstLine(text)}
	default:
		return &ports.TransportError{Op: op, Detail: firstLine(text), Err: err}
	}
}

func classifyForResource(op, id string, stderr []byte, err error) error {
	text := string(stderr)
	switch {
	case isAuthorizationText(text):
		rid, perr := snapshot.ParseResourceID(id)
		if perr != nil {
			return &ports.AuthorizationError{Detail: firstLine(text)}
		}
		return &ports.AuthorizationError{SubscriptionID: rid.SubscriptionID, Detail: firstLine(text)}
	case isNotFoundText(text):
		return &ports.NotFoundError{ID: id, Detail: firstLine(text)}
	default:
		return &ports.TransportError{Op: op, Detail: firstLine(text), Err: err}
	}
}

func isAuthorizationText(text string) bool {
	return strings.Contains(text, "AuthorizationFailed") ||
		strings.Contains(text, "AuthorizationError") ||
		strings.Contains(text, "does not have authorization")
}

func isNotFoundText(text string) bool {
	return strings.Contains(text, "ResourceNotFound") ||
		strings.Contains(text, "NotFound") ||
		strings.Contains(text, "was not found")
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}
