// Where: cli/internal/ports/errors.go
// What: Typed error taxonomy for the Azure CLI boundary.
// Why: Orchestrators decide retry/skip/abort from error kind, not CLI text.
package ports

import (
	"errors"
	"fmt"
)

// AuthorizationError means the session lacks permission on a subscription or
// resource. Contained as a warning; never aborts a run.
type AuthorizationError struct {
	SubscriptionID string
	Detail         string
}

func (e *AuthorizationError) Error() string {
	if e.SubscriptionID != "" {
		return fmt.Sprintf("authorization failed for subscription %s: %s", e.SubscriptionID, e.Detail)
	}
	return fmt.Sprintf("authorization failed: %s", e.Detail)
}

// NotFoundError means the addressed resource does not exist. For deletion
// this is the goal state, not a failure.
type NotFoundError struct {
	ID     string
	Detail string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.ID)
}

// TransportError covers network faults, timeouts, and any az failure that is
// not recognizably authorization or not-found. Retryable with bounded
// attempts.
type TransportError struct {
	Op     string
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UsageError is malformed operator input detected before orchestration
// starts. Always fatal.
type UsageError struct {
	Detail string
}

func (e *UsageError) Error() string { return e.Detail }

func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func IsUsage(err error) bool {
	var target *UsageError
	return errors.As(err, &target)
}
