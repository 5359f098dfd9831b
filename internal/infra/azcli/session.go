// Where: cli/internal/infra/azcli/session.go
// What: Azure CLI login/session checks.
// Why: Explicit session object consumed once before orchestration, replacing
// process-global login state.
package azcli

import (
	"context"

	"go.uber.org/zap"
)

const loginScope = "https://management.core.windows.net//.default"

// IsLoggedIn reports whether the az CLI has an active account.
func (c *Client) IsLoggedIn(ctx context.Context) bool {
	_, _, err := c.run(ctx, "account", "show")
	return err == nil
}

// Login runs the interactive az login flow.
func (c *Client) Login(ctx context.Context) error {
	_, stderr, err := c.run(ctx, "login", "--scope", loginScope)
	if err != nil {
		c.log.Error("az login failed", zap.String("stderr", firstLine(string(stderr))))
		return classify("az login", "", stderr, err)
	}
	return nil
}
