// Package cli runs cobra commands against an in-memory App for the
// command packages' tests
package cli

import (
	"context"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/app"
	tockcli "github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/testutil"
)

// SetupCLITest returns an App over an in-memory database and the mock
// clock driving it, set to testutil.Epoch
func SetupCLITest(t *testing.T) (*app.App, *clock.Mock) {
	t.Helper()
	clk := testutil.NewMockClock()
	return testutil.NewTestApp(t, clk), clk
}

// ExecuteCLICommand runs cmd with args against testApp and returns what
// it printed to stdout
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext is ExecuteCLICommand with a parent context
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctxWithApp := tockcli.WithApp(ctx, testApp)
	cmd.SetContext(ctxWithApp)
	testutil.SetupCobraCommand(cmd, args)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})
	return output, executeErr
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	return testutil.ParseJSON(t, output)
}
