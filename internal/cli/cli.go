package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/app"
	"github.com/thenoetrevino/tock/internal/config"
	"github.com/thenoetrevino/tock/internal/session"
)

type contextKey string

const appKey contextKey = "app"

// WithApp stores an already built App in ctx. Commands run against it
// instead of opening the configured storage, and do not close it.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// CLI represents the CLI application context
type CLI struct {
	App   *app.App
	owned bool
}

// NewCLI loads the config and opens the session it names
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	return &CLI{App: application, owned: true}, nil
}

// GetCLIFromContext returns the App placed by WithApp, or opens a new one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	return NewCLI(ctx)
}

// Open is the common command prologue: it builds the formatter from the
// --json and --quiet flags, opens the CLI and reports a recovered load
// failure as a warning.
func Open(cmd *cobra.Command) (*CLI, *OutputFormatter, error) {
	formatter := FormatterFrom(cmd)

	cliInstance, err := GetCLIFromContext(Context(cmd))
	if err != nil {
		return nil, formatter, FailWith(formatter, ExitError, "INITIALIZATION_ERROR", err)
	}
	if warn := cliInstance.Session().LoadWarning(); warn != nil {
		formatter.Warning(fmt.Sprintf("%v; starting with an empty session, changes will not be saved", warn))
	}
	return cliInstance, formatter, nil
}

// Session is the controller of the open App
func (c *CLI) Session() *session.Controller {
	return c.App.Session
}

// Save flushes unsaved changes. With autosave on this is usually a no-op.
func (c *CLI) Save(ctx context.Context) error {
	if !c.Session().Dirty() && c.Session().LastSaveError() == nil {
		return nil
	}
	return c.Session().Flush(ctx)
}

// Close releases the App when this CLI opened it
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// FormatterFrom reads --json and --quiet
func FormatterFrom(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// EnvProject names the project used when --project is not given
const EnvProject = "TOCK_PROJECT"

// ProjectRef reads --project, falling back to $TOCK_PROJECT
func ProjectRef(cmd *cobra.Command) string {
	if ref, _ := cmd.Flags().GetString("project"); ref != "" {
		return ref
	}
	return os.Getenv(EnvProject)
}

// Context returns the command's context, or Background when unset
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
