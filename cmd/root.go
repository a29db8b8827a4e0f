// Package cmd assembles the tock command tree
package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/cli/data"
	"github.com/thenoetrevino/tock/internal/cli/entry"
	"github.com/thenoetrevino/tock/internal/cli/project"
	"github.com/thenoetrevino/tock/internal/cli/repl"
	"github.com/thenoetrevino/tock/internal/cli/report"
	"github.com/thenoetrevino/tock/internal/cli/settings"
	"github.com/thenoetrevino/tock/internal/cli/styles"
	"github.com/thenoetrevino/tock/internal/cli/task"
	"github.com/thenoetrevino/tock/internal/cli/tutorial"
	"github.com/thenoetrevino/tock/internal/cli/use"
	"github.com/thenoetrevino/tock/internal/config"
	"github.com/thenoetrevino/tock/internal/launcher"
	"github.com/thenoetrevino/tock/internal/logging"
	"github.com/thenoetrevino/tock/internal/tui/theme"
)

// logCloser is the log file opened by the pre-run hook
var logCloser io.Closer

// NewRootCmd builds the tock command with every subcommand attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tock",
		Short: "tock - a personal time tracker",
		Long: `tock records what you work on and for how long.

Run without a command for the interactive view on a terminal, or the
line-based session when input is piped. See 'tock tutorial' to get started.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRun:  setup,
		PersistentPostRun: teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			if launcher.Interactive() {
				return launcher.Launch(cmd, args)
			}
			return repl.RunSession(cmd, args)
		},
	}

	rootCmd.Flags().Bool("json", false, "Print the session summary as JSON")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.Usage("%v", err)
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "track", Title: "Tracking:"},
		&cobra.Group{ID: "organise", Title: "Projects and tasks:"},
		&cobra.Group{ID: "review", Title: "Reports:"},
	)

	for _, c := range []*cobra.Command{
		entry.StartCmd(), entry.StopCmd(), entry.StatusCmd(),
		entry.AddCmd(), entry.EditCmd(), entry.DeleteCmd(),
		repl.SessionCmd(),
	} {
		c.GroupID = "track"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{project.ProjectCmd(), task.TaskCmd(), use.UseCmd()} {
		c.GroupID = "organise"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		entry.ListCmd(), report.DayCmd(), report.WeekCmd(), report.SummaryCmd(),
	} {
		c.GroupID = "review"
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(
		data.ExportCmd(),
		data.ImportCmd(),
		settings.SettingsCmd(),
		settings.ConfigCmd(),
		tutorial.TutorialCmd(),
	)

	return rootCmd
}

// setup starts file logging and applies the configured colors. A config
// that fails to load is reported later by the command that needs it.
func setup(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	styles.Init(cfg.ColorScheme)
	theme.Init(cfg.ColorScheme)

	logger, closer, err := logging.Init("", cfg.LogLevel)
	if err != nil {
		return
	}
	logCloser = closer
	logger.Debug("command started", "command", cmd.CommandPath())
}

func teardown(cmd *cobra.Command, args []string) {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// Execute runs the command tree and returns the process exit code
func Execute() int {
	rootCmd := NewRootCmd()
	executed, err := rootCmd.ExecuteC()
	if err != nil {
		if executed == nil {
			executed = rootCmd
		}
		slog.Debug("command failed", "error", err)
		cli.Report(cli.FormatterFrom(executed), err)
	}
	return cli.ExitCodeFor(err)
}
