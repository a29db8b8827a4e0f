// Package launcher starts the full-screen tracker from the command line
package launcher

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/cli/report"
	"github.com/thenoetrevino/tock/internal/tui"
	"github.com/thenoetrevino/tock/internal/tui/theme"
)

// Launch runs the TUI until the user quits or a signal arrives, then
// prints the session summary once the screen is gone
func Launch(cmd *cobra.Command, args []string) error {
	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		cli.Context(cmd),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()

	a := cliInstance.App
	theme.Init(a.Config.ColorScheme)
	logger := a.Logger()

	logger.Info("tui starting")
	summary, err := tui.Run(ctx, a)
	if summary == nil {
		logger.Error("tui exited without a summary", "error", err)
		return cli.Fail(formatter, err)
	}
	if ctx.Err() != nil {
		logger.Info("shutdown signal received, session saved")
	}

	if printErr := report.PrintSummary(formatter, summary, a.Location(), !cli.IsTerminal(os.Stdout)); printErr != nil {
		return printErr
	}
	if err != nil {
		return cli.Fail(formatter, err)
	}
	return nil
}

// Interactive reports whether stdin and stdout are both terminals
func Interactive() bool {
	return cli.IsTerminal(os.Stdin) && cli.IsTerminal(os.Stdout)
}
