// Package use holds commands that set shell-session context,
// e.g. tock use project web
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Set context for the current shell session",
		Long: `Print shell commands that set context for later tock commands.

Examples:
  eval $(tock use project web)       # default --project to web
  eval $(tock use project --clear)   # forget it
  tock use project --show            # show the current default`,
	}

	cmd.AddCommand(ProjectCmd())

	return cmd
}
