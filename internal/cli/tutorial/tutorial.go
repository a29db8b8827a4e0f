// Package tutorial prints a short guide to tracking time with tock
package tutorial

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show a short guide to tock",
		Long: `Show the common tock workflows as markdown.

Output is rendered when stdout is a terminal; use --raw for plain markdown.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			raw, _ := cmd.Flags().GetBool("raw")
			outputTutorial(raw || !cli.IsTerminal(os.Stdout))
		},
	}

	cmd.Flags().Bool("raw", false, "Print plain markdown")

	return cmd
}

func outputTutorial(raw bool) {
	if raw {
		fmt.Print(tutorialContent)
		return
	}
	cli.PrintMarkdown(tutorialContent)
}
