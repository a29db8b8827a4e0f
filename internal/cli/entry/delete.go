package entry

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/tui/huhforms"
)

// DeleteCmd returns the delete command
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Long: `Delete an entry by ID (requires confirmation unless --force or --quiet).
Deleting the running entry stops the timer without recording anything.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()

	id, err := cli.ParseEntryID(args[0])
	if err != nil {
		return cli.Fail(formatter, err)
	}

	entry, err := sess.Workspace().Store.Get(id)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if !force && !formatter.Quiet && !formatter.JSON {
		if !cli.IsTerminal(os.Stdin) {
			return cli.Fail(formatter, cli.Usage("refusing to delete without confirmation; pass --force"))
		}
		confirmed := false
		form := huhforms.ConfirmDeleteForm(fmt.Sprintf("Delete entry #%d '%s'?", id, untitled(entry.Description)), &confirmed).
			WithTheme(huhforms.Theme(cliInstance.App.Config.ColorScheme))
		if err := form.Run(); err != nil {
			return cli.Fail(formatter, errors.New("confirmation aborted"))
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := sess.DeleteEntry(ctx, id); err != nil {
		return cli.Fail(formatter, err)
	}
	if err := cliInstance.Save(ctx); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"entry_id": id})
	}

	fmt.Printf("✓ Entry %d deleted successfully\n", id)
	if entry.IsRunning() {
		fmt.Println("  The timer is now idle")
	}
	return nil
}
