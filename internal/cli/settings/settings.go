// Package settings holds the commands for the stored user settings and
// the config file
package settings

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/cli/styles"
)

// SettingsCmd returns the settings parent command. Without a subcommand
// it shows the current settings.
func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the user settings",
		Long: `The user name and email are stored with your data and shown in the
session summary. They default to your login name.`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}

	cli.AddOutputFlags(cmd)
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(SetCmd())

	return cmd
}

// ShowCmd returns the settings show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the user settings",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()

	s := cliInstance.Session().Settings()
	if formatter.Quiet {
		fmt.Println(s.Name)
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"settings": s})
	}

	fmt.Println(styles.Field("Name", s.Name))
	fmt.Println(styles.Field("Email", s.Email))
	return nil
}

// SetCmd returns the settings set subcommand
func SetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the user name or email",
		Long: `Examples:
  tock settings set --name "Ada Lovelace" --email ada@example.com
  tock settings set --email ""
`,
		Args: cobra.NoArgs,
		RunE: runSet,
	}

	cmd.Flags().String("name", "", "User name")
	cmd.Flags().String("email", "", "User email")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()

	var name, email *string
	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		name = &v
	}
	if cmd.Flags().Changed("email") {
		v, _ := cmd.Flags().GetString("email")
		email = &v
	}
	if name == nil && email == nil {
		return cli.Fail(formatter, cli.Usage("nothing to change; pass --name or --email"))
	}

	s := cliInstance.Session().UpdateSettings(ctx, name, email)
	if err := cliInstance.Save(ctx); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"settings": s})
	}

	fmt.Println("✓ Settings updated successfully")
	return nil
}
