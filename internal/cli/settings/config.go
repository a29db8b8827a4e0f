package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/config"
	"gopkg.in/yaml.v3"
)

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		Long: `The config file lives at $TOCK_CONFIG, else
$XDG_CONFIG_HOME/tock/config.yaml, else ~/.config/tock/config.yaml.`,
	}

	cmd.AddCommand(configPathCmd())
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())

	return cmd
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults and environment overrides are applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	formatter := cli.FormatterFrom(cmd)

	path, err := config.Path()
	if err != nil {
		return cli.Fail(formatter, err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return cli.Fail(formatter, cli.Usage("%s already exists; pass --force to overwrite", path))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cli.Fail(formatter, err)
	}

	if err := config.Default().SaveFile(path); err != nil {
		return cli.Fail(formatter, err)
	}
	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}
