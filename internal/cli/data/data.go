// Package data holds the export and import commands, which move a whole
// session in or out as YAML or JSON
package data

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/filestore"
)

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all data as YAML or JSON",
		Long: `Write settings, projects, tasks and entries to stdout or a file.
The format follows --format, else the --output extension, else YAML.

Examples:
  tock export > backup.yaml
  tock export --output backup.json
  tock export --format json | jq '.entries | length'
`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "", "File to write instead of stdout")
	cmd.Flags().StringP("format", "f", "", "yaml or json")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	formatFlag, _ := cmd.Flags().GetString("format")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()

	format := filestore.FormatFromPath(output)
	if formatFlag != "" {
		if format, err = filestore.ParseFormat(formatFlag); err != nil {
			return cli.Fail(formatter, cli.Usage("%v", err))
		}
	}

	snap := cliInstance.Session().Snapshot()
	if output == "" {
		if err := filestore.Encode(os.Stdout, snap, format); err != nil {
			return cli.Fail(formatter, err)
		}
		return nil
	}

	store := filestore.NewWithFormat(output, format)
	if err := store.SaveAll(cli.Context(cmd), snap); err != nil {
		return cli.Fail(formatter, err)
	}
	fmt.Fprintf(os.Stderr, "✓ Exported %d entries, %d projects and %d tasks to %s\n",
		len(snap.Entries), len(snap.Projects), len(snap.Tasks), output)
	return nil
}

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with an exported file",
		Long: `Replace settings, projects, tasks and entries with the contents of a
file written by 'tock export'. The file is validated before anything is
replaced. Existing data is discarded, so --force is needed when there is any.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("force", false, "Replace existing data")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)
	path := args[0]
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()

	f, err := os.Open(path)
	if err != nil {
		return cli.FailWith(formatter, cli.ExitDataErr, "DATA_ERROR", err)
	}
	defer func() { _ = f.Close() }()

	snap, err := filestore.Decode(f, filestore.FormatFromPath(path))
	if err != nil {
		return cli.FailWith(formatter, cli.ExitDataErr, "DATA_ERROR", err)
	}

	current := sess.Snapshot()
	hasData := len(current.Entries)+len(current.Projects)+len(current.Tasks) > 0
	if hasData && !force && sess.LoadWarning() == nil {
		return cli.Fail(formatter, cli.Usage("existing data would be replaced; pass --force"))
	}

	if err := sess.Import(ctx, snap); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{
			"entries":  len(snap.Entries),
			"projects": len(snap.Projects),
			"tasks":    len(snap.Tasks),
		})
	}

	fmt.Printf("✓ Imported %d entries, %d projects and %d tasks from %s\n",
		len(snap.Entries), len(snap.Projects), len(snap.Tasks), path)
	return nil
}
