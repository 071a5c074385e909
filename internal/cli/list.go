package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/cbout22/skill-sync/internal/config"
	"github.com/cbout22/skill-sync/internal/manifest"
)

// newListCmd creates the `list` command.
// Usage: skillsync list
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all skills in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(config.DefaultSettingsFile)
			if err != nil {
				return err
			}
			return runListWith(settings.Manifest, os.Stdout)
		},
	}
}

// runListWith is the testable core of the list command.
func runListWith(manifestPath string, console io.Writer) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	if len(m.Skills) == 0 {
		fmt.Fprintln(console, "No skills configured in manifest")
		return nil
	}

	cnf := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}

	table := tablewriter.NewTable(console, tablewriter.WithConfig(cnf))
	table.Header("Name", "Source", "Path", "Mode", "Destination")

	for _, s := range m.Skills {
		mode := "file"
		if s.Source.IsDirectory() {
			mode = "dir"
		}
		table.Append(s.Name, s.Source.Repo+"@"+s.Source.Branch, s.Source.Path, mode, s.Destination)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	fmt.Fprintf(console, "\nTotal: %d skill(s)\n", len(m.Skills))
	return nil
}
