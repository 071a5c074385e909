package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cbout22/skill-sync/internal/config"
	"github.com/cbout22/skill-sync/internal/manifest"
)

// newRemoveCmd creates the `remove` command.
// Usage: skillsync remove <name>
func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a skill entry from the manifest",
		Long: `Removes a skill descriptor from skills-manifest.yaml. Local files already
synced for the skill are left in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(config.DefaultSettingsFile)
			if err != nil {
				return err
			}
			return runRemoveWith(settings.Manifest, args[0], os.Stdout)
		},
	}
}

// runRemoveWith is the testable core of the remove command.
func runRemoveWith(manifestPath, name string, console io.Writer) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	if !m.Remove(name) {
		return fmt.Errorf("skill %q not in manifest", name)
	}

	if err := m.Save(manifestPath); err != nil {
		return err
	}

	fmt.Fprintf(console, "Removed: %s\n", name)
	return nil
}
