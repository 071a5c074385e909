package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/cbout22/skill-sync/internal/config"
	"github.com/cbout22/skill-sync/internal/manifest"
)

// newAddCmd creates the `add` command.
// Usage: skillsync add <name> <owner/repo> <path> <destination> [--branch main]
func newAddCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "add <name> <owner/repo> <path> <destination>",
		Short: "Add a skill entry to the manifest",
		Long: `Appends a skill descriptor to skills-manifest.yaml. A trailing slash on
<path> marks the skill as a directory tree, synced recursively with stale
file pruning.

Example:
  skillsync add demo acme/skills tools/ .skills/demo`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(config.DefaultSettingsFile)
			if err != nil {
				return err
			}
			skill := manifest.Skill{
				Name: args[0],
				Source: manifest.Source{
					Repo:   args[1],
					Branch: branch,
					Path:   args[2],
				},
				Destination: args[3],
			}
			return runAddWith(settings.Manifest, skill, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&branch, "branch", manifest.DefaultBranch, "Branch to sync from")

	return cmd
}

// runAddWith is the testable core of the add command.
// A missing manifest file starts a new one, unlike sync where it is fatal.
func runAddWith(manifestPath string, skill manifest.Skill, console io.Writer) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		m = manifest.New()
	}

	if err := m.Add(skill); err != nil {
		return err
	}

	if err := m.Save(manifestPath); err != nil {
		return err
	}

	fmt.Fprintf(console, "Added: %s from %s\n", skill.Name, skill.Source.Repo)
	return nil
}
