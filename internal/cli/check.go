package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cbout22/skill-sync/internal/auth"
	"github.com/cbout22/skill-sync/internal/config"
	"github.com/cbout22/skill-sync/internal/github"
	"github.com/cbout22/skill-sync/internal/manifest"
	"github.com/cbout22/skill-sync/internal/syncer"
)

// newCheckCmd creates the `check` command.
// Usage: skillsync check [--strict]
func newCheckCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether local skills are in sync with their remotes",
		Long: `Fetches remote content and reports which files a sync would update or
prune, without writing anything. Useful in CI/CD pipelines.

With --strict, the command exits with a non-zero code if any skill has
drifted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with error code if skills have drifted")

	return cmd
}

func runCheck(strict bool) error {
	settings, err := config.Load(config.DefaultSettingsFile)
	if err != nil {
		return err
	}

	fetcher := github.NewClient(auth.NewClient(settings), settings, os.Stdout)
	return runCheckWith(settings.Manifest, fetcher, strict, os.Stdout)
}

// runCheckWith is the testable core of the check command.
func runCheckWith(manifestPath string, fetcher syncer.Fetcher, strict bool, console io.Writer) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	if len(m.Skills) == 0 {
		fmt.Fprintln(console, "No skills configured in manifest")
		return nil
	}

	s := syncer.New(fetcher, console)
	drifts := s.CheckAll(m.Skills)

	fmt.Fprintf(console, "Checking %d skill(s)...\n\n", len(drifts))

	var issues int
	for _, d := range drifts {
		switch {
		case d.InSync():
			fmt.Fprintf(console, "  ok    %s\n", d.Skill)
		case d.ListingFailed:
			fmt.Fprintf(console, "  error %s — directory listing failed\n", d.Skill)
			issues++
		default:
			fmt.Fprintf(console, "  drift %s — %d to update, %d to remove\n",
				d.Skill, len(d.Changed), len(d.Stale))
			for _, p := range d.Changed {
				fmt.Fprintf(console, "          ~ %s\n", p)
			}
			for _, p := range d.Stale {
				fmt.Fprintf(console, "          - %s\n", p)
			}
			issues++
		}
	}

	fmt.Fprintln(console)
	if issues > 0 {
		msg := fmt.Sprintf("Found %d skill(s) out of sync. Run 'skillsync sync' to fix.", issues)
		if strict {
			return fmt.Errorf("%s", msg)
		}
		fmt.Fprintln(console, msg)
	} else {
		fmt.Fprintln(console, "All skills are up to date.")
	}
	return nil
}
