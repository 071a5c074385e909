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
	"github.com/cbout22/skill-sync/internal/report"
	"github.com/cbout22/skill-sync/internal/syncer"
)

// newSyncCmd creates the `sync` command.
// Usage: skillsync sync
func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync all skills defined in skills-manifest.yaml",
		Long: `Downloads or updates every skill declared in skills-manifest.yaml.
Files whose local bytes already match the remote are left untouched; files
no longer present upstream are pruned from directory-mode destinations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync()
		},
	}
}

func runSync() error {
	settings, err := config.Load(config.DefaultSettingsFile)
	if err != nil {
		return err
	}

	fetcher := github.NewClient(auth.NewClient(settings), settings, os.Stdout)
	return runSyncWith(settings.Manifest, fetcher, report.SinksFromEnv(), os.Stdout)
}

// runSyncWith is the testable core of the sync command.
// A missing manifest is the one fatal condition; per-skill failures are
// logged by the layers below and never change the outcome.
func runSyncWith(manifestPath string, fetcher syncer.Fetcher, sinks report.Sinks, console io.Writer) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	if len(m.Skills) == 0 {
		fmt.Fprintln(console, "No skills configured in manifest")
		return nil
	}

	s := syncer.New(fetcher, console)
	rep := s.Run(m.Skills)

	return rep.Emit(console, sinks)
}
