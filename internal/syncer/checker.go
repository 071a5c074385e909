package syncer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/cbout22/skill-sync/internal/github"
	"github.com/cbout22/skill-sync/internal/manifest"
)

// Drift describes what a sync of one skill would change, without writing.
type Drift struct {
	Skill string
	// Changed lists local paths whose bytes differ from the remote (or do
	// not exist yet).
	Changed []string
	// Stale lists local paths that would be pruned.
	Stale []string
	// ListingFailed marks the drift as incomplete: a directory listing
	// could not be fetched, so Stale is unknown and left empty.
	ListingFailed bool
}

// InSync reports whether the skill needs no changes.
func (d Drift) InSync() bool {
	return len(d.Changed) == 0 && len(d.Stale) == 0 && !d.ListingFailed
}

// CheckSkill performs a dry run of SyncSkill: it fetches remote content and
// compares it against local state, touching nothing on disk.
func (s *Syncer) CheckSkill(skill manifest.Skill) Drift {
	drift := Drift{Skill: skill.Name}

	if !skill.Source.IsDirectory() {
		if s.checkFile(skill.Source.Repo, skill.Source.Branch, skill.Source.Path, skill.Destination) {
			drift.Changed = []string{skill.Destination}
		}
		return drift
	}

	srcPath := strings.TrimSuffix(skill.Source.Path, "/")
	changed, synced, listingOK := s.checkDirectory(skill.Source.Repo, skill.Source.Branch, srcPath, skill.Destination)
	drift.Changed = changed

	if !listingOK {
		drift.ListingFailed = true
		return drift
	}

	if _, err := os.Stat(skill.Destination); err == nil {
		files, _ := walkTree(skill.Destination)
		for _, f := range files {
			if _, ok := synced[f]; !ok {
				drift.Stale = append(drift.Stale, f)
			}
		}
	}

	return drift
}

// CheckAll checks every skill in manifest order.
func (s *Syncer) CheckAll(skills []manifest.Skill) []Drift {
	drifts := make([]Drift, 0, len(skills))
	for _, skill := range skills {
		drifts = append(drifts, s.CheckSkill(skill))
	}
	return drifts
}

// checkFile reports whether a sync would write destPath.
// Fetch failures count as "no change", matching SyncFile.
func (s *Syncer) checkFile(repo, branch, srcPath, destPath string) bool {
	content, err := s.fetcher.FetchFile(repo, branch, srcPath)
	if err != nil {
		return false
	}
	existing, err := os.ReadFile(destPath)
	if err != nil {
		return true
	}
	return !bytes.Equal(existing, content)
}

// checkDirectory mirrors SyncDirectory's traversal without writing.
func (s *Syncer) checkDirectory(repo, branch, srcPath, destPath string) (changed []string, synced map[string]struct{}, listingOK bool) {
	synced = make(map[string]struct{})

	entries, err := s.fetcher.FetchDirectory(repo, srcPath, branch)
	if err != nil {
		return nil, synced, false
	}

	listingOK = true
	for _, entry := range entries {
		itemDest := filepath.Join(destPath, entry.Name)

		switch entry.Type {
		case github.TypeFile:
			synced[itemDest] = struct{}{}
			if s.checkFile(repo, branch, entry.Path, itemDest) {
				changed = append(changed, itemDest)
			}
		case github.TypeDir:
			subChanged, subSynced, subOK := s.checkDirectory(repo, branch, entry.Path, itemDest)
			changed = append(changed, subChanged...)
			for p := range subSynced {
				synced[p] = struct{}{}
			}
			if !subOK {
				listingOK = false
			}
		}
	}

	return changed, synced, listingOK
}
