package syncer

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cbout22/skill-sync/internal/github"
	"github.com/cbout22/skill-sync/internal/manifest"
	"github.com/cbout22/skill-sync/internal/report"
)

// Syncer reconciles local skill destinations against their remote sources.
// Execution is strictly sequential: one skill at a time, one request at a
// time. Every failure below the manifest degrades to "no change" for the
// affected item rather than aborting the run.
type Syncer struct {
	fetcher Fetcher
	console io.Writer
}

// New creates a Syncer that reports progress to console.
func New(fetcher Fetcher, console io.Writer) *Syncer {
	return &Syncer{
		fetcher: fetcher,
		console: console,
	}
}

// Result holds the changes made while syncing one skill.
type Result struct {
	Updated []string
	Removed []string
}

// Changed reports whether the skill sync modified anything.
func (r Result) Changed() bool {
	return len(r.Updated) > 0 || len(r.Removed) > 0
}

// SyncFile mirrors a single remote file to destPath.
// Returns true if the file was written. A fetch failure returns false (the
// fetcher already logged it); identical local content returns false without
// rewriting, so timestamps are preserved.
func (s *Syncer) SyncFile(repo, branch, srcPath, destPath string) bool {
	content, err := s.fetcher.FetchFile(repo, branch, srcPath)
	if err != nil {
		return false
	}

	if existing, err := os.ReadFile(destPath); err == nil && bytes.Equal(existing, content) {
		return false
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		fmt.Fprintf(s.console, "  Error writing %s: %v\n", destPath, err)
		return false
	}
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		fmt.Fprintf(s.console, "  Error writing %s: %v\n", destPath, err)
		return false
	}

	return true
}

// SyncDirectory recursively mirrors a remote directory tree to destPath.
// It returns the updated local paths (in listing order), the set of local
// paths the remote tree maps to, and whether every listing in the subtree
// succeeded. When listingOK is false the synced set is incomplete and must
// not drive pruning. Files whose individual download fails still join the
// synced set: their existing local copies are not stale.
func (s *Syncer) SyncDirectory(repo, branch, srcPath, destPath string) (updated []string, synced map[string]struct{}, listingOK bool) {
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
			if s.SyncFile(repo, branch, entry.Path, itemDest) {
				updated = append(updated, itemDest)
			}
		case github.TypeDir:
			subUpdated, subSynced, subOK := s.SyncDirectory(repo, branch, entry.Path, itemDest)
			updated = append(updated, subUpdated...)
			for p := range subSynced {
				synced[p] = struct{}{}
			}
			if !subOK {
				listingOK = false
			}
		}
	}

	return updated, synced, listingOK
}

// RemoveStaleFiles deletes files under destPath that are not in the synced
// set, then prunes directories left empty. Files are visited in
// lexicographic order for reproducible output; directories are deleted in
// reverse lexicographic order so children go before parents. destPath
// itself is never removed.
func (s *Syncer) RemoveStaleFiles(destPath string, synced map[string]struct{}) []string {
	if _, err := os.Stat(destPath); err != nil {
		return nil
	}

	files, dirs := walkTree(destPath)

	var removed []string
	for _, f := range files {
		if _, ok := synced[f]; ok {
			continue
		}
		if err := os.Remove(f); err != nil {
			fmt.Fprintf(s.console, "  Error removing %s: %v\n", f, err)
			continue
		}
		fmt.Fprintf(s.console, "  Removed: %s\n", f)
		removed = append(removed, f)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			fmt.Fprintf(s.console, "  Error removing %s: %v\n", dir, err)
		}
	}

	return removed
}

// walkTree returns all files and directories under root, excluding root
// itself. filepath.WalkDir visits entries in lexical order.
func walkTree(root string) (files, dirs []string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
		return nil
	})
	return files, dirs
}

// SyncSkill mirrors one skill according to its descriptor.
// Directory mode (trailing slash on the source path) syncs recursively and
// prunes stale local files; file mode syncs a single file and never prunes.
// Pruning is skipped entirely when any listing in the subtree failed, so a
// transient API error can never delete local content as stale.
func (s *Syncer) SyncSkill(skill manifest.Skill) Result {
	fmt.Fprintf(s.console, "Syncing: %s from %s\n", skill.Name, skill.Source.Repo)

	if skill.Source.IsDirectory() {
		srcPath := strings.TrimSuffix(skill.Source.Path, "/")
		updated, synced, listingOK := s.SyncDirectory(skill.Source.Repo, skill.Source.Branch, srcPath, skill.Destination)

		var removed []string
		if listingOK {
			removed = s.RemoveStaleFiles(skill.Destination, synced)
		} else {
			logrus.WithField("skill", skill.Name).
				Warn("directory listing incomplete, skipping stale file cleanup")
		}
		return Result{Updated: updated, Removed: removed}
	}

	if s.SyncFile(skill.Source.Repo, skill.Source.Branch, skill.Source.Path, skill.Destination) {
		return Result{Updated: []string{skill.Destination}}
	}
	return Result{}
}

// Run syncs every skill in manifest order and aggregates the changes.
// One skill's failure never blocks the skills after it.
func (s *Syncer) Run(skills []manifest.Skill) report.Report {
	var rep report.Report

	for _, skill := range skills {
		res := s.SyncSkill(skill)
		if res.Changed() {
			rep.Skills = append(rep.Skills, skill.Name)
		}
		rep.Updated = append(rep.Updated, res.Updated...)
		rep.Removed = append(rep.Removed, res.Removed...)
	}

	return rep
}
