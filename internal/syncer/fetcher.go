package syncer

import "github.com/cbout22/skill-sync/internal/github"

// Fetcher defines the remote operations the synchronizer needs.
// Satisfied by *github.Client; tests substitute an in-memory fake.
type Fetcher interface {
	// FetchFile downloads the exact bytes of one remote file.
	FetchFile(repo, branch, path string) ([]byte, error)

	// FetchDirectory lists one remote directory, in the order the remote
	// API yields entries. An error means the listing failed — callers must
	// not confuse that with an empty directory.
	FetchDirectory(repo, path, branch string) ([]github.Entry, error)
}
