package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/cbout22/skill-sync/internal/config"
)

// Entry types returned by the contents listing endpoint.
// Other types (symlink, submodule) exist but are not synced.
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

// Entry is one element of a directory listing.
type Entry struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Client fetches raw file content and directory listings from GitHub.
// It performs network I/O only: no filesystem writes, no retries, no
// concurrency. Failures are written to the console as diagnostic lines and
// returned as errors — nothing panics past this boundary.
type Client struct {
	http    *resty.Client
	rawBase string
	apiBase string
	console io.Writer
}

// NewClient creates a Client using the given resty client and endpoint
// bases from settings. Diagnostic lines go to console.
func NewClient(httpClient *resty.Client, settings config.Settings, console io.Writer) *Client {
	return &Client{
		http:    httpClient,
		rawBase: settings.RawBase,
		apiBase: settings.APIBase,
		console: console,
	}
}

// rawURL builds the raw-content URL for a single file.
func (c *Client) rawURL(repo, branch, path string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.rawBase, repo, branch, path)
}

// contentsURL builds the contents-listing API URL for a directory.
func (c *Client) contentsURL(repo, path, branch string) string {
	return fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s", c.apiBase, repo, path, branch)
}

// FetchFile downloads the exact bytes of one file.
func (c *Client) FetchFile(repo, branch, path string) ([]byte, error) {
	url := c.rawURL(repo, branch, path)
	logrus.WithField("url", url).Debug("downloading file")

	resp, err := c.http.R().Get(url)
	if err != nil {
		fmt.Fprintf(c.console, "  Error downloading %s: %v\n", url, err)
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}

	if resp.StatusCode() != http.StatusOK {
		fmt.Fprintf(c.console, "  Error downloading %s: %d %s\n",
			url, resp.StatusCode(), http.StatusText(resp.StatusCode()))
		return nil, fmt.Errorf("downloading %s: HTTP %d", url, resp.StatusCode())
	}

	return resp.Body(), nil
}

// FetchDirectory retrieves the listing of a directory, preserving the order
// the API returns. Entries that are neither files nor directories are
// skipped. A failed or undecodable listing is an error, never an empty
// listing: callers must be able to tell failure apart from an empty remote
// directory before pruning anything.
func (c *Client) FetchDirectory(repo, path, branch string) ([]Entry, error) {
	url := c.contentsURL(repo, path, branch)
	logrus.WithField("url", url).Debug("fetching directory listing")

	resp, err := c.http.R().
		SetHeader("Accept", "application/vnd.github.v3+json").
		Get(url)
	if err != nil {
		fmt.Fprintf(c.console, "  Error fetching directory %s: %v\n", url, err)
		return nil, fmt.Errorf("fetching directory %s: %w", url, err)
	}

	if resp.StatusCode() != http.StatusOK {
		fmt.Fprintf(c.console, "  Error fetching directory %s: %d %s\n",
			url, resp.StatusCode(), http.StatusText(resp.StatusCode()))
		return nil, fmt.Errorf("fetching directory %s: HTTP %d", url, resp.StatusCode())
	}

	var raw []Entry
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		fmt.Fprintf(c.console, "  Error fetching directory %s: %v\n", url, err)
		return nil, fmt.Errorf("decoding listing %s: %w", url, err)
	}

	var entries []Entry
	for _, e := range raw {
		if e.Type != TypeFile && e.Type != TypeDir {
			logrus.WithFields(logrus.Fields{"path": e.Path, "type": e.Type}).
				Debug("skipping unsupported entry type")
			continue
		}
		entries = append(entries, e)
	}

	return entries, nil
}
