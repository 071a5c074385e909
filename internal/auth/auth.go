package auth

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"

	"github.com/cbout22/skill-sync/internal/config"
	"github.com/cbout22/skill-sync/internal/version"
)

// githubTokenEnvVars lists the environment variables checked for a GitHub token,
// in priority order.
var githubTokenEnvVars = []string{
	"GITHUB_TOKEN",
	"GH_TOKEN",
}

// Token returns the GitHub personal access token from the environment.
// It checks GITHUB_TOKEN first, then GH_TOKEN.
func Token() (string, error) {
	for _, env := range githubTokenEnvVars {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf(
		"no GitHub token found: set %s or %s in your environment",
		githubTokenEnvVars[0], githubTokenEnvVars[1],
	)
}

// NewClient returns a resty client configured for GitHub requests: the
// per-request timeout from settings and, when a token is available, an
// `Authorization: token <value>` header on every request. Without a token
// it returns a plain client (sufficient for public repos, but subject to
// stricter rate limits).
func NewClient(settings config.Settings) *resty.Client {
	client := resty.New()
	client.SetTimeout(settings.Timeout())
	client.SetHeader("User-Agent", version.UserAgent())

	token, err := Token()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no GitHub token found — using unauthenticated requests (rate-limited).\n")
		return client
	}

	client.SetHeader("Authorization", "token "+token)
	return client
}
