package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/nameclaim/nameclaim/internal/core"
)

const githubAPIURL = "https://api.github.com"

// GitHubProber checks whether a repository name is free under the
// authenticated user's account.
//
// GET https://api.github.com/repos/{owner}/{repo}
//   - 404: repository not found (available)
//   - 200: repository exists (taken)
//
// Without a token the probe cannot resolve an owner, so it reports Unknown
// rather than guessing.
type GitHubProber struct {
	Client  httpDoer
	BaseURL string
	Token   string
	Owner   string
}

// Kind returns the registry kind.
func (p *GitHubProber) Kind() core.RegistryKind {
	return core.KindGitHub
}

// Check probes GitHub for the given repository name.
func (p *GitHubProber) Check(ctx context.Context, name string) core.Outcome {
	if strings.TrimSpace(p.Token) == "" {
		return unknown(core.KindGitHub, name, "github token not set (set GITHUB_TOKEN)")
	}

	base := p.BaseURL
	if base == "" {
		base = githubAPIURL
	}

	owner := p.Owner
	if owner == "" {
		resolved, err := p.resolveOwner(ctx, base)
		if err != nil {
			return unknown(core.KindGitHub, name, err.Error())
		}
		owner = resolved
	}

	full := owner + "/" + name
	resp, err := getJSON(ctx, p.Client, base+"/repos/"+url.PathEscape(owner)+"/"+url.PathEscape(name), p.headers())
	if err != nil {
		return unknown(core.KindGitHub, full, err.Error())
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	return statusOutcome(core.KindGitHub, full, resp.StatusCode)
}

func (p *GitHubProber) resolveOwner(ctx context.Context, base string) (string, error) {
	resp, err := getJSON(ctx, p.Client, base+"/user", p.headers())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	var user struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", err
	}
	if user.Login == "" {
		return "", errHTTPStatus(resp.StatusCode)
	}
	return user.Login, nil
}

func (p *GitHubProber) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + p.Token,
		"Accept":        "application/vnd.github+json",
	}
}

type httpStatusError int

func errHTTPStatus(code int) error { return httpStatusError(code) }

func (e httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", int(e))
}
