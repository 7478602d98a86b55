// Package register implements the name registration workflow: creating a
// GitHub repository as a placeholder reservation and, for package-index
// registries, seeding it with the ecosystem's manifest file.
package register

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nameclaim/nameclaim/internal/core"
	"github.com/nameclaim/nameclaim/internal/github"
)

// Result is the single terminal outcome of one registration attempt.
type Result struct {
	OK      bool
	Message string
}

func success(format string, args ...any) Result {
	return Result{OK: true, Message: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) Result {
	return Result{OK: false, Message: fmt.Sprintf(format, args...)}
}

// GitHubAPI is the slice of the GitHub client the workflow uses.
type GitHubAPI interface {
	CreateRepo(ctx context.Context, name, description string, private bool) (*github.Repo, error)
	Username(ctx context.Context) (string, error)
	HasFile(ctx context.Context, owner, repo, path string) (bool, error)
	CreateFile(ctx context.Context, owner, repo, path, message, content string) error
}

// Orchestrator dispatches registration per registry kind.
type Orchestrator struct {
	// NewClient builds the API client for one attempt's token. The token is
	// never retained beyond the attempt.
	NewClient func(token string) GitHubAPI
}

// NewOrchestrator returns an orchestrator backed by the real GitHub client.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		NewClient: func(token string) GitHubAPI {
			return github.NewClient(token)
		},
	}
}

type handler func(o *Orchestrator, ctx context.Context, name, token string) Result

// handlers is the per-kind dispatch table. Kinds without a programmatic
// registration path return fixed instructions and make no remote call.
var handlers = map[core.RegistryKind]handler{
	core.KindGitHub: registerGitHub,
	core.KindNPM:    manifestHandler(core.KindNPM),
	core.KindCrates: manifestHandler(core.KindCrates),
	core.KindPyPI:   manifestHandler(core.KindPyPI),
	core.KindBrew: instructional(
		"Homebrew: Create a formula and submit a PR to homebrew-core"),
	core.KindFlatpak: instructional(
		"Flatpak: Submit your app at flathub.org/apps/submit"),
	core.KindDebian: instructional(
		"Debian: Follow the ITP process at wiki.debian.org/ITP"),
	core.KindDevDomain: instructional(
		"Domain registration requires a registrar (e.g. Namecheap, Porkbun)"),
}

// Register runs the workflow for one probed outcome. Every branch terminates
// in exactly one Result; nothing escapes as an error or panic.
func (o *Orchestrator) Register(ctx context.Context, outcome core.Outcome, token string) Result {
	h, ok := handlers[outcome.Registry]
	if !ok {
		return failure("no registration path for %s", outcome.Registry.Label())
	}
	return h(o, ctx, repoName(outcome), token)
}

// repoName strips an owner prefix: the GitHub probe reports "owner/name" but
// repository creation wants the bare name.
func repoName(outcome core.Outcome) string {
	name := outcome.Name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func instructional(message string) handler {
	return func(*Orchestrator, context.Context, string, string) Result {
		return success("%s", message)
	}
}

func registerGitHub(o *Orchestrator, ctx context.Context, name, token string) Result {
	if strings.TrimSpace(token) == "" {
		return failure("Set GITHUB_TOKEN environment variable")
	}

	client := o.NewClient(token)
	repo, err := client.CreateRepo(ctx, name, "", false)
	if err != nil {
		return failure("%s", formatError(err))
	}
	return success("Created: %s", repo.HTMLURL)
}

func manifestHandler(kind core.RegistryKind) handler {
	return func(o *Orchestrator, ctx context.Context, name, token string) Result {
		return registerWithManifest(o, ctx, kind, name, token)
	}
}

// registerWithManifest creates a placeholder repository and seeds it with the
// registry's manifest file. When the repository already exists it switches to
// the idempotent ensure path: the manifest is created only if absent, so the
// whole operation is safe to retry.
func registerWithManifest(o *Orchestrator, ctx context.Context, kind core.RegistryKind, name, token string) Result {
	if strings.TrimSpace(token) == "" {
		return failure("Set GITHUB_TOKEN environment variable")
	}

	m := manifestFor(kind)
	client := o.NewClient(token)

	repo, err := client.CreateRepo(ctx, name, fmt.Sprintf("Name reservation for %s", name), false)
	switch {
	case err == nil:
		owner := repoOwner(repo)
		if ferr := client.CreateFile(ctx, owner, repo.Name, m.Filename, "Add "+m.Filename, m.Content(name)); ferr != nil {
			// The repository was created; report its identity alongside the
			// manifest failure instead of discarding it.
			return success("%s - manifest step failed: %s", repo.HTMLURL, formatError(ferr))
		}
		return success("%s - run '%s' to claim the name", repo.HTMLURL, m.PublishCmd)

	case errors.Is(err, github.ErrRepoExists):
		return ensureManifest(ctx, client, m, name)

	default:
		return failure("%s", formatError(err))
	}
}

// ensureManifest is the fallback for a pre-existing placeholder: create the
// manifest only when it is missing, never overwrite.
func ensureManifest(ctx context.Context, client GitHubAPI, m Manifest, name string) Result {
	owner, err := client.Username(ctx)
	if err != nil {
		return failure("%s", formatError(err))
	}

	exists, err := client.HasFile(ctx, owner, name, m.Filename)
	if err != nil {
		return failure("%s", formatError(err))
	}
	if exists {
		return success("%s already present in repo", m.Filename)
	}

	if err := client.CreateFile(ctx, owner, name, m.Filename, "Add "+m.Filename, m.Content(name)); err != nil {
		return failure("%s", formatError(err))
	}
	return success("Added %s to existing repo", m.Filename)
}

func repoOwner(repo *github.Repo) string {
	if i := strings.Index(repo.FullName, "/"); i >= 0 {
		return repo.FullName[:i]
	}
	return repo.FullName
}

func formatError(err error) string {
	switch {
	case errors.Is(err, github.ErrAuthRequired):
		return "Authentication required - check your token"
	case errors.Is(err, github.ErrRepoExists):
		return "Repository already exists"
	case errors.Is(err, github.ErrInvalidName):
		return "Invalid repository name"
	case errors.Is(err, github.ErrRateLimited):
		return "Rate limited - try again later"
	default:
		var apiErr *github.APIError
		if errors.As(err, &apiErr) {
			return fmt.Sprintf("API error: %s", apiErr.Body)
		}
		return fmt.Sprintf("Network error: %v", err)
	}
}
