// Package registry implements availability probes for external naming
// registries and the aggregation across them.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nameclaim/nameclaim/internal/core"
)

// Prober checks one registry kind. Check never fails: every transport or
// protocol problem resolves to an Unknown outcome carrying the error text.
type Prober interface {
	Kind() core.RegistryKind
	Check(ctx context.Context, name string) core.Outcome
}

// Set holds one configured prober per registry kind.
type Set struct {
	probers map[core.RegistryKind]Prober
}

// Options configures a probe set.
type Options struct {
	// Client is used by all HTTP probes. Defaults to a 10 s timeout client.
	Client *http.Client

	// GitHubToken and GitHubOwner configure the GitHub repo probe. Without a
	// token the probe reports Unknown instead of hitting the API.
	GitHubToken string
	GitHubOwner string
}

// NewSet builds the default probe set.
func NewSet(opts Options) *Set {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	domains := &DomainChecker{}

	s := &Set{probers: make(map[core.RegistryKind]Prober)}
	s.Register(&NPMProber{Client: client})
	s.Register(&CratesProber{Client: client})
	s.Register(&PyPIProber{Client: client})
	s.Register(&BrewProber{Client: client})
	s.Register(&FlatpakProber{Client: client})
	s.Register(&DebianProber{Client: client})
	s.Register(&DevDomainProber{Domains: domains})
	s.Register(&GitHubProber{Client: client, Token: opts.GitHubToken, Owner: opts.GitHubOwner})
	return s
}

// Register installs a prober, replacing any existing one for its kind.
func (s *Set) Register(p Prober) {
	s.probers[p.Kind()] = p
}

// Prober returns the prober for a kind, or nil if none is registered.
func (s *Set) Prober(kind core.RegistryKind) Prober {
	return s.probers[kind]
}

func unknown(kind core.RegistryKind, name, errText string) core.Outcome {
	return core.Outcome{Registry: kind, Name: name, Available: core.Unknown, Err: errText}
}

// statusOutcome maps the common lookup heuristic: 404 means the entity does
// not exist (name available), 200 means it does (name taken), anything else
// is Unknown.
func statusOutcome(kind core.RegistryKind, name string, statusCode int) core.Outcome {
	switch statusCode {
	case http.StatusNotFound:
		return core.Outcome{Registry: kind, Name: name, Available: core.Available}
	case http.StatusOK:
		return core.Outcome{Registry: kind, Name: name, Available: core.Taken}
	default:
		return unknown(kind, name, fmt.Sprintf("unexpected status: %d", statusCode))
	}
}
