package registry

import (
	"context"
	"net/url"

	"github.com/nameclaim/nameclaim/internal/core"
)

const brewAPIURL = "https://formulae.brew.sh/api/formula"

// BrewProber checks Homebrew core formulae.
//
// GET https://formulae.brew.sh/api/formula/{name}.json
//   - 404: formula not found (available)
//   - 200: formula exists (taken)
type BrewProber struct {
	Client  httpDoer
	BaseURL string
}

// Kind returns the registry kind.
func (p *BrewProber) Kind() core.RegistryKind {
	return core.KindBrew
}

// Check probes Homebrew for the given formula name.
func (p *BrewProber) Check(ctx context.Context, name string) core.Outcome {
	base := p.BaseURL
	if base == "" {
		base = brewAPIURL
	}

	resp, err := getJSON(ctx, p.Client, base+"/"+url.PathEscape(name)+".json", nil)
	if err != nil {
		return unknown(core.KindBrew, name, err.Error())
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	return statusOutcome(core.KindBrew, name, resp.StatusCode)
}
