package registry

import (
	"context"
	"net/url"

	"github.com/nameclaim/nameclaim/internal/core"
)

const npmRegistryURL = "https://registry.npmjs.org"

// NPMProber checks the npm registry.
//
// GET https://registry.npmjs.org/{package}
//   - 404: package not found (available)
//   - 200: package exists (taken)
type NPMProber struct {
	Client  httpDoer
	BaseURL string
}

// Kind returns the registry kind.
func (p *NPMProber) Kind() core.RegistryKind {
	return core.KindNPM
}

// Check probes npm for the given package name.
func (p *NPMProber) Check(ctx context.Context, name string) core.Outcome {
	base := p.BaseURL
	if base == "" {
		base = npmRegistryURL
	}

	resp, err := getJSON(ctx, p.Client, base+"/"+url.PathEscape(name), nil)
	if err != nil {
		return unknown(core.KindNPM, name, err.Error())
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	return statusOutcome(core.KindNPM, name, resp.StatusCode)
}
