package registry

import (
	"context"
	"net/url"

	"github.com/nameclaim/nameclaim/internal/core"
)

const pypiSimpleURL = "https://pypi.org/simple"

// PyPIProber checks PyPI through the simple index.
//
// GET https://pypi.org/simple/{name}/
//   - 404: package not found (available)
//   - 200: package exists (taken)
//
// The simple index correctly 404s for names that are registered but have no
// releases, which the JSON API does not.
type PyPIProber struct {
	Client  httpDoer
	BaseURL string
}

// Kind returns the registry kind.
func (p *PyPIProber) Kind() core.RegistryKind {
	return core.KindPyPI
}

// Check probes PyPI for the given package name.
func (p *PyPIProber) Check(ctx context.Context, name string) core.Outcome {
	base := p.BaseURL
	if base == "" {
		base = pypiSimpleURL
	}

	resp, err := getJSON(ctx, p.Client, base+"/"+url.PathEscape(name)+"/", nil)
	if err != nil {
		return unknown(core.KindPyPI, name, err.Error())
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	return statusOutcome(core.KindPyPI, name, resp.StatusCode)
}
