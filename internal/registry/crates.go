package registry

import (
	"context"
	"net/url"

	"github.com/nameclaim/nameclaim/internal/core"
)

const cratesAPIURL = "https://crates.io/api/v1/crates"

// CratesProber checks crates.io.
//
// GET https://crates.io/api/v1/crates/{name}
//   - 404: crate not found (available)
//   - 200: crate exists (taken)
//
// crates.io rejects requests without a User-Agent header.
type CratesProber struct {
	Client  httpDoer
	BaseURL string
}

// Kind returns the registry kind.
func (p *CratesProber) Kind() core.RegistryKind {
	return core.KindCrates
}

// Check probes crates.io for the given crate name.
func (p *CratesProber) Check(ctx context.Context, name string) core.Outcome {
	base := p.BaseURL
	if base == "" {
		base = cratesAPIURL
	}

	resp, err := getJSON(ctx, p.Client, base+"/"+url.PathEscape(name), nil)
	if err != nil {
		return unknown(core.KindCrates, name, err.Error())
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	return statusOutcome(core.KindCrates, name, resp.StatusCode)
}
