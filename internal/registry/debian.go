package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/nameclaim/nameclaim/internal/core"
)

const debianAPIURL = "https://sources.debian.org/api/src"

// DebianProber checks the Debian source archive.
//
// GET https://sources.debian.org/api/src/{name}/
//   - 404: package not found (available)
//   - 200 with an "error" field or no versions: not packaged (available)
//   - 200 with versions: package exists (taken)
type DebianProber struct {
	Client  httpDoer
	BaseURL string
}

// Kind returns the registry kind.
func (p *DebianProber) Kind() core.RegistryKind {
	return core.KindDebian
}

// Check probes Debian for the given source package name.
func (p *DebianProber) Check(ctx context.Context, name string) core.Outcome {
	base := p.BaseURL
	if base == "" {
		base = debianAPIURL
	}

	resp, err := getJSON(ctx, p.Client, base+"/"+url.PathEscape(name)+"/", nil)
	if err != nil {
		return unknown(core.KindDebian, name, err.Error())
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	if resp.StatusCode == http.StatusNotFound {
		return core.Outcome{Registry: core.KindDebian, Name: name, Available: core.Available}
	}
	if resp.StatusCode != http.StatusOK {
		return unknown(core.KindDebian, name, "unexpected status: "+resp.Status)
	}

	var payload struct {
		Error    *json.RawMessage  `json:"error"`
		Versions []json.RawMessage `json:"versions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return unknown(core.KindDebian, name, "parse error: "+err.Error())
	}

	// sources.debian.org reports unknown packages as 200 with an error body.
	if payload.Error != nil || len(payload.Versions) == 0 {
		return core.Outcome{Registry: core.KindDebian, Name: name, Available: core.Available}
	}
	return core.Outcome{Registry: core.KindDebian, Name: name, Available: core.Taken}
}
