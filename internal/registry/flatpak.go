package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/nameclaim/nameclaim/internal/core"
)

const flathubAPIURL = "https://flathub.org/api/v1/apps"

// FlatpakProber checks Flathub.
//
// Flathub has no direct existence endpoint, so the probe searches the app
// index and treats a match on app id or exact display name as taken. When
// the search endpoint is unavailable it falls back to scanning the full
// apps list.
type FlatpakProber struct {
	Client  httpDoer
	BaseURL string
}

type flathubApp struct {
	ID           string `json:"id"`
	FlatpakAppID string `json:"flatpakAppId"`
	Name         string `json:"name"`
}

// Kind returns the registry kind.
func (p *FlatpakProber) Kind() core.RegistryKind {
	return core.KindFlatpak
}

// Check probes Flathub for the given app name.
func (p *FlatpakProber) Check(ctx context.Context, name string) core.Outcome {
	base := p.BaseURL
	if base == "" {
		base = flathubAPIURL
	}

	resp, err := getJSON(ctx, p.Client, base+"/search/"+url.PathEscape(name), nil)
	if err != nil {
		return unknown(core.KindFlatpak, name, err.Error())
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	// Older deployments have no search endpoint; scan the full list instead.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusMethodNotAllowed {
		return p.checkViaAppsList(ctx, base, name)
	}
	if resp.StatusCode != http.StatusOK {
		return unknown(core.KindFlatpak, name, "unexpected status: "+resp.Status)
	}

	var apps []flathubApp
	if err := json.NewDecoder(resp.Body).Decode(&apps); err != nil {
		return unknown(core.KindFlatpak, name, "parse error: "+err.Error())
	}

	return matchOutcome(name, apps)
}

func (p *FlatpakProber) checkViaAppsList(ctx context.Context, base, name string) core.Outcome {
	resp, err := getJSON(ctx, p.Client, base, nil)
	if err != nil {
		return unknown(core.KindFlatpak, name, err.Error())
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	if resp.StatusCode != http.StatusOK {
		return unknown(core.KindFlatpak, name, "unexpected status: "+resp.Status)
	}

	var apps []flathubApp
	if err := json.NewDecoder(resp.Body).Decode(&apps); err != nil {
		return unknown(core.KindFlatpak, name, "parse error: "+err.Error())
	}

	return matchOutcome(name, apps)
}

func matchOutcome(name string, apps []flathubApp) core.Outcome {
	lower := strings.ToLower(name)
	for _, app := range apps {
		id := app.FlatpakAppID
		if id == "" {
			id = app.ID
		}
		if strings.Contains(strings.ToLower(id), lower) || strings.EqualFold(app.Name, name) {
			return core.Outcome{Registry: core.KindFlatpak, Name: name, Available: core.Taken}
		}
	}
	return core.Outcome{Registry: core.KindFlatpak, Name: name, Available: core.Available}
}
