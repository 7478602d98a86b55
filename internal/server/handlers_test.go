package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nameclaim/nameclaim/internal/config"
	"github.com/nameclaim/nameclaim/internal/core"
)

type stubChecks struct {
	gotName string
	gotSel  core.Selection
	results []core.Outcome
}

func (s *stubChecks) CheckAll(ctx context.Context, name string, sel core.Selection) []core.Outcome {
	s.gotName = name
	s.gotSel = sel
	return s.results
}

type stubDomains struct {
	gotTLDs    []string
	gotDomains []string
}

func (s *stubDomains) CheckTLDs(ctx context.Context, name string, tlds []string) []core.DomainOutcome {
	s.gotTLDs = tlds
	out := make([]core.DomainOutcome, len(tlds))
	for i, tld := range tlds {
		out[i] = core.DomainOutcome{Domain: name + "." + tld, Available: core.Available}
	}
	return out
}

func (s *stubDomains) CheckDomains(ctx context.Context, domains []string) []core.DomainOutcome {
	s.gotDomains = domains
	out := make([]core.DomainOutcome, len(domains))
	for i, domain := range domains {
		out[i] = core.DomainOutcome{Domain: domain, Available: core.Available}
	}
	return out
}

type stubStore struct {
	cfg     config.Config
	loadErr error
	saved   *core.Selection
}

func (s *stubStore) Load() (*config.Config, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	cfg := s.cfg
	return &cfg, nil
}

func (s *stubStore) SaveSelection(sel core.Selection) error {
	s.saved = &sel
	return nil
}

func newTestServer(checks Aggregator, domains TLDChecker, store SelectionStore) *Server {
	return New(config.ServerConfig{}, checks, domains, store, "test", zap.NewNop())
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCheckEndpoint(t *testing.T) {
	checks := &stubChecks{results: []core.Outcome{
		{Registry: core.KindNPM, Name: "mypkg", Available: core.Available},
		{Registry: core.KindGitHub, Name: "o/mypkg", Available: core.Unknown, Err: "github token not set (set GITHUB_TOKEN)"},
	}}
	store := &stubStore{cfg: config.Config{Registries: core.DefaultSelection()}}
	srv := newTestServer(checks, &stubDomains{}, store)

	rec := postJSON(t, srv.Handler(), "/api/check", `{"name":"mypkg"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "mypkg", checks.gotName)
	require.Equal(t, core.DefaultSelection(), checks.gotSel)

	var body struct {
		Name    string            `json:"name"`
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "mypkg", body.Name)
	require.Len(t, body.Results, 2)
	require.JSONEq(t, `{"registry":"npm","name":"mypkg","available":true,"error":null}`, string(body.Results[0]))
	require.JSONEq(t, `{"registry":"github","name":"o/mypkg","available":null,"error":"github token not set (set GITHUB_TOKEN)"}`, string(body.Results[1]))
}

func TestCheckEndpointOmittedRegistriesIgnoresSavedSelection(t *testing.T) {
	// A persisted selection with disabled kinds must not narrow the API
	// contract: an omitted list means every registry.
	narrowed := core.SelectionFor(core.KindNPM)
	checks := &stubChecks{}
	store := &stubStore{cfg: config.Config{Registries: narrowed}}
	srv := newTestServer(checks, &stubDomains{}, store)

	rec := postJSON(t, srv.Handler(), "/api/check", `{"name":"mypkg"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, core.DefaultSelection(), checks.gotSel)
	require.Equal(t, len(core.Kinds), checks.gotSel.EnabledCount())
}

func TestCheckEndpointRegistryOverride(t *testing.T) {
	checks := &stubChecks{}
	srv := newTestServer(checks, &stubDomains{}, &stubStore{})

	rec := postJSON(t, srv.Handler(), "/api/check", `{"name":"x","registries":["npm","pypi"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, core.SelectionFor(core.KindNPM, core.KindPyPI), checks.gotSel)
}

func TestCheckEndpointRejectsUnknownRegistry(t *testing.T) {
	srv := newTestServer(&stubChecks{}, &stubDomains{}, &stubStore{})

	rec := postJSON(t, srv.Handler(), "/api/check", `{"name":"x","registries":["maven"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "unknown registry")
}

func TestCheckEndpointRequiresName(t *testing.T) {
	srv := newTestServer(&stubChecks{}, &stubDomains{}, &stubStore{})

	rec := postJSON(t, srv.Handler(), "/api/check", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, srv.Handler(), "/api/check", `{"name":"x","bogus":true}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDomainEndpointDefaultsTLDs(t *testing.T) {
	domains := &stubDomains{}
	srv := newTestServer(&stubChecks{}, domains, &stubStore{})

	rec := postJSON(t, srv.Handler(), "/api/domain", `{"name":"myname"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, defaultTLDs, domains.gotTLDs)

	var body struct {
		Name    string               `json:"name"`
		Results []core.DomainOutcome `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "myname", body.Name)
	require.Len(t, body.Results, len(defaultTLDs))
	require.Equal(t, "myname.com", body.Results[0].Domain)
}

func TestDomainEndpointExplicitTLDs(t *testing.T) {
	domains := &stubDomains{}
	srv := newTestServer(&stubChecks{}, domains, &stubStore{})

	rec := postJSON(t, srv.Handler(), "/api/domain", `{"name":"myname","tlds":["dev"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"dev"}, domains.gotTLDs)
}

func TestFullDomainEndpoint(t *testing.T) {
	domains := &stubDomains{}
	srv := newTestServer(&stubChecks{}, domains, &stubStore{})

	rec := postJSON(t, srv.Handler(), "/api/domain/full", `{"domains":["banana.wiki","banana.dev"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"banana.wiki", "banana.dev"}, domains.gotDomains)

	var body struct {
		Name    string               `json:"name"`
		Results []core.DomainOutcome `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "banana.wiki, banana.dev", body.Name)
	require.Len(t, body.Results, 2)
	require.Equal(t, "banana.wiki", body.Results[0].Domain)
}

func TestFullDomainEndpointRequiresDomains(t *testing.T) {
	srv := newTestServer(&stubChecks{}, &stubDomains{}, &stubStore{})

	rec := postJSON(t, srv.Handler(), "/api/domain/full", `{"domains":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfigEndpoints(t *testing.T) {
	store := &stubStore{cfg: config.Config{Registries: core.DefaultSelection()}}
	srv := newTestServer(&stubChecks{}, &stubDomains{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Registries core.Selection `json:"registries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, core.DefaultSelection(), got.Registries)

	rec = postJSON(t, srv.Handler(), "/api/config", `{"registries":{"npm":true,"crates":false,"pypi":true,"brew":false,"flatpak":false,"debian":false,"dev_domain":true,"github":true}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.saved)
	require.True(t, store.saved.Enabled(core.KindNPM))
	require.False(t, store.saved.Enabled(core.KindCrates))
}

func TestSetConfigPartialBodyKeepsUnlistedKindsEnabled(t *testing.T) {
	store := &stubStore{}
	srv := newTestServer(&stubChecks{}, &stubDomains{}, store)

	rec := postJSON(t, srv.Handler(), "/api/config", `{"registries":{"npm":false}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.saved)
	require.False(t, store.saved.Enabled(core.KindNPM))
	require.Equal(t, len(core.Kinds)-1, store.saved.EnabledCount())
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(&stubChecks{}, &stubDomains{}, &stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"healthy"`)

	req = httptest.NewRequest(http.MethodGet, "/version", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"version":"test"`)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(&stubChecks{}, &stubDomains{}, &stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, "caller-supplied", rec.Header().Get("X-Request-ID"))
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	srv := newTestServer(&stubChecks{}, &stubDomains{}, &stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "resource not found")
}
