package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/nameclaim/nameclaim/internal/core"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // nolint:errcheck // headers already sent
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

type checkRequest struct {
	Name       string   `json:"name"`
	Registries []string `json:"registries,omitempty"`
}

type checkResponse struct {
	Name    string         `json:"name"`
	Results []core.Outcome `json:"results"`
}

// handleCheck probes one name. An omitted registries list means all kinds
// enabled, independent of any persisted selection; a present list must name
// known kinds only.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	sel, ok := s.resolveSelection(w, req.Registries)
	if !ok {
		return
	}

	results := s.checks.CheckAll(r.Context(), req.Name, sel)
	writeJSON(w, http.StatusOK, checkResponse{Name: req.Name, Results: results})
}

func (s *Server) resolveSelection(w http.ResponseWriter, registries []string) (core.Selection, bool) {
	if len(registries) == 0 {
		return core.DefaultSelection(), true
	}

	kinds := make([]core.RegistryKind, 0, len(registries))
	for _, name := range registries {
		kind, ok := core.ParseKind(name)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown registry: "+name)
			return core.Selection{}, false
		}
		kinds = append(kinds, kind)
	}
	return core.SelectionFor(kinds...), true
}

type domainRequest struct {
	Name string   `json:"name"`
	TLDs []string `json:"tlds,omitempty"`
}

type domainResponse struct {
	Name    string               `json:"name"`
	Results []core.DomainOutcome `json:"results"`
}

// defaultTLDs is the sweep used when the request names none.
var defaultTLDs = []string{"com", "dev", "io", "app", "net", "org"}

func (s *Server) handleDomain(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	tlds := req.TLDs
	if len(tlds) == 0 {
		tlds = defaultTLDs
	}

	results := s.domains.CheckTLDs(r.Context(), req.Name, tlds)
	writeJSON(w, http.StatusOK, domainResponse{Name: req.Name, Results: results})
}

type fullDomainRequest struct {
	Domains []string `json:"domains"`
}

// handleFullDomains checks fully qualified domains as given, one verdict per
// input domain.
func (s *Server) handleFullDomains(w http.ResponseWriter, r *http.Request) {
	var req fullDomainRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Domains) == 0 {
		writeError(w, http.StatusBadRequest, "domains is required")
		return
	}

	results := s.domains.CheckDomains(r.Context(), req.Domains)
	writeJSON(w, http.StatusOK, domainResponse{Name: strings.Join(req.Domains, ", "), Results: results})
}

type configResponse struct {
	Registries core.Selection `json:"registries"`
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load config: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, configResponse{Registries: cfg.Registries})
}

// handleSetConfig replaces the persisted selection. Kinds absent from the
// body stay enabled, matching the default-true config schema, so a partial
// body can only disable what it names.
func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	req := configResponse{Registries: core.DefaultSelection()}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.store.SaveSelection(req.Registries); err != nil {
		writeError(w, http.StatusInternalServerError, "save config: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, configResponse{Registries: req.Registries})
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Version:   s.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

type versionResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, versionResponse{
		Name:      "nameclaim",
		Version:   s.version,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	})
}
