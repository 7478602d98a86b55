// Package core defines the shared types for availability checks.
package core

import (
	"encoding/json"
	"fmt"
)

// RegistryKind identifies an external naming registry.
type RegistryKind string

const (
	KindNPM       RegistryKind = "npm"
	KindCrates    RegistryKind = "crates"
	KindPyPI      RegistryKind = "pypi"
	KindBrew      RegistryKind = "brew"
	KindFlatpak   RegistryKind = "flatpak"
	KindDebian    RegistryKind = "debian"
	KindDevDomain RegistryKind = "dev_domain"
	KindGitHub    RegistryKind = "github"
)

// Kinds lists every registry kind in declaration order. Aggregated results
// are always emitted in this order, regardless of completion order.
var Kinds = []RegistryKind{
	KindNPM,
	KindCrates,
	KindPyPI,
	KindBrew,
	KindFlatpak,
	KindDebian,
	KindDevDomain,
	KindGitHub,
}

// ParseKind maps a wire identifier to its registry kind.
func ParseKind(s string) (RegistryKind, bool) {
	for _, kind := range Kinds {
		if string(kind) == s {
			return kind, true
		}
	}
	return "", false
}

// Label returns the human-facing name of the registry.
func (k RegistryKind) Label() string {
	switch k {
	case KindNPM:
		return "npm"
	case KindCrates:
		return "crates.io"
	case KindPyPI:
		return "PyPI"
	case KindBrew:
		return "Homebrew"
	case KindFlatpak:
		return "Flatpak"
	case KindDebian:
		return "Debian"
	case KindDevDomain:
		return ".dev"
	case KindGitHub:
		return "GitHub"
	default:
		return string(k)
	}
}

// Availability is the tri-state verdict of a probe. Unknown means the probe
// could not determine availability; it is never conflated with Taken.
type Availability int

const (
	Unknown Availability = iota
	Available
	Taken
)

// MarshalJSON encodes Available as true, Taken as false and Unknown as null.
func (a Availability) MarshalJSON() ([]byte, error) {
	switch a {
	case Available:
		return []byte("true"), nil
	case Taken:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (a *Availability) UnmarshalJSON(data []byte) error {
	var value *bool
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("availability must be true, false or null: %w", err)
	}
	switch {
	case value == nil:
		*a = Unknown
	case *value:
		*a = Available
	default:
		*a = Taken
	}
	return nil
}

// String returns the display form used by the CLI and TUI.
func (a Availability) String() string {
	switch a {
	case Available:
		return "Available"
	case Taken:
		return "Taken"
	default:
		return "Unknown"
	}
}

// Outcome is the result of one probe invocation. Immutable once produced.
type Outcome struct {
	Registry  RegistryKind
	Name      string
	Available Availability
	Err       string
}

type wireOutcome struct {
	Registry  RegistryKind `json:"registry"`
	Name      string       `json:"name"`
	Available Availability `json:"available"`
	Err       *string      `json:"error"`
}

// MarshalJSON emits the wire schema consumed by the CLI and the HTTP API:
// {"registry","name","available":true|false|null,"error":string|null}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	w := wireOutcome{Registry: o.Registry, Name: o.Name, Available: o.Available}
	if o.Err != "" {
		w.Err = &o.Err
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire schema.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var w wireOutcome
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	o.Registry = w.Registry
	o.Name = w.Name
	o.Available = w.Available
	if w.Err != nil {
		o.Err = *w.Err
	} else {
		o.Err = ""
	}
	return nil
}

// DomainOutcome is the result of checking one fully qualified domain.
type DomainOutcome struct {
	Domain    string
	Available Availability
	Err       string
}

type wireDomainOutcome struct {
	Domain    string       `json:"domain"`
	Available Availability `json:"available"`
	Err       *string      `json:"error"`
}

// MarshalJSON emits {"domain","available","error"} with null for no error.
func (o DomainOutcome) MarshalJSON() ([]byte, error) {
	w := wireDomainOutcome{Domain: o.Domain, Available: o.Available}
	if o.Err != "" {
		w.Err = &o.Err
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire schema.
func (o *DomainOutcome) UnmarshalJSON(data []byte) error {
	var w wireDomainOutcome
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	o.Domain = w.Domain
	o.Available = w.Available
	if w.Err != nil {
		o.Err = *w.Err
	} else {
		o.Err = ""
	}
	return nil
}
