package registry

import (
	"context"

	"github.com/nameclaim/nameclaim/internal/core"
)

// DevDomainProber checks {name}.dev through the domain heuristic.
type DevDomainProber struct {
	Domains *DomainChecker
}

// Kind returns the registry kind.
func (p *DevDomainProber) Kind() core.RegistryKind {
	return core.KindDevDomain
}

// Check probes the .dev namespace for the given name. The reported name is
// the fully qualified domain, matching what was actually looked up.
func (p *DevDomainProber) Check(ctx context.Context, name string) core.Outcome {
	domain := name + ".dev"

	checker := p.Domains
	if checker == nil {
		checker = &DomainChecker{}
	}

	result := checker.Check(ctx, domain)
	return core.Outcome{
		Registry:  core.KindDevDomain,
		Name:      result.Domain,
		Available: result.Available,
		Err:       result.Err,
	}
}
