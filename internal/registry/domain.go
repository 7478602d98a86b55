package registry

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/openrdap/rdap"
	"golang.org/x/sync/errgroup"

	"github.com/nameclaim/nameclaim/internal/core"
)

// Resolver is the slice of net.Resolver the domain checks need.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// DomainChecker checks whether a fully qualified domain appears registered.
//
// DNS presence is a heuristic, not an authoritative WHOIS answer: a domain
// with records is definitely taken, a domain without records might still be
// registered. When DNS comes back NXDOMAIN and an RDAP client is configured,
// the verdict is confirmed against the TLD's RDAP service.
type DomainChecker struct {
	Resolver Resolver
	RDAP     *rdap.Client
	Timeout  time.Duration
}

// Check resolves the domain and returns the availability heuristic.
func (d *DomainChecker) Check(ctx context.Context, domain string) core.DomainOutcome {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	resolver := d.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	_, err := resolver.LookupIPAddr(ctx, domain)
	if err == nil {
		return core.DomainOutcome{Domain: domain, Available: core.Taken}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return d.confirmNXDomain(ctx, domain)
	}

	return core.DomainOutcome{Domain: domain, Available: core.Unknown, Err: err.Error()}
}

// confirmNXDomain upgrades the DNS heuristic with an RDAP lookup when one is
// configured. An RDAP failure keeps the DNS verdict rather than degrading to
// Unknown.
func (d *DomainChecker) confirmNXDomain(ctx context.Context, domain string) core.DomainOutcome {
	if d.RDAP == nil {
		return core.DomainOutcome{Domain: domain, Available: core.Available}
	}

	req := rdap.NewDomainRequest(domain).WithContext(ctx)
	if d.Timeout > 0 {
		req.Timeout = d.Timeout
	}

	_, err := d.RDAP.Do(req)
	switch {
	case err == nil:
		// Registered but unconfigured; DNS alone would have missed it.
		return core.DomainOutcome{Domain: domain, Available: core.Taken}
	case isRDAPNotFound(err):
		return core.DomainOutcome{Domain: domain, Available: core.Available}
	default:
		return core.DomainOutcome{Domain: domain, Available: core.Available}
	}
}

// CheckTLDs sweeps one base name across the given TLDs concurrently. Output
// order follows the input order of tlds regardless of completion order.
func (d *DomainChecker) CheckTLDs(ctx context.Context, name string, tlds []string) []core.DomainOutcome {
	domains := make([]string, len(tlds))
	for i, tld := range tlds {
		domains[i] = name + "." + strings.TrimPrefix(strings.TrimSpace(tld), ".")
	}
	return d.CheckDomains(ctx, domains)
}

// CheckDomains checks fully qualified domains concurrently. Output order
// follows the input order regardless of completion order.
func (d *DomainChecker) CheckDomains(ctx context.Context, domains []string) []core.DomainOutcome {
	results := make([]core.DomainOutcome, len(domains))

	var g errgroup.Group
	for i, domain := range domains {
		g.Go(func() error {
			results[i] = d.Check(ctx, domain)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// CheckName dispatches on the input's shape. A bare label is swept across
// the TLD list. An input that already contains a dot is checked as the full
// domain it names, first, followed by its base label under each TLD that
// does not reproduce the input.
func (d *DomainChecker) CheckName(ctx context.Context, name string, tlds []string) []core.DomainOutcome {
	if !strings.Contains(name, ".") {
		return d.CheckTLDs(ctx, name, tlds)
	}

	base := name[:strings.LastIndex(name, ".")]
	domains := []string{name}
	for _, tld := range tlds {
		domain := base + "." + strings.TrimPrefix(strings.TrimSpace(tld), ".")
		if domain != name {
			domains = append(domains, domain)
		}
	}
	return d.CheckDomains(ctx, domains)
}

func isRDAPNotFound(err error) bool {
	var clientErr *rdap.ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == rdap.ObjectDoesNotExist
	}
	return false
}
