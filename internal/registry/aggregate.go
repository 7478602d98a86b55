package registry

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nameclaim/nameclaim/internal/core"
)

// CheckAll fans out one probe per enabled registry kind and waits for every
// one of them. Disabled kinds are omitted entirely. The returned slice is
// ordered by core.Kinds declaration order, never by completion order, so two
// runs of the same check are diffable regardless of network timing.
//
// CheckAll is pure with respect to any session state: it takes immutable
// inputs and returns a fresh slice, so it is safe to call from a background
// goroutine without locking.
func (s *Set) CheckAll(ctx context.Context, name string, sel core.Selection) []core.Outcome {
	enabled := make([]core.RegistryKind, 0, len(core.Kinds))
	for _, kind := range core.Kinds {
		if sel.Enabled(kind) {
			enabled = append(enabled, kind)
		}
	}

	results := make([]core.Outcome, len(enabled))

	var g errgroup.Group
	for i, kind := range enabled {
		g.Go(func() error {
			prober := s.probers[kind]
			if prober == nil {
				results[i] = unknown(kind, name, "no prober configured")
				return nil
			}
			// Probes never fail; every error is folded into the outcome.
			results[i] = prober.Check(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
