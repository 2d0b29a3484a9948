package capability

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrNotAvailable is returned by a Provider that has nothing to report on
// this system. The next provider for the role is tried, then the
// compiled-in default.
var ErrNotAvailable = errors.New("capability: provider not available")

// Provider reports the capabilities of one hardware role.
type Provider interface {
	// Name identifies the provider within its role.
	Name() string

	// Role is the hardware role the provider describes.
	Role() Role

	// Capabilities returns the declared set.
	Capabilities(ctx context.Context) (Set, error)
}

// Static is a Provider returning a fixed set.
type Static struct {
	ProviderName string
	ProviderRole Role
	Caps         Set
}

// Name implements Provider.
func (s Static) Name() string { return s.ProviderName }

// Role implements Provider.
func (s Static) Role() Role { return s.ProviderRole }

// Capabilities implements Provider.
func (s Static) Capabilities(context.Context) (Set, error) { return s.Caps, nil }

// registry holds registered providers in registration order per role.
var (
	registryMu sync.RWMutex
	providers  [roleCount][]Provider
)

// Register adds a provider for its role. A provider with the same name
// and role is replaced in place.
//
// Providers must be registered before Initialize runs; the snapshot is
// not rebuilt afterwards.
func Register(p Provider) {
	r := p.Role()
	if r >= roleCount {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	for i, existing := range providers[r] {
		if existing.Name() == p.Name() {
			providers[r][i] = p
			return
		}
	}
	providers[r] = append(providers[r], p)
}

// Unregister removes the named provider of role r.
// This is useful for testing.
func Unregister(r Role, name string) {
	if r >= roleCount {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	list := providers[r]
	for i, p := range list {
		if p.Name() == name {
			providers[r] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Providers returns the providers registered for role r in priority order.
func Providers(r Role) []Provider {
	if r >= roleCount {
		return nil
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Provider, len(providers[r]))
	copy(out, providers[r])
	return out
}

// Probe builds a snapshot from the registered providers. For each role
// the first provider that succeeds wins; roles without one keep the
// default. Probe never fails.
func Probe(ctx context.Context) Snapshot {
	snap := DefaultSnapshot()
	for _, r := range Roles() {
		for _, p := range Providers(r) {
			caps, err := p.Capabilities(ctx)
			if err != nil {
				if !errors.Is(err, ErrNotAvailable) {
					slogger().Warn("capability provider failed",
						"role", r.String(), "provider", p.Name(), "err", err)
				}
				continue
			}
			slogger().Debug("capability provider selected",
				"role", r.String(), "provider", p.Name(), "caps", caps.String())
			snap = snap.With(r, caps)
			break
		}
	}
	return snap
}
