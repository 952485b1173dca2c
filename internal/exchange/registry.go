package exchange

import (
	"sort"
	"strings"
)

// Factory builds a client configured with decrypted credentials.
type Factory func(creds Credentials) Client

// Registry maps lowercased exchange identifiers to client factories. It is
// populated once at startup and read-only afterwards; lookups for unknown
// identifiers return ok=false rather than an error, and callers skip those
// credentials silently.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry with all supported exchanges registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("binance", func(creds Credentials) Client { return NewBinanceClient(creds) })
	r.Register("kraken", func(creds Credentials) Client { return NewKrakenClient(creds) })
	r.Register("coinbase", func(creds Credentials) Client { return NewCoinbaseClient(creds) })
	return r
}

// Register adds a factory under the given identifier.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[strings.ToLower(name)] = factory
}

// Build constructs a client for the identifier. The second return value is
// false when the exchange is not supported.
func (r *Registry) Build(name string, creds Credentials) (Client, bool) {
	factory, ok := r.factories[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return factory(creds), true
}

// Supported returns the sorted list of registered identifiers.
func (r *Registry) Supported() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
