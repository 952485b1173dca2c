// Package exchange provides authenticated clients for cryptocurrency
// exchanges behind a single balance-and-ticker interface, plus the registry
// that maps exchange identifiers to client factories.
package exchange

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Credentials holds one decrypted API key pair. Instances are built for the
// duration of a single sync pass and must not be retained or cached.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Holding is one asset balance as reported by an exchange. Slices of
// Holding keep the exchange's own ordering; a map would lose it.
type Holding struct {
	Symbol string
	Amount float64
}

// Ticker is the latest traded price for a pair.
type Ticker struct {
	Last float64
}

// Client is the narrow surface the portfolio reconciler needs from an
// exchange. Both calls are fallible network operations and must respect
// the supplied context's deadline.
type Client interface {
	Name() string
	FetchBalance(ctx context.Context) ([]Holding, error)
	FetchTicker(ctx context.Context, pair string) (Ticker, error)
}

// FetchError tags a balance-fetch failure with its source exchange. The
// reconciler logs it and skips the exchange; it never aborts the sync.
type FetchError struct {
	Exchange string
	Err      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching balance from %s: %v", e.Exchange, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }

// requestTimeout bounds every exchange HTTP call in addition to the
// caller's context deadline. A hung fetch must never block other syncs.
const requestTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
