package exchange

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"
)

// CoinbaseClient talks to the Coinbase Advanced Trade REST API. Unlike the
// HMAC exchanges, Coinbase authenticates with a short-lived ES256 JWT signed
// by an EC private key, so the stored API secret is a PEM block. This is the
// client that depends on credential PEM normalization having produced a
// parseable key.
type CoinbaseClient struct {
	keyName    string
	privatePEM string
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string // overridable for tests
}

// NewCoinbaseClient creates a client with built-in request pacing.
func NewCoinbaseClient(creds Credentials) *CoinbaseClient {
	return &CoinbaseClient{
		keyName:    creds.APIKey,
		privatePEM: creds.APISecret,
		httpClient: newHTTPClient(),
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
		baseURL:    "https://api.coinbase.com",
	}
}

// Name returns the registry identifier.
func (c *CoinbaseClient) Name() string { return "coinbase" }

// bearerToken signs a request-scoped JWT valid for two minutes.
func (c *CoinbaseClient) bearerToken(method, path string) (string, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(c.privatePEM))
	if err != nil {
		return "", fmt.Errorf("parsing EC private key: %w", err)
	}

	host := strings.TrimPrefix(strings.TrimPrefix(c.baseURL, "https://"), "http://")
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"sub": c.keyName,
		"iss": "cdp",
		"nbf": now.Unix(),
		"exp": now.Add(2 * time.Minute).Unix(),
		"uri": fmt.Sprintf("%s %s%s", method, host, path),
	})
	token.Header["kid"] = c.keyName
	token.Header["nonce"] = randomNonce()

	return token.SignedString(key)
}

func randomNonce() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

type coinbaseAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type coinbaseAccount struct {
	Currency         string         `json:"currency"`
	AvailableBalance coinbaseAmount `json:"available_balance"`
	Hold             coinbaseAmount `json:"hold"`
}

// FetchBalance lists brokerage accounts and returns available plus held
// amounts per currency in the order Coinbase reports the accounts.
func (c *CoinbaseClient) FetchBalance(ctx context.Context) ([]Holding, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	const path = "/api/v3/brokerage/accounts"
	bearer, err := c.bearerToken(http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching accounts: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Accounts []coinbaseAccount `json:"accounts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding accounts response: %w", err)
	}

	holdings := make([]Holding, 0, len(result.Accounts))
	for _, acct := range result.Accounts {
		available, err := strconv.ParseFloat(acct.AvailableBalance.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing available balance for %s: %w", acct.Currency, err)
		}
		hold := 0.0
		if acct.Hold.Value != "" {
			hold, err = strconv.ParseFloat(acct.Hold.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing hold balance for %s: %w", acct.Currency, err)
			}
		}
		holdings = append(holdings, Holding{Symbol: acct.Currency, Amount: available + hold})
	}
	return holdings, nil
}

// FetchTicker returns the latest price for a pair like "BTC/USDT" using the
// public market data endpoint, which needs no authentication.
func (c *CoinbaseClient) FetchTicker(ctx context.Context, pair string) (Ticker, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Ticker{}, err
	}

	productID := strings.ReplaceAll(pair, "/", "-")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v3/brokerage/market/products/"+url.PathEscape(productID), nil)
	if err != nil {
		return Ticker{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Ticker{}, fmt.Errorf("fetching product %s: %w", pair, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Ticker{}, fmt.Errorf("fetching product %s: unexpected status %d", pair, resp.StatusCode)
	}

	var result struct {
		Price string `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Ticker{}, fmt.Errorf("decoding product response: %w", err)
	}

	last, err := strconv.ParseFloat(result.Price, 64)
	if err != nil {
		return Ticker{}, fmt.Errorf("parsing product price %q: %w", result.Price, err)
	}
	return Ticker{Last: last}, nil
}
