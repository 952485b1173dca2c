package exchange

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// BinanceClient talks to the Binance spot REST API.
type BinanceClient struct {
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string // overridable for tests
}

// NewBinanceClient creates a client with built-in request pacing. Binance
// allows 1200 request weight per minute; one request per 100ms with a small
// burst stays well inside that.
func NewBinanceClient(creds Credentials) *BinanceClient {
	return &BinanceClient{
		apiKey:     creds.APIKey,
		apiSecret:  creds.APISecret,
		httpClient: newHTTPClient(),
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
		baseURL:    "https://api.binance.com",
	}
}

// Name returns the registry identifier.
func (c *BinanceClient) Name() string { return "binance" }

// sign returns the hex HMAC-SHA256 signature of the query string.
func (c *BinanceClient) sign(query string) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

type binanceBalance struct {
	Asset  string `json:"asset"`
	Free   string `json:"free"`
	Locked string `json:"locked"`
}

// FetchBalance fetches the signed account endpoint and returns all asset
// balances in the order Binance reports them. Free and locked amounts are
// summed; filtering of zero balances is the caller's concern.
func (c *BinanceClient) FetchBalance(ctx context.Context) ([]Holding, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
	query.Set("recvWindow", "5000")
	encoded := query.Encode()
	encoded += "&signature=" + c.sign(encoded)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v3/account?"+encoded, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-MBX-APIKEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching account: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching account: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Balances []binanceBalance `json:"balances"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding account response: %w", err)
	}

	holdings := make([]Holding, 0, len(result.Balances))
	for _, b := range result.Balances {
		free, err := strconv.ParseFloat(b.Free, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing free balance for %s: %w", b.Asset, err)
		}
		locked, err := strconv.ParseFloat(b.Locked, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing locked balance for %s: %w", b.Asset, err)
		}
		holdings = append(holdings, Holding{Symbol: b.Asset, Amount: free + locked})
	}
	return holdings, nil
}

// FetchTicker returns the latest traded price for a pair like "BTC/USDT".
func (c *BinanceClient) FetchTicker(ctx context.Context, pair string) (Ticker, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Ticker{}, err
	}

	symbol := strings.ReplaceAll(pair, "/", "")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v3/ticker/price?symbol="+url.QueryEscape(symbol), nil)
	if err != nil {
		return Ticker{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Ticker{}, fmt.Errorf("fetching ticker %s: %w", pair, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Ticker{}, fmt.Errorf("fetching ticker %s: unexpected status %d", pair, resp.StatusCode)
	}

	var result struct {
		Price string `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Ticker{}, fmt.Errorf("decoding ticker response: %w", err)
	}

	last, err := strconv.ParseFloat(result.Price, 64)
	if err != nil {
		return Ticker{}, fmt.Errorf("parsing ticker price %q: %w", result.Price, err)
	}
	return Ticker{Last: last}, nil
}
