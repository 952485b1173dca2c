package exchange

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// KrakenClient talks to the Kraken REST API.
type KrakenClient struct {
	apiKey     string
	apiSecret  string // base64-encoded signing key
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string // overridable for tests
}

// NewKrakenClient creates a client with built-in request pacing. Kraken's
// private endpoints decay one call counter point per three seconds; one
// request per second with a small burst is conservative.
func NewKrakenClient(creds Credentials) *KrakenClient {
	return &KrakenClient{
		apiKey:     creds.APIKey,
		apiSecret:  creds.APISecret,
		httpClient: newHTTPClient(),
		limiter:    rate.NewLimiter(rate.Every(time.Second), 3),
		baseURL:    "https://api.kraken.com",
	}
}

// Name returns the registry identifier.
func (c *KrakenClient) Name() string { return "kraken" }

// sign produces the API-Sign header: HMAC-SHA512 over path plus
// SHA-256(nonce || postdata), keyed with the base64-decoded secret.
func (c *KrakenClient) sign(path, nonce, postData string) (string, error) {
	secret, err := base64.StdEncoding.DecodeString(c.apiSecret)
	if err != nil {
		return "", fmt.Errorf("decoding secret: %w", err)
	}

	digest := sha256.Sum256([]byte(nonce + postData))
	mac := hmac.New(sha512.New, secret)
	mac.Write([]byte(path))
	mac.Write(digest[:])
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// krakenAssetNames maps Kraken's legacy asset codes to common symbols.
var krakenAssetNames = map[string]string{
	"XXBT": "BTC",
	"XBT":  "BTC",
	"XETH": "ETH",
	"XXRP": "XRP",
	"XLTC": "LTC",
	"XXLM": "XLM",
	"ZUSD": "USD",
	"ZEUR": "EUR",
	"ZGBP": "GBP",
}

func normalizeKrakenAsset(code string) string {
	if name, ok := krakenAssetNames[code]; ok {
		return name
	}
	return code
}

// FetchBalance calls the private Balance endpoint. Kraken returns a JSON
// object keyed by asset code; the decoder walks tokens instead of
// unmarshaling into a map so the exchange's own ordering survives.
func (c *KrakenClient) FetchBalance(ctx context.Context) ([]Holding, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	const path = "/0/private/Balance"
	nonce := strconv.FormatInt(time.Now().UnixMilli(), 10)
	form := url.Values{}
	form.Set("nonce", nonce)
	postData := form.Encode()

	signature, err := c.sign(path, nonce, postData)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(postData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("API-Sign", signature)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching balance: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching balance: unexpected status %d", resp.StatusCode)
	}

	var envelope struct {
		Error  []string        `json:"error"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding balance response: %w", err)
	}
	if len(envelope.Error) > 0 {
		return nil, fmt.Errorf("kraken error: %s", strings.Join(envelope.Error, ", "))
	}

	holdings, err := decodeOrderedBalances(envelope.Result)
	if err != nil {
		return nil, fmt.Errorf("decoding balances: %w", err)
	}
	for i := range holdings {
		holdings[i].Symbol = normalizeKrakenAsset(holdings[i].Symbol)
	}
	return holdings, nil
}

// decodeOrderedBalances parses a flat {"ASSET": "amount"} object preserving
// key order, which encoding/json's map decoding would destroy.
func decodeOrderedBalances(raw json.RawMessage) ([]Holding, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var holdings []Holding
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		asset, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}

		var amountStr string
		if err := dec.Decode(&amountStr); err != nil {
			return nil, fmt.Errorf("decoding amount for %s: %w", asset, err)
		}
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing amount for %s: %w", asset, err)
		}
		holdings = append(holdings, Holding{Symbol: asset, Amount: amount})
	}
	return holdings, nil
}

// FetchTicker returns the latest traded price for a pair like "ETH/USDT".
func (c *KrakenClient) FetchTicker(ctx context.Context, pair string) (Ticker, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Ticker{}, err
	}

	krakenPair := strings.ReplaceAll(pair, "/", "")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/0/public/Ticker?pair="+url.QueryEscape(krakenPair), nil)
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

	var envelope struct {
		Error  []string `json:"error"`
		Result map[string]struct {
			Last []string `json:"c"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Ticker{}, fmt.Errorf("decoding ticker response: %w", err)
	}
	if len(envelope.Error) > 0 {
		return Ticker{}, fmt.Errorf("kraken error: %s", strings.Join(envelope.Error, ", "))
	}

	// The result is keyed by Kraken's canonical pair name, which may differ
	// from the requested one; there is exactly one entry either way.
	for _, entry := range envelope.Result {
		if len(entry.Last) == 0 {
			return Ticker{}, fmt.Errorf("ticker %s: empty last-trade field", pair)
		}
		last, err := strconv.ParseFloat(entry.Last[0], 64)
		if err != nil {
			return Ticker{}, fmt.Errorf("parsing ticker price %q: %w", entry.Last[0], err)
		}
		return Ticker{Last: last}, nil
	}
	return Ticker{}, fmt.Errorf("ticker %s: no result", pair)
}
