package exchange

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestKraken(serverURL string) *KrakenClient {
	secret := base64.StdEncoding.EncodeToString([]byte("kraken-signing-key"))
	c := NewKrakenClient(Credentials{APIKey: "test-key", APISecret: secret})
	c.baseURL = serverURL
	return c
}

func TestKrakenFetchBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/0/private/Balance" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("API-Key") != "test-key" {
			t.Error("missing API-Key header")
		}
		if r.Header.Get("API-Sign") == "" {
			t.Error("missing API-Sign header")
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("nonce") == "" {
			t.Error("missing nonce in form body")
		}

		w.Header().Set("Content-Type", "application/json")
		// Raw JSON keeps the key order Kraken sent; the client must too.
		_, _ = w.Write([]byte(`{"error":[],"result":{"ZUSD":"100.0","XXBT":"2.5","SOL":"10"}}`))
	}))
	defer server.Close()

	holdings, err := newTestKraken(server.URL).FetchBalance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holdings) != 3 {
		t.Fatalf("expected 3 holdings, got %d", len(holdings))
	}
	if holdings[0].Symbol != "USD" || holdings[0].Amount != 100 {
		t.Errorf("expected USD 100 first (ZUSD normalized), got %+v", holdings[0])
	}
	if holdings[1].Symbol != "BTC" || holdings[1].Amount != 2.5 {
		t.Errorf("expected BTC 2.5 second (XXBT normalized), got %+v", holdings[1])
	}
	if holdings[2].Symbol != "SOL" {
		t.Errorf("expected SOL passthrough third, got %+v", holdings[2])
	}
}

func TestKrakenFetchBalance_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"error": []string{"EAPI:Invalid key"}, "result": map[string]string{}})
	}))
	defer server.Close()

	_, err := newTestKraken(server.URL).FetchBalance(context.Background())
	if err == nil {
		t.Fatal("expected error from kraken error field")
	}
}

func TestKrakenFetchBalance_BadSecret(t *testing.T) {
	c := NewKrakenClient(Credentials{APIKey: "k", APISecret: "%%not-base64%%"})
	c.baseURL = "http://127.0.0.1:0"

	_, err := c.FetchBalance(context.Background())
	if err == nil {
		t.Fatal("expected error for undecodable secret")
	}
}

func TestKrakenFetchTicker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/0/public/Ticker" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("pair"); got != "ETHUSDT" {
			t.Errorf("expected pair ETHUSDT, got %q", got)
		}
		_, _ = w.Write([]byte(`{"error":[],"result":{"ETHUSDT":{"c":["3000.00","1.2"]}}}`))
	}))
	defer server.Close()

	ticker, err := newTestKraken(server.URL).FetchTicker(context.Background(), "ETH/USDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticker.Last != 3000 {
		t.Errorf("expected last price 3000, got %f", ticker.Last)
	}
}

func TestDecodeOrderedBalances(t *testing.T) {
	holdings, err := decodeOrderedBalances([]byte(`{"C":"1","A":"2","B":"3"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Holding{{"C", 1}, {"A", 2}, {"B", 3}}
	for i, h := range holdings {
		if h != want[i] {
			t.Errorf("position %d: got %+v, want %+v", i, h, want[i])
		}
	}

	if _, err := decodeOrderedBalances([]byte(`["not","an","object"]`)); err == nil {
		t.Error("expected error for non-object input")
	}
}
