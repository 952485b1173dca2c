package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coinvault/internal/exchange"
	"coinvault/internal/handlers"
	"coinvault/internal/logger"
	"coinvault/internal/middleware"
	"coinvault/internal/models"
	"coinvault/internal/predictor"
	"coinvault/internal/pricer"
	"coinvault/internal/services"
	"coinvault/internal/validator"
	"coinvault/internal/vault"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// stubExchange satisfies exchange.Client with canned balances and tickers.
type stubExchange struct {
	name     string
	holdings []exchange.Holding
	prices   map[string]float64
	balErr   error
}

func (c *stubExchange) Name() string { return c.name }

func (c *stubExchange) FetchBalance(ctx context.Context) ([]exchange.Holding, error) {
	if c.balErr != nil {
		return nil, c.balErr
	}
	return c.holdings, nil
}

func (c *stubExchange) FetchTicker(ctx context.Context, pair string) (exchange.Ticker, error) {
	symbol := strings.TrimSuffix(pair, "/USDT")
	price, ok := c.prices[symbol]
	if !ok {
		return exchange.Ticker{}, fmt.Errorf("no ticker for %s", pair)
	}
	return exchange.Ticker{Last: price}, nil
}

// stubPredictorFn adapts a function to the handlers.Predictor interface.
type stubPredictorFn func(ctx context.Context, pair string) (*predictor.Prediction, error)

func (f stubPredictorFn) Predict(ctx context.Context, pair string) (*predictor.Prediction, error) {
	return f(ctx, pair)
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.ExchangeCredential{},
		&models.Portfolio{},
		&models.Strategy{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

const testEncryptionKey = "integration-encryption-key"

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. Exchange clients come from the given registry so tests never
// reach a real exchange.
func setupApp(t *testing.T, registry *exchange.Registry, predict stubPredictorFn) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	codec, err := vault.NewCodec(testEncryptionKey)
	if err != nil {
		t.Fatalf("failed to create codec: %v", err)
	}

	// Services
	userService := services.NewUserService(db)
	credentialService := services.NewCredentialService(db, codec)
	portfolioService := services.NewPortfolioService(db, codec, registry, pricer.New(nil, time.Minute), 5*time.Second)
	strategyService := services.NewStrategyService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, portfolioService)
	exchangeHandler := handlers.NewExchangeHandler(credentialService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	strategyHandler := handlers.NewStrategyHandler(strategyService)
	var predictionHandler *handlers.PredictionHandler
	if predict != nil {
		predictionHandler = handlers.NewPredictionHandler(predict)
	} else {
		predictionHandler = handlers.NewPredictionHandler(stubPredictorFn(
			func(_ context.Context, pair string) (*predictor.Prediction, error) {
				return &predictor.Prediction{Symbol: pair}, nil
			}))
	}

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	protected.POST("/exchange-keys", exchangeHandler.AddKeys)
	protected.GET("/exchange-keys", exchangeHandler.ListKeys)

	portfolio := protected.Group("/portfolio")
	portfolio.POST("/sync", portfolioHandler.Sync)
	portfolio.GET("", portfolioHandler.Get)

	protected.GET("/strategy", strategyHandler.Get)
	protected.PUT("/strategy", strategyHandler.Update)

	protected.GET("/predict/:symbol", predictionHandler.Predict)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"full_name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// connectExchange stores credentials for the given exchange.
func (app *testApp) connectExchange(t *testing.T, token, exchangeID, apiKey, apiSecret string) {
	t.Helper()
	body := fmt.Sprintf(`{"exchange":%q,"apiKey":%q,"apiSecret":%q}`, exchangeID, apiKey, apiSecret)
	rec := app.request("POST", "/api/v1/exchange-keys", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("connect exchange failed: %d %s", rec.Code, rec.Body.String())
	}
}
