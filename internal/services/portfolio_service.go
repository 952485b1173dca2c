package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/exchange"
	"coinvault/internal/logger"
	"coinvault/internal/models"
	"coinvault/internal/pricer"
	"coinvault/internal/vault"
)

// portfolioService reconciles holdings across every connected exchange
// into a single portfolio snapshot.
type portfolioService struct {
	db       *gorm.DB
	codec    *vault.Codec
	registry *exchange.Registry
	pricer   *pricer.Pricer
	timeout  time.Duration
}

// NewPortfolioService creates a new PortfolioServicer. timeout bounds
// each per-exchange fetch, not the sync as a whole.
func NewPortfolioService(db *gorm.DB, codec *vault.Codec, registry *exchange.Registry, p *pricer.Pricer, timeout time.Duration) PortfolioServicer {
	return &portfolioService{
		db:       db,
		codec:    codec,
		registry: registry,
		pricer:   p,
		timeout:  timeout,
	}
}

// Sync fetches and prices balances from every stored credential
// concurrently, then overwrites the user's snapshot with the aggregate.
// A credential that cannot be decrypted, targets an unsupported exchange
// or fails to respond contributes nothing; the rest still count.
func (s *portfolioService) Sync(ctx context.Context, userID string) (*SyncResult, error) {
	var creds []models.ExchangeCredential
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&creds).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(creds) == 0 {
		return nil, apperrors.ErrNoExchangeConnected
	}

	// One goroutine per credential. Each writes only its own slot, so the
	// WaitGroup is the sole synchronization point and assembly order stays
	// the credential order.
	partials := make([]models.AssetList, len(creds))
	var wg sync.WaitGroup
	for i := range creds {
		wg.Add(1)
		go func(i int, cred models.ExchangeCredential) {
			defer wg.Done()
			partials[i] = s.fetchHoldings(ctx, cred)
		}(i, creds[i])
	}
	wg.Wait()

	total := 0.0
	assets := models.AssetList{}
	for _, partial := range partials {
		for _, holding := range partial {
			total += holding.ValueUSD
			assets = append(assets, holding)
		}
	}

	syncedAt := time.Now().UTC()
	if err := s.overwriteSnapshot(userID, total, assets, syncedAt); err != nil {
		return nil, err
	}

	logger.Get().Infow("portfolio synced",
		"user_id", userID,
		"credentials", len(creds),
		"assets", len(assets),
		"total_value_usd", total,
	)

	return &SyncResult{
		TotalValueUSD: total,
		Assets:        assets,
		SyncedAt:      syncedAt,
	}, nil
}

// fetchHoldings turns one stored credential into priced holdings. Every
// failure mode returns an empty list; decrypted secrets never outlive
// this call.
func (s *portfolioService) fetchHoldings(ctx context.Context, cred models.ExchangeCredential) models.AssetList {
	log := logger.Get()

	apiKey, err := s.codec.Decrypt(cred.EncryptedAPIKey)
	if err != nil {
		log.Warnw("skipping credential: undecryptable api key", "exchange", cred.Exchange, "credential_id", cred.ID)
		return nil
	}
	apiSecret, err := s.codec.Decrypt(cred.EncryptedAPISecret)
	if err != nil {
		log.Warnw("skipping credential: undecryptable api secret", "exchange", cred.Exchange, "credential_id", cred.ID)
		return nil
	}

	client, ok := s.registry.Build(cred.Exchange, exchange.Credentials{APIKey: apiKey, APISecret: apiSecret})
	if !ok {
		// Unsupported exchange, not an error. The credential may predate
		// a client being removed.
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	holdings, err := client.FetchBalance(callCtx)
	if err != nil {
		fetchErr := &exchange.FetchError{Exchange: client.Name(), Err: err}
		log.Warnw("exchange fetch failed", "exchange", fetchErr.Exchange, "error", fetchErr.Error())
		return nil
	}

	var priced models.AssetList
	for _, h := range holdings {
		if h.Amount <= 0 {
			continue
		}
		price := s.pricer.Price(callCtx, client, h.Symbol)
		priced = append(priced, models.AssetHolding{
			Symbol:   h.Symbol,
			Amount:   h.Amount,
			PriceUSD: price,
			ValueUSD: h.Amount * price,
			Exchange: client.Name(),
		})
	}
	return priced
}

// overwriteSnapshot replaces the user's single portfolio row. The row is
// created on registration, but a missing one is repaired here.
func (s *portfolioService) overwriteSnapshot(userID string, total float64, assets models.AssetList, syncedAt time.Time) error {
	res := s.db.Model(&models.Portfolio{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"total_value_usd": total,
		"assets":          assets,
		"last_synced_at":  syncedAt,
	})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		portfolio := &models.Portfolio{
			UserID:        userID,
			TotalValueUSD: total,
			Assets:        assets,
			LastSyncedAt:  syncedAt,
		}
		if err := s.db.Create(portfolio).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// GetSnapshot returns the stored portfolio without touching any exchange.
func (s *portfolioService) GetSnapshot(userID string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := s.db.Where("user_id = ?", userID).First(&portfolio).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}
