package services

import (
	"gorm.io/gorm"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/models"
)

// strategyService manages per-user investment strategy preferences.
type strategyService struct {
	db *gorm.DB
}

// NewStrategyService creates a new StrategyServicer.
func NewStrategyService(db *gorm.DB) StrategyServicer {
	return &strategyService{db: db}
}

// GetStrategy returns the user's strategy, creating the default one on
// first access.
func (s *strategyService) GetStrategy(userID string) (*models.Strategy, error) {
	var strategy models.Strategy
	err := s.db.Where(models.Strategy{UserID: userID}).
		Attrs(models.Strategy{
			RiskTolerance:    models.RiskToleranceMedium,
			TargetAllocation: models.Allocation{},
			IsActive:         true,
		}).
		FirstOrCreate(&strategy).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &strategy, nil
}

// UpdateStrategy applies the provided fields; nil pointers leave the
// stored value untouched.
func (s *strategyService) UpdateStrategy(userID string, riskTolerance *models.RiskTolerance, allocation models.Allocation, isActive *bool) (*models.Strategy, error) {
	strategy, err := s.GetStrategy(userID)
	if err != nil {
		return nil, err
	}

	if riskTolerance != nil {
		if !riskTolerance.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "risk_tolerance must be LOW, MEDIUM or HIGH")
		}
		strategy.RiskTolerance = *riskTolerance
	}
	if allocation != nil {
		strategy.TargetAllocation = allocation
	}
	if isActive != nil {
		strategy.IsActive = *isActive
	}

	if err := s.db.Save(strategy).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return strategy, nil
}
