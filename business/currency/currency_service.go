package currency

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"
)

// CurrencyRepository contract interface
type CurrencyRepository interface {
	Create(ctx context.Context, currency *domain.Currency) error
	FindByID(ctx context.Context, id uint64) (domain.Currency, error)
	FindAll(ctx context.Context, page domain.Page) ([]domain.Currency, int64, error)
	Update(ctx context.Context, currency *domain.Currency) error
	Delete(ctx context.Context, id uint64) error
}

type currencyService struct {
	currencyRepo CurrencyRepository
}

func NewCurrencyService(currencyRepo CurrencyRepository) *currencyService {
	return &currencyService{
		currencyRepo: currencyRepo,
	}
}

func (s *currencyService) GetAllCurrencies(ctx context.Context, page domain.Page) (domain.PageResult[domain.Currency], error) {
	if err := ctx.Err(); err != nil {
		return domain.PageResult[domain.Currency]{}, fmt.Errorf("context error: %w", err)
	}

	page = page.Normalize()
	currencies, total, err := s.currencyRepo.FindAll(ctx, page)
	if err != nil {
		logger.Error("Failed to find all currencies", err)
		return domain.PageResult[domain.Currency]{}, err
	}

	return domain.PageResult[domain.Currency]{Items: currencies, Page: page.Page, Limit: page.Limit, Total: total}, nil
}

func (s *currencyService) GetCurrencyByID(ctx context.Context, id uint64) (domain.Currency, error) {
	if id == 0 {
		return domain.Currency{}, errors.New("invalid currency id")
	}

	currency, err := s.currencyRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find currency", err)
		return domain.Currency{}, err
	}

	return currency, nil
}

func (s *currencyService) CreateCurrency(ctx context.Context, currency *domain.Currency) (*domain.Currency, error) {
	if currency.Name == "" {
		logger.Error("Invalid currency data: name is required")
		return nil, errors.New("currency name is required")
	}

	if err := s.currencyRepo.Create(ctx, currency); err != nil {
		logger.Error("failed to create new currency", err)
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	logger.Info("currency created successfully")

	return currency, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, currency *domain.Currency) (*domain.Currency, error) {
	if currency.ID == 0 {
		return nil, errors.New("currency ID is required")
	}

	if currency.Name == "" {
		logger.Error("Invalid currency data: name is required")
		return nil, errors.New("currency name is required")
	}

	// Update returns "currency not found" when nothing matched
	if err := s.currencyRepo.Update(ctx, currency); err != nil {
		logger.Error("failed to update currency", err)
		return nil, err
	}

	updated, err := s.currencyRepo.FindByID(ctx, currency.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated currency: %w", err)
	}

	return &updated, nil
}

func (s *currencyService) DeleteCurrency(ctx context.Context, id uint64) error {
	if id == 0 {
		return errors.New("invalid currency id")
	}

	if err := s.currencyRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete currency", err)
		return err
	}

	logger.Info("currency deleted successfully")

	return nil
}
