package postgres

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"

	"gorm.io/gorm"
)

type CurrencyRepository struct {
	DB *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) *CurrencyRepository {
	return &CurrencyRepository{
		DB: db,
	}
}

func (r *CurrencyRepository) Create(ctx context.Context, currency *domain.Currency) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(currency).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("currency already exists")
		}
		return fmt.Errorf("failed to create currency: %w", err)
	}

	return nil
}

func (r *CurrencyRepository) FindByID(ctx context.Context, id uint64) (domain.Currency, error) {
	if err := ctx.Err(); err != nil {
		return domain.Currency{}, fmt.Errorf("context error: %w", err)
	}

	var currency domain.Currency

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&currency).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Currency{}, errors.New("currency not found")
		}
		return domain.Currency{}, fmt.Errorf("failed to find currency: %w", err)
	}

	return currency, nil
}

func (r *CurrencyRepository) FindAll(ctx context.Context, page domain.Page) ([]domain.Currency, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&domain.Currency{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count currencies: %w", err)
	}

	var currencies []domain.Currency
	err := r.DB.WithContext(ctx).Scopes(paginate(page)).Order("name ASC").Find(&currencies).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find currencies: %w", err)
	}

	return currencies, total, nil
}

func (r *CurrencyRepository) Update(ctx context.Context, currency *domain.Currency) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":        currency.Name,
		"description": currency.Description,
		"image_url":   currency.ImageURL,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Currency{}).Where("id = ?", currency.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update currency: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("currency not found")
	}

	return nil
}

func (r *CurrencyRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Currency{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete currency: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("currency not found")
	}

	return nil
}
