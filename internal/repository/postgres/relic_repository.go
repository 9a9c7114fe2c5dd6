package postgres

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"

	"gorm.io/gorm"
)

type RelicRepository struct {
	DB *gorm.DB
}

func NewRelicRepository(db *gorm.DB) *RelicRepository {
	return &RelicRepository{
		DB: db,
	}
}

func (r *RelicRepository) Create(ctx context.Context, relic *domain.Relic) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(relic).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("relic already exists")
		}
		return fmt.Errorf("failed to create relic: %w", err)
	}

	return nil
}

func (r *RelicRepository) FindByID(ctx context.Context, id uint64) (domain.Relic, error) {
	if err := ctx.Err(); err != nil {
		return domain.Relic{}, fmt.Errorf("context error: %w", err)
	}

	var relic domain.Relic

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&relic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Relic{}, errors.New("relic not found")
		}
		return domain.Relic{}, fmt.Errorf("failed to find relic: %w", err)
	}

	return relic, nil
}

func (r *RelicRepository) FindAll(ctx context.Context, page domain.Page, slot string) ([]domain.Relic, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Relic{})
	if slot != "" {
		query = query.Where("slot = ?", slot)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count relics: %w", err)
	}

	var relics []domain.Relic
	err := query.Scopes(paginate(page)).Order("name ASC").Find(&relics).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find relics: %w", err)
	}

	return relics, total, nil
}

func (r *RelicRepository) Update(ctx context.Context, relic *domain.Relic) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":      relic.Name,
		"set_name":  relic.SetName,
		"slot":      relic.Slot,
		"rarity":    relic.Rarity,
		"image_url": relic.ImageURL,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Relic{}).Where("id = ?", relic.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update relic: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("relic not found")
	}

	return nil
}

func (r *RelicRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Relic{})
	if result.Error != nil {
		return deleteError(result.Error, "relic")
	}
	if result.RowsAffected == 0 {
		return errors.New("relic not found")
	}

	return nil
}
