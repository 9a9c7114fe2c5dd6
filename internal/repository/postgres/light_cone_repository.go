package postgres

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"

	"gorm.io/gorm"
)

type LightConeRepository struct {
	DB *gorm.DB
}

func NewLightConeRepository(db *gorm.DB) *LightConeRepository {
	return &LightConeRepository{
		DB: db,
	}
}

func (r *LightConeRepository) Create(ctx context.Context, lightCone *domain.LightCone) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(lightCone).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("light cone already exists")
		}
		return fmt.Errorf("failed to create light cone: %w", err)
	}

	return nil
}

func (r *LightConeRepository) FindByID(ctx context.Context, id uint64) (domain.LightCone, error) {
	if err := ctx.Err(); err != nil {
		return domain.LightCone{}, fmt.Errorf("context error: %w", err)
	}

	var lightCone domain.LightCone

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&lightCone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LightCone{}, errors.New("light cone not found")
		}
		return domain.LightCone{}, fmt.Errorf("failed to find light cone: %w", err)
	}

	return lightCone, nil
}

func (r *LightConeRepository) FindAll(ctx context.Context, page domain.Page) ([]domain.LightCone, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&domain.LightCone{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count light cones: %w", err)
	}

	var lightCones []domain.LightCone
	err := r.DB.WithContext(ctx).Scopes(paginate(page)).Order("name ASC").Find(&lightCones).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find light cones: %w", err)
	}

	return lightCones, total, nil
}

func (r *LightConeRepository) Update(ctx context.Context, lightCone *domain.LightCone) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":      lightCone.Name,
		"rarity":    lightCone.Rarity,
		"path":      lightCone.Path,
		"image_url": lightCone.ImageURL,
	}

	result := r.DB.WithContext(ctx).Model(&domain.LightCone{}).Where("id = ?", lightCone.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update light cone: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("light cone not found")
	}

	return nil
}

func (r *LightConeRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.LightCone{})
	if result.Error != nil {
		return deleteError(result.Error, "light cone")
	}
	if result.RowsAffected == 0 {
		return errors.New("light cone not found")
	}

	return nil
}
