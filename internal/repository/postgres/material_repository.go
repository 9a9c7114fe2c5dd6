package postgres

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{
		DB: db,
	}
}

func (r *MaterialRepository) Create(ctx context.Context, material *domain.Material) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(material).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("material already exists")
		}
		return fmt.Errorf("failed to create material: %w", err)
	}

	return nil
}

func (r *MaterialRepository) FindByID(ctx context.Context, id uint64) (domain.Material, error) {
	if err := ctx.Err(); err != nil {
		return domain.Material{}, fmt.Errorf("context error: %w", err)
	}

	var material domain.Material

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&material).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Material{}, errors.New("material not found")
		}
		return domain.Material{}, fmt.Errorf("failed to find material: %w", err)
	}

	return material, nil
}

func (r *MaterialRepository) FindAll(ctx context.Context, page domain.Page, materialType string) ([]domain.Material, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Material{})
	if materialType != "" {
		query = query.Where("type = ?", materialType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count materials: %w", err)
	}

	var materials []domain.Material
	err := query.Scopes(paginate(page)).Order("name ASC").Find(&materials).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find materials: %w", err)
	}

	return materials, total, nil
}

func (r *MaterialRepository) Update(ctx context.Context, material *domain.Material) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":        material.Name,
		"type":        material.Type,
		"rarity":      material.Rarity,
		"description": material.Description,
		"image_url":   material.ImageURL,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Material{}).Where("id = ?", material.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("material not found")
	}

	return nil
}

func (r *MaterialRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Material{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("material not found")
	}

	return nil
}
