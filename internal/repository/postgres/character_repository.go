package postgres

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"

	"gorm.io/gorm"
)

type CharacterRepository struct {
	DB *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) *CharacterRepository {
	return &CharacterRepository{
		DB: db,
	}
}

func (r *CharacterRepository) Create(ctx context.Context, character *domain.Character) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(character).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("character already exists")
		}
		return fmt.Errorf("failed to create character: %w", err)
	}

	return nil
}

func (r *CharacterRepository) FindByID(ctx context.Context, id uint64) (domain.Character, error) {
	if err := ctx.Err(); err != nil {
		return domain.Character{}, fmt.Errorf("context error: %w", err)
	}

	var character domain.Character

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&character).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Character{}, errors.New("character not found")
		}
		return domain.Character{}, fmt.Errorf("failed to find character: %w", err)
	}

	return character, nil
}

func (r *CharacterRepository) FindAll(ctx context.Context, page domain.Page) ([]domain.Character, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&domain.Character{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count characters: %w", err)
	}

	var characters []domain.Character
	err := r.DB.WithContext(ctx).Scopes(paginate(page)).Order("name ASC").Find(&characters).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find characters: %w", err)
	}

	return characters, total, nil
}

func (r *CharacterRepository) Update(ctx context.Context, character *domain.Character) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":      character.Name,
		"rarity":    character.Rarity,
		"path":      character.Path,
		"element":   character.Element,
		"image_url": character.ImageURL,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Character{}).Where("id = ?", character.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update character: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("character not found")
	}

	return nil
}

func (r *CharacterRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Character{})
	if result.Error != nil {
		return deleteError(result.Error, "character")
	}
	if result.RowsAffected == 0 {
		return errors.New("character not found")
	}

	return nil
}
