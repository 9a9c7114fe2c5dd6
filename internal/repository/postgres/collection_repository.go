package postgres

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollectionRepository struct {
	DB *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{
		DB: db,
	}
}

// ownedBy scopes a query to the rows of a single user.
func ownedBy(userID uint, favoritesOnly bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", userID)
		if favoritesOnly {
			db = db.Where("favorite = ?", true)
		}
		return db
	}
}

func (r *CollectionRepository) CreateRelic(ctx context.Context, relic *domain.UserRelic) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Omit("Relic").Create(relic).Error; err != nil {
		return fmt.Errorf("failed to create user relic: %w", err)
	}

	return nil
}

func (r *CollectionRepository) FindRelicByID(ctx context.Context, userID uint, id string) (domain.UserRelic, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserRelic{}, fmt.Errorf("context error: %w", err)
	}

	var relic domain.UserRelic

	err := r.DB.WithContext(ctx).
		Preload("Relic").
		Where("user_id = ? AND id = ?", userID, id).
		First(&relic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserRelic{}, errors.New("relic not found")
		}
		return domain.UserRelic{}, fmt.Errorf("failed to find user relic: %w", err)
	}

	return relic, nil
}

func (r *CollectionRepository) FindRelicsByUser(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) ([]domain.UserRelic, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	var total int64
	err := r.DB.WithContext(ctx).Model(&domain.UserRelic{}).Scopes(ownedBy(userID, favoritesOnly)).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count user relics: %w", err)
	}

	var relics []domain.UserRelic
	err = r.DB.WithContext(ctx).
		Preload("Relic").
		Scopes(ownedBy(userID, favoritesOnly), oldestFirst, paginate(page)).
		Find(&relics).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find user relics: %w", err)
	}

	return relics, total, nil
}

// FindAllRelicsByUser loads every relic a user owns, oldest first, with catalog names.
func (r *CollectionRepository) FindAllRelicsByUser(ctx context.Context, userID uint) ([]domain.UserRelic, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var relics []domain.UserRelic
	err := r.DB.WithContext(ctx).
		Preload("Relic").
		Scopes(ownedBy(userID, false), oldestFirst).
		Find(&relics).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user relics: %w", err)
	}

	return relics, nil
}

func (r *CollectionRepository) UpdateRelic(ctx context.Context, relic *domain.UserRelic) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"level":      relic.Level,
		"main_stats": relic.MainStats,
		"sub_stats":  relic.SubStats,
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.UserRelic{}).
		Where("user_id = ? AND id = ?", relic.UserID, relic.ID).
		Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update user relic: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("relic not found")
	}

	return nil
}

func (r *CollectionRepository) SetRelicFavorite(ctx context.Context, userID uint, id string, favorite bool) error {
	return r.setFavorite(ctx, &domain.UserRelic{}, userID, id, favorite, "relic not found")
}

func (r *CollectionRepository) DeleteRelic(ctx context.Context, userID uint, id string) error {
	return r.deleteOwned(ctx, &domain.UserRelic{}, userID, id, "relic not found")
}

func (r *CollectionRepository) CreateCharacter(ctx context.Context, character *domain.UserCharacter) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Omit("Character").Create(character).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("character already owned")
		}
		return fmt.Errorf("failed to create user character: %w", err)
	}

	return nil
}

func (r *CollectionRepository) FindCharactersByUser(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) ([]domain.UserCharacter, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	var total int64
	err := r.DB.WithContext(ctx).Model(&domain.UserCharacter{}).Scopes(ownedBy(userID, favoritesOnly)).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count user characters: %w", err)
	}

	var characters []domain.UserCharacter
	err = r.DB.WithContext(ctx).
		Preload("Character").
		Scopes(ownedBy(userID, favoritesOnly), oldestFirst, paginate(page)).
		Find(&characters).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find user characters: %w", err)
	}

	return characters, total, nil
}

func (r *CollectionRepository) SetCharacterFavorite(ctx context.Context, userID uint, id string, favorite bool) error {
	return r.setFavorite(ctx, &domain.UserCharacter{}, userID, id, favorite, "character not found")
}

func (r *CollectionRepository) DeleteCharacter(ctx context.Context, userID uint, id string) error {
	return r.deleteOwned(ctx, &domain.UserCharacter{}, userID, id, "character not found")
}

func (r *CollectionRepository) CreateLightCone(ctx context.Context, lightCone *domain.UserLightCone) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Omit("LightCone").Create(lightCone).Error; err != nil {
		return fmt.Errorf("failed to create user light cone: %w", err)
	}

	return nil
}

func (r *CollectionRepository) FindLightConesByUser(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) ([]domain.UserLightCone, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	var total int64
	err := r.DB.WithContext(ctx).Model(&domain.UserLightCone{}).Scopes(ownedBy(userID, favoritesOnly)).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count user light cones: %w", err)
	}

	var lightCones []domain.UserLightCone
	err = r.DB.WithContext(ctx).
		Preload("LightCone").
		Scopes(ownedBy(userID, favoritesOnly), oldestFirst, paginate(page)).
		Find(&lightCones).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find user light cones: %w", err)
	}

	return lightCones, total, nil
}

func (r *CollectionRepository) SetLightConeFavorite(ctx context.Context, userID uint, id string, favorite bool) error {
	return r.setFavorite(ctx, &domain.UserLightCone{}, userID, id, favorite, "light cone not found")
}

func (r *CollectionRepository) DeleteLightCone(ctx context.Context, userID uint, id string) error {
	return r.deleteOwned(ctx, &domain.UserLightCone{}, userID, id, "light cone not found")
}

func (r *CollectionRepository) UpsertInventory(ctx context.Context, item *domain.InventoryItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_type"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert inventory item: %w", err)
	}

	return nil
}

func (r *CollectionRepository) FindInventory(ctx context.Context, userID uint, itemType string) ([]domain.InventoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.InventoryItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND item_type = ?", userID, itemType).
		Order("item_id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory: %w", err)
	}

	return items, nil
}

func (r *CollectionRepository) setFavorite(ctx context.Context, model interface{}, userID uint, id string, favorite bool, notFound string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND id = ?", userID, id).
		Update("favorite", favorite)
	if result.Error != nil {
		return fmt.Errorf("failed to update favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New(notFound)
	}

	return nil
}

func (r *CollectionRepository) deleteOwned(ctx context.Context, model interface{}, userID uint, id string, notFound string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(model)
	if result.Error != nil {
		return fmt.Errorf("failed to delete collection item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New(notFound)
	}

	return nil
}
