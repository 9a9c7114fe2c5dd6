package collection

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"

	"github.com/google/uuid"
)

func (s *CollectionService) AddCharacter(ctx context.Context, userID uint, characterID uint64, level, eidolon int) (domain.UserCharacter, error) {
	if err := s.validate.Var(level, "min=1,max=80"); err != nil {
		return domain.UserCharacter{}, errors.New("character level must be between 1 and 80")
	}
	if err := s.validate.Var(eidolon, "min=0,max=6"); err != nil {
		return domain.UserCharacter{}, errors.New("eidolon must be between 0 and 6")
	}

	character, err := s.catalog.Characters.FindByID(ctx, characterID)
	if err != nil {
		logger.Error("Failed to find catalog character", err)
		return domain.UserCharacter{}, err
	}

	owned := domain.UserCharacter{
		ID:          uuid.NewString(),
		UserID:      userID,
		CharacterID: characterID,
		Level:       level,
		Eidolon:     eidolon,
	}

	if err := s.repo.CreateCharacter(ctx, &owned); err != nil {
		logger.Error("Failed to add character to collection", err)
		return domain.UserCharacter{}, err
	}
	owned.Character = &character

	s.notify(ctx, domain.ChangeEvent{UserID: userID, Kind: domain.ChangeKindCharacter, ItemID: owned.ID})

	return owned, nil
}

func (s *CollectionService) ListCharacters(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) (domain.PageResult[domain.UserCharacter], error) {
	page = page.Normalize()
	characters, total, err := s.repo.FindCharactersByUser(ctx, userID, page, favoritesOnly)
	if err != nil {
		logger.Error("Failed to list owned characters", err)
		return domain.PageResult[domain.UserCharacter]{}, fmt.Errorf("failed to list characters: %w", err)
	}

	return domain.PageResult[domain.UserCharacter]{Items: characters, Page: page.Page, Limit: page.Limit, Total: total}, nil
}

func (s *CollectionService) SetCharacterFavorite(ctx context.Context, userID uint, id string, favorite bool) error {
	if err := uuid.Validate(id); err != nil {
		return errors.New("character not found")
	}

	if err := s.repo.SetCharacterFavorite(ctx, userID, id, favorite); err != nil {
		logger.Error("Failed to set character favorite", err)
		return err
	}

	s.notify(ctx, domain.ChangeEvent{UserID: userID, Kind: domain.ChangeKindCharacter, ItemID: id, Favorite: boolPtr(favorite)})

	return nil
}

func (s *CollectionService) DeleteCharacter(ctx context.Context, userID uint, id string) error {
	if err := uuid.Validate(id); err != nil {
		return errors.New("character not found")
	}

	if err := s.repo.DeleteCharacter(ctx, userID, id); err != nil {
		logger.Error("Failed to delete owned character", err)
		return err
	}

	s.notify(ctx, domain.ChangeEvent{UserID: userID, Kind: domain.ChangeKindCharacter, ItemID: id})

	return nil
}

func (s *CollectionService) AddLightCone(ctx context.Context, userID uint, lightConeID uint64, level, superimpose int) (domain.UserLightCone, error) {
	if err := s.validate.Var(level, "min=1,max=80"); err != nil {
		return domain.UserLightCone{}, errors.New("light cone level must be between 1 and 80")
	}
	if err := s.validate.Var(superimpose, "min=1,max=5"); err != nil {
		return domain.UserLightCone{}, errors.New("superimpose must be between 1 and 5")
	}

	lightCone, err := s.catalog.LightCones.FindByID(ctx, lightConeID)
	if err != nil {
		logger.Error("Failed to find catalog light cone", err)
		return domain.UserLightCone{}, err
	}

	owned := domain.UserLightCone{
		ID:          uuid.NewString(),
		UserID:      userID,
		LightConeID: lightConeID,
		Level:       level,
		Superimpose: superimpose,
	}

	if err := s.repo.CreateLightCone(ctx, &owned); err != nil {
		logger.Error("Failed to add light cone to collection", err)
		return domain.UserLightCone{}, fmt.Errorf("failed to add light cone: %w", err)
	}
	owned.LightCone = &lightCone

	s.notify(ctx, domain.ChangeEvent{UserID: userID, Kind: domain.ChangeKindLightCone, ItemID: owned.ID})

	return owned, nil
}

func (s *CollectionService) ListLightCones(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) (domain.PageResult[domain.UserLightCone], error) {
	page = page.Normalize()
	lightCones, total, err := s.repo.FindLightConesByUser(ctx, userID, page, favoritesOnly)
	if err != nil {
		logger.Error("Failed to list owned light cones", err)
		return domain.PageResult[domain.UserLightCone]{}, fmt.Errorf("failed to list light cones: %w", err)
	}

	return domain.PageResult[domain.UserLightCone]{Items: lightCones, Page: page.Page, Limit: page.Limit, Total: total}, nil
}

func (s *CollectionService) SetLightConeFavorite(ctx context.Context, userID uint, id string, favorite bool) error {
	if err := uuid.Validate(id); err != nil {
		return errors.New("light cone not found")
	}

	if err := s.repo.SetLightConeFavorite(ctx, userID, id, favorite); err != nil {
		logger.Error("Failed to set light cone favorite", err)
		return err
	}

	s.notify(ctx, domain.ChangeEvent{UserID: userID, Kind: domain.ChangeKindLightCone, ItemID: id, Favorite: boolPtr(favorite)})

	return nil
}

func (s *CollectionService) DeleteLightCone(ctx context.Context, userID uint, id string) error {
	if err := uuid.Validate(id); err != nil {
		return errors.New("light cone not found")
	}

	if err := s.repo.DeleteLightCone(ctx, userID, id); err != nil {
		logger.Error("Failed to delete owned light cone", err)
		return err
	}

	s.notify(ctx, domain.ChangeEvent{UserID: userID, Kind: domain.ChangeKindLightCone, ItemID: id})

	return nil
}
