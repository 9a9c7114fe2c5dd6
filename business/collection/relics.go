package collection

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const maxRelicLevel = 15

func (s *CollectionService) validateRelicStats(level int, mainStats, subStats domain.StatMap) error {
	if err := s.validate.Var(level, fmt.Sprintf("min=0,max=%d", maxRelicLevel)); err != nil {
		return fmt.Errorf("relic level must be between 0 and %d", maxRelicLevel)
	}

	if !mainStats.Finite() || !subStats.Finite() {
		return errors.New("relic stats must be finite numbers")
	}

	for name := range mainStats {
		if name == "" {
			return errors.New("stat name is required")
		}
	}
	for name := range subStats {
		if name == "" {
			return errors.New("stat name is required")
		}
	}

	return nil
}

func (s *CollectionService) AddRelic(ctx context.Context, userID uint, relicID uint64, level int, mainStats, subStats domain.StatMap) (domain.UserRelic, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when adding relic")
		return domain.UserRelic{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validateRelicStats(level, mainStats, subStats); err != nil {
		logger.Error("Invalid relic data", err)
		return domain.UserRelic{}, err
	}

	catalogRelic, err := s.catalog.Relics.FindByID(ctx, relicID)
	if err != nil {
		logger.Error("Failed to find catalog relic", err)
		return domain.UserRelic{}, err
	}

	if mainStats == nil {
		mainStats = domain.StatMap{}
	}
	if subStats == nil {
		subStats = domain.StatMap{}
	}

	owned := domain.UserRelic{
		ID:        uuid.NewString(),
		UserID:    userID,
		RelicID:   relicID,
		Level:     level,
		MainStats: datatypes.NewJSONType(mainStats),
		SubStats:  datatypes.NewJSONType(subStats),
	}

	if err := s.repo.CreateRelic(ctx, &owned); err != nil {
		logger.Error("Failed to add relic to collection", err)
		return domain.UserRelic{}, fmt.Errorf("failed to add relic: %w", err)
	}
	owned.Relic = &catalogRelic

	s.notify(ctx, domain.ChangeEvent{UserID: userID, Kind: domain.ChangeKindRelic, ItemID: owned.ID})

	return owned, nil
}

func (s *CollectionService) ListRelics(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) (domain.PageResult[domain.UserRelic], error) {
	if err := ctx.Err(); err != nil {
		return domain.PageResult[domain.UserRelic]{}, fmt.Errorf("context error: %w", err)
	}

	page = page.Normalize()
	relics, total, err := s.repo.FindRelicsByUser(ctx, userID, page, favoritesOnly)
	if err != nil {
		logger.Error("Failed to list owned relics", err)
		return domain.PageResult[domain.UserRelic]{}, err
	}

	return domain.PageResult[domain.UserRelic]{
		Items: relics,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}, nil
}

func (s *CollectionService) GetRelic(ctx context.Context, userID uint, id string) (domain.UserRelic, error) {
	if err := uuid.Validate(id); err != nil {
		return domain.UserRelic{}, errors.New("relic not found")
	}

	relic, err := s.repo.FindRelicByID(ctx, userID, id)
	if err != nil {
		logger.Error("Failed to find owned relic", err)
		return domain.UserRelic{}, err
	}

	return relic, nil
}

// UpdateRelic replaces the level and stats of an owned relic.
func (s *CollectionService) UpdateRelic(ctx context.Context, userID uint, id string, level int, mainStats, subStats domain.StatMap) (domain.UserRelic, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating relic")
		return domain.UserRelic{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validateRelicStats(level, mainStats, subStats); err != nil {
		logger.Error("Invalid relic data", err)
		return domain.UserRelic{}, err
	}

	relic, err := s.GetRelic(ctx, userID, id)
	if err != nil {
		return domain.UserRelic{}, err
	}

	if mainStats == nil {
		mainStats = domain.StatMap{}
	}
	if subStats == nil {
		subStats = domain.StatMap{}
	}

	relic.Level = level
	relic.MainStats = datatypes.NewJSONType(mainStats)
	relic.SubStats = datatypes.NewJSONType(subStats)

	if err := s.repo.UpdateRelic(ctx, &relic); err != nil {
		logger.Error("Failed to update owned relic", err)
		return domain.UserRelic{}, fmt.Errorf("failed to update relic: %w", err)
	}

	s.notify(ctx, domain.ChangeEvent{UserID: userID, Kind: domain.ChangeKindRelic, ItemID: id})

	return relic, nil
}

func (s *CollectionService) SetRelicFavorite(ctx context.Context, userID uint, id string, favorite bool) error {
	if err := uuid.Validate(id); err != nil {
		return errors.New("relic not found")
	}

	if err := s.repo.SetRelicFavorite(ctx, userID, id, favorite); err != nil {
		logger.Error("Failed to set relic favorite", err)
		return err
	}

	s.notify(ctx, domain.ChangeEvent{UserID: userID, Kind: domain.ChangeKindRelic, ItemID: id, Favorite: boolPtr(favorite)})

	return nil
}

func (s *CollectionService) DeleteRelic(ctx context.Context, userID uint, id string) error {
	if err := uuid.Validate(id); err != nil {
		return errors.New("relic not found")
	}

	if err := s.repo.DeleteRelic(ctx, userID, id); err != nil {
		logger.Error("Failed to delete owned relic", err)
		return err
	}

	s.notify(ctx, domain.ChangeEvent{UserID: userID, Kind: domain.ChangeKindRelic, ItemID: id})

	return nil
}
