package relic

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/business/optimizer"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"
	"slices"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// RelicRepository contract interface
type RelicRepository interface {
	Create(ctx context.Context, relic *domain.Relic) error
	FindByID(ctx context.Context, id uint64) (domain.Relic, error)
	FindAll(ctx context.Context, page domain.Page, slot string) ([]domain.Relic, int64, error)
	Update(ctx context.Context, relic *domain.Relic) error
	Delete(ctx context.Context, id uint64) error
}

// ChangeHandler is called after a catalog relic is renamed or deleted.
type ChangeHandler func(ctx context.Context, ev domain.ChangeEvent)

type relicService struct {
	relicRepo RelicRepository
	validate  *validator.Validate
	onChange  []ChangeHandler
}

func NewRelicService(relicRepo RelicRepository, validate *validator.Validate, onChange ...ChangeHandler) *relicService {
	return &relicService{
		relicRepo: relicRepo,
		validate:  validate,
		onChange:  onChange,
	}
}

func (s *relicService) notify(ctx context.Context, id uint64) {
	ev := domain.ChangeEvent{Kind: domain.ChangeKindCatalogRelic, ItemID: strconv.FormatUint(id, 10)}
	for _, h := range s.onChange {
		h(ctx, ev)
	}
}

func (s *relicService) GetAllRelics(ctx context.Context, page domain.Page, slot string) (domain.PageResult[domain.Relic], error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all relics")
		return domain.PageResult[domain.Relic]{}, fmt.Errorf("context error: %w", err)
	}

	if slot != "" && !slices.Contains(optimizer.Slots(), domain.SlotName(slot)) {
		logger.Error("Invalid relic slot filter", "slot", slot)
		return domain.PageResult[domain.Relic]{}, errors.New("invalid relic slot")
	}

	page = page.Normalize()
	relics, total, err := s.relicRepo.FindAll(ctx, page, slot)
	if err != nil {
		logger.Error("Failed to find all relics", err)
		return domain.PageResult[domain.Relic]{}, err
	}

	return domain.PageResult[domain.Relic]{
		Items: relics,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}, nil
}

func (s *relicService) GetRelicByID(ctx context.Context, id uint64) (domain.Relic, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get relic by id")
		return domain.Relic{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("Invalid relic id")
		return domain.Relic{}, errors.New("invalid relic id")
	}

	relic, err := s.relicRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find relic", err)
		return domain.Relic{}, err
	}

	return relic, nil
}

// validateRelic also fills in the relic slot.
func (s *relicService) validateRelic(relic *domain.Relic) error {
	if err := s.validate.Var(relic.Name, "required"); err != nil {
		return errors.New("relic name is required")
	}

	if err := s.validate.Var(relic.Rarity, "min=2,max=5"); err != nil {
		return errors.New("relic rarity must be between 2 and 5")
	}

	// Slot is derived from the name; names without a slot label stay
	// in the catalog but are never picked by the optimizer.
	slot, ok := optimizer.ClassifySlot(relic.Name)
	if !ok {
		logger.Warn("Relic name has no slot label", "name", relic.Name)
	}
	relic.Slot = string(slot)

	if relic.ImageURL != "" {
		if err := s.validate.Var(relic.ImageURL, "url"); err != nil {
			return errors.New("invalid image url")
		}
	}

	return nil
}

func (s *relicService) CreateRelic(ctx context.Context, relic *domain.Relic) (*domain.Relic, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create relic")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validateRelic(relic); err != nil {
		logger.Error("Invalid relic data", err)
		return nil, err
	}

	if err := s.relicRepo.Create(ctx, relic); err != nil {
		logger.Error("failed to create new relic", err)
		return nil, fmt.Errorf("failed to create relic: %w", err)
	}

	logger.Info("relic created successfully", "relic_id", relic.ID)

	return relic, nil
}

func (s *relicService) UpdateRelic(ctx context.Context, relic *domain.Relic) (*domain.Relic, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating relic")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if relic.ID == 0 {
		logger.Error("Invalid relic data: ID is required")
		return nil, errors.New("relic ID is required")
	}

	if err := s.validateRelic(relic); err != nil {
		logger.Error("Invalid relic data", err)
		return nil, err
	}

	existing, err := s.relicRepo.FindByID(ctx, relic.ID)
	if err != nil {
		logger.Error("relic not found", err)
		return nil, errors.New("relic not found")
	}

	if err := s.relicRepo.Update(ctx, relic); err != nil {
		logger.Error("failed to update relic", err)
		return nil, fmt.Errorf("failed to update relic: %w", err)
	}

	// owned copies take their name, and so their slot, from the catalog
	if existing.Name != relic.Name {
		s.notify(ctx, relic.ID)
	}

	updated, err := s.relicRepo.FindByID(ctx, relic.ID)
	if err != nil {
		logger.Error("failed to fetch updated relic", err)
		return nil, fmt.Errorf("failed to fetch updated relic: %w", err)
	}

	logger.Info("relic updated successfully", "relic_id", relic.ID)

	return &updated, nil
}

func (s *relicService) DeleteRelic(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid relic id when deleting relic")
		return errors.New("invalid relic id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting relic")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify relic exists
	if _, err := s.relicRepo.FindByID(ctx, id); err != nil {
		logger.Error("relic not found", err)
		return errors.New("relic not found")
	}

	if err := s.relicRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete relic", err)
		return fmt.Errorf("failed to delete relic: %w", err)
	}
	s.notify(ctx, id)

	logger.Info("relic deleted successfully", "relic_id", id)

	return nil
}
