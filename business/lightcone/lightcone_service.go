package lightcone

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// LightConeRepository contract interface
type LightConeRepository interface {
	Create(ctx context.Context, lightCone *domain.LightCone) error
	FindByID(ctx context.Context, id uint64) (domain.LightCone, error)
	FindAll(ctx context.Context, page domain.Page) ([]domain.LightCone, int64, error)
	Update(ctx context.Context, lightCone *domain.LightCone) error
	Delete(ctx context.Context, id uint64) error
}

type lightConeService struct {
	lightConeRepo LightConeRepository
	validate      *validator.Validate
}

func NewLightConeService(lightConeRepo LightConeRepository, validate *validator.Validate) *lightConeService {
	return &lightConeService{
		lightConeRepo: lightConeRepo,
		validate:      validate,
	}
}

func (s *lightConeService) GetAllLightCones(ctx context.Context, page domain.Page) (domain.PageResult[domain.LightCone], error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all light cones")
		return domain.PageResult[domain.LightCone]{}, fmt.Errorf("context error: %w", err)
	}

	page = page.Normalize()
	lightCones, total, err := s.lightConeRepo.FindAll(ctx, page)
	if err != nil {
		logger.Error("Failed to find all light cones", err)
		return domain.PageResult[domain.LightCone]{}, err
	}

	return domain.PageResult[domain.LightCone]{
		Items: lightCones,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}, nil
}

func (s *lightConeService) GetLightConeByID(ctx context.Context, id uint64) (domain.LightCone, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get light cone by id")
		return domain.LightCone{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("Invalid light cone id")
		return domain.LightCone{}, errors.New("invalid light cone id")
	}

	lightCone, err := s.lightConeRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find light cone", err)
		return domain.LightCone{}, err
	}

	return lightCone, nil
}

func (s *lightConeService) validateLightCone(lightCone *domain.LightCone) error {
	if err := s.validate.Var(lightCone.Name, "required"); err != nil {
		return errors.New("light cone name is required")
	}

	if err := s.validate.Var(lightCone.Rarity, "min=3,max=5"); err != nil {
		return errors.New("light cone rarity must be between 3 and 5")
	}

	if lightCone.ImageURL != "" {
		if err := s.validate.Var(lightCone.ImageURL, "url"); err != nil {
			return errors.New("invalid image url")
		}
	}

	return nil
}

func (s *lightConeService) CreateLightCone(ctx context.Context, lightCone *domain.LightCone) (*domain.LightCone, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create light cone")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validateLightCone(lightCone); err != nil {
		logger.Error("Invalid light cone data", err)
		return nil, err
	}

	if err := s.lightConeRepo.Create(ctx, lightCone); err != nil {
		logger.Error("failed to create new light cone", err)
		return nil, fmt.Errorf("failed to create light cone: %w", err)
	}

	logger.Info("light cone created successfully", "light_cone_id", lightCone.ID)

	return lightCone, nil
}

func (s *lightConeService) UpdateLightCone(ctx context.Context, lightCone *domain.LightCone) (*domain.LightCone, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating light cone")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if lightCone.ID == 0 {
		logger.Error("Invalid light cone data: ID is required")
		return nil, errors.New("light cone ID is required")
	}

	if err := s.validateLightCone(lightCone); err != nil {
		logger.Error("Invalid light cone data", err)
		return nil, err
	}

	// Verify light cone exists
	if _, err := s.lightConeRepo.FindByID(ctx, lightCone.ID); err != nil {
		logger.Error("light cone not found", err)
		return nil, errors.New("light cone not found")
	}

	if err := s.lightConeRepo.Update(ctx, lightCone); err != nil {
		logger.Error("failed to update light cone", err)
		return nil, fmt.Errorf("failed to update light cone: %w", err)
	}

	updated, err := s.lightConeRepo.FindByID(ctx, lightCone.ID)
	if err != nil {
		logger.Error("failed to fetch updated light cone", err)
		return nil, fmt.Errorf("failed to fetch updated light cone: %w", err)
	}

	logger.Info("light cone updated successfully", "light_cone_id", lightCone.ID)

	return &updated, nil
}

func (s *lightConeService) DeleteLightCone(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid light cone id when deleting light cone")
		return errors.New("invalid light cone id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting light cone")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify light cone exists
	if _, err := s.lightConeRepo.FindByID(ctx, id); err != nil {
		logger.Error("light cone not found", err)
		return errors.New("light cone not found")
	}

	if err := s.lightConeRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete light cone", err)
		return fmt.Errorf("failed to delete light cone: %w", err)
	}

	logger.Info("light cone deleted successfully", "light_cone_id", id)

	return nil
}
