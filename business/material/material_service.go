package material

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// MaterialRepository contract interface
type MaterialRepository interface {
	Create(ctx context.Context, material *domain.Material) error
	FindByID(ctx context.Context, id uint64) (domain.Material, error)
	FindAll(ctx context.Context, page domain.Page, materialType string) ([]domain.Material, int64, error)
	Update(ctx context.Context, material *domain.Material) error
	Delete(ctx context.Context, id uint64) error
}

type materialService struct {
	materialRepo MaterialRepository
	validate     *validator.Validate
}

func NewMaterialService(materialRepo MaterialRepository, validate *validator.Validate) *materialService {
	return &materialService{
		materialRepo: materialRepo,
		validate:     validate,
	}
}

// GetAllMaterials lists materials, optionally only those of materialType.
func (s *materialService) GetAllMaterials(ctx context.Context, page domain.Page, materialType string) (domain.PageResult[domain.Material], error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all materials")
		return domain.PageResult[domain.Material]{}, fmt.Errorf("context error: %w", err)
	}

	page = page.Normalize()
	materials, total, err := s.materialRepo.FindAll(ctx, page, materialType)
	if err != nil {
		logger.Error("Failed to find all materials", err)
		return domain.PageResult[domain.Material]{}, err
	}

	return domain.PageResult[domain.Material]{
		Items: materials,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}, nil
}

func (s *materialService) GetMaterialByID(ctx context.Context, id uint64) (domain.Material, error) {
	if id == 0 {
		logger.Error("Invalid material id")
		return domain.Material{}, errors.New("invalid material id")
	}

	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find material", err)
		return domain.Material{}, err
	}

	return material, nil
}

func (s *materialService) validateMaterial(material *domain.Material) error {
	if err := s.validate.Var(material.Name, "required"); err != nil {
		return errors.New("material name is required")
	}

	if err := s.validate.Var(material.Rarity, "min=1,max=5"); err != nil {
		return errors.New("material rarity must be between 1 and 5")
	}

	return nil
}

func (s *materialService) CreateMaterial(ctx context.Context, material *domain.Material) (*domain.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validateMaterial(material); err != nil {
		logger.Error("Invalid material data", err)
		return nil, err
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		logger.Error("failed to create new material", err)
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	logger.Info("material created successfully", "material_id", material.ID)

	return material, nil
}

func (s *materialService) UpdateMaterial(ctx context.Context, material *domain.Material) (*domain.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if material.ID == 0 {
		return nil, errors.New("material ID is required")
	}

	if err := s.validateMaterial(material); err != nil {
		logger.Error("Invalid material data", err)
		return nil, err
	}

	if err := s.materialRepo.Update(ctx, material); err != nil {
		logger.Error("failed to update material", err)
		return nil, err
	}

	updated, err := s.materialRepo.FindByID(ctx, material.ID)
	if err != nil {
		logger.Error("failed to fetch updated material", err)
		return nil, fmt.Errorf("failed to fetch updated material: %w", err)
	}

	return &updated, nil
}

func (s *materialService) DeleteMaterial(ctx context.Context, id uint64) error {
	if id == 0 {
		return errors.New("invalid material id")
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete material", err)
		return err
	}

	logger.Info("material deleted successfully", "material_id", id)

	return nil
}
