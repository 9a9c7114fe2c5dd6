package character

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// CharacterRepository contract interface
type CharacterRepository interface {
	Create(ctx context.Context, character *domain.Character) error
	FindByID(ctx context.Context, id uint64) (domain.Character, error)
	FindAll(ctx context.Context, page domain.Page) ([]domain.Character, int64, error)
	Update(ctx context.Context, character *domain.Character) error
	Delete(ctx context.Context, id uint64) error
}

type characterService struct {
	characterRepo CharacterRepository
	validate      *validator.Validate
}

func NewCharacterService(characterRepo CharacterRepository, validate *validator.Validate) *characterService {
	return &characterService{
		characterRepo: characterRepo,
		validate:      validate,
	}
}

func (s *characterService) GetAllCharacters(ctx context.Context, page domain.Page) (domain.PageResult[domain.Character], error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all characters")
		return domain.PageResult[domain.Character]{}, fmt.Errorf("context error: %w", err)
	}

	page = page.Normalize()
	characters, total, err := s.characterRepo.FindAll(ctx, page)
	if err != nil {
		logger.Error("Failed to find all characters", err)
		return domain.PageResult[domain.Character]{}, err
	}

	return domain.PageResult[domain.Character]{
		Items: characters,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}, nil
}

func (s *characterService) GetCharacterByID(ctx context.Context, id uint64) (domain.Character, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get character by id")
		return domain.Character{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("Invalid character id")
		return domain.Character{}, errors.New("invalid character id")
	}

	character, err := s.characterRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find character", err)
		return domain.Character{}, err
	}

	return character, nil
}

func (s *characterService) validateCharacter(character *domain.Character) error {
	if err := s.validate.Var(character.Name, "required"); err != nil {
		return errors.New("character name is required")
	}

	if err := s.validate.Var(character.Rarity, "oneof=4 5"); err != nil {
		return errors.New("character rarity must be 4 or 5")
	}

	if character.ImageURL != "" {
		if err := s.validate.Var(character.ImageURL, "url"); err != nil {
			return errors.New("invalid image url")
		}
	}

	return nil
}

func (s *characterService) CreateCharacter(ctx context.Context, character *domain.Character) (*domain.Character, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create character")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validateCharacter(character); err != nil {
		logger.Error("Invalid character data", err)
		return nil, err
	}

	if err := s.characterRepo.Create(ctx, character); err != nil {
		logger.Error("failed to create new character", err)
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	logger.Info("character created successfully", "character_id", character.ID)

	return character, nil
}

func (s *characterService) UpdateCharacter(ctx context.Context, character *domain.Character) (*domain.Character, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating character")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if character.ID == 0 {
		logger.Error("Invalid character data: ID is required")
		return nil, errors.New("character ID is required")
	}

	if err := s.validateCharacter(character); err != nil {
		logger.Error("Invalid character data", err)
		return nil, err
	}

	// Verify character exists
	if _, err := s.characterRepo.FindByID(ctx, character.ID); err != nil {
		logger.Error("character not found", err)
		return nil, errors.New("character not found")
	}

	if err := s.characterRepo.Update(ctx, character); err != nil {
		logger.Error("failed to update character", err)
		return nil, fmt.Errorf("failed to update character: %w", err)
	}

	updated, err := s.characterRepo.FindByID(ctx, character.ID)
	if err != nil {
		logger.Error("failed to fetch updated character", err)
		return nil, fmt.Errorf("failed to fetch updated character: %w", err)
	}

	logger.Info("character updated successfully", "character_id", character.ID)

	return &updated, nil
}

func (s *characterService) DeleteCharacter(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid character id when deleting character")
		return errors.New("invalid character id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting character")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify character exists
	if _, err := s.characterRepo.FindByID(ctx, id); err != nil {
		logger.Error("character not found", err)
		return errors.New("character not found")
	}

	if err := s.characterRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete character", err)
		return fmt.Errorf("failed to delete character: %w", err)
	}

	logger.Info("character deleted successfully", "character_id", id)

	return nil
}
