package collection

import (
	"context"
	"myStarCompanion/domain"

	"github.com/go-playground/validator/v10"
)

// CollectionRepository contract interface
type CollectionRepository interface {
	CreateRelic(ctx context.Context, relic *domain.UserRelic) error
	FindRelicByID(ctx context.Context, userID uint, id string) (domain.UserRelic, error)
	FindRelicsByUser(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) ([]domain.UserRelic, int64, error)
	UpdateRelic(ctx context.Context, relic *domain.UserRelic) error
	SetRelicFavorite(ctx context.Context, userID uint, id string, favorite bool) error
	DeleteRelic(ctx context.Context, userID uint, id string) error

	CreateCharacter(ctx context.Context, character *domain.UserCharacter) error
	FindCharactersByUser(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) ([]domain.UserCharacter, int64, error)
	SetCharacterFavorite(ctx context.Context, userID uint, id string, favorite bool) error
	DeleteCharacter(ctx context.Context, userID uint, id string) error

	CreateLightCone(ctx context.Context, lightCone *domain.UserLightCone) error
	FindLightConesByUser(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) ([]domain.UserLightCone, int64, error)
	SetLightConeFavorite(ctx context.Context, userID uint, id string, favorite bool) error
	DeleteLightCone(ctx context.Context, userID uint, id string) error

	UpsertInventory(ctx context.Context, item *domain.InventoryItem) error
	FindInventory(ctx context.Context, userID uint, itemType string) ([]domain.InventoryItem, error)
}

// Catalog lookups used to check that an item exists before a user adds it.
type (
	RelicFinder interface {
		FindByID(ctx context.Context, id uint64) (domain.Relic, error)
	}
	CharacterFinder interface {
		FindByID(ctx context.Context, id uint64) (domain.Character, error)
	}
	LightConeFinder interface {
		FindByID(ctx context.Context, id uint64) (domain.LightCone, error)
	}
	CurrencyFinder interface {
		FindByID(ctx context.Context, id uint64) (domain.Currency, error)
	}
	MaterialFinder interface {
		FindByID(ctx context.Context, id uint64) (domain.Material, error)
	}
)

type Catalog struct {
	Relics     RelicFinder
	Characters CharacterFinder
	LightCones LightConeFinder
	Currencies CurrencyFinder
	Materials  MaterialFinder
}

// ChangeHandler is called after every successful collection mutation.
type ChangeHandler func(ctx context.Context, ev domain.ChangeEvent)

type CollectionService struct {
	repo     CollectionRepository
	catalog  Catalog
	validate *validator.Validate
	onChange []ChangeHandler
}

func NewCollectionService(
	repo CollectionRepository,
	catalog Catalog,
	validate *validator.Validate,
	onChange ...ChangeHandler,
) *CollectionService {
	return &CollectionService{
		repo:     repo,
		catalog:  catalog,
		validate: validate,
		onChange: onChange,
	}
}

func (s *CollectionService) notify(ctx context.Context, ev domain.ChangeEvent) {
	for _, h := range s.onChange {
		h(ctx, ev)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
