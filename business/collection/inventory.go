package collection

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"
	"strconv"
)

func (s *CollectionService) SetItemQuantity(ctx context.Context, userID uint, itemType string, itemID uint64, quantity int64) (domain.InventoryItem, error) {
	if quantity < 0 {
		return domain.InventoryItem{}, errors.New("quantity cannot be negative")
	}

	var err error
	switch itemType {
	case domain.ItemTypeCurrency:
		_, err = s.catalog.Currencies.FindByID(ctx, itemID)
	case domain.ItemTypeMaterial:
		_, err = s.catalog.Materials.FindByID(ctx, itemID)
	default:
		return domain.InventoryItem{}, errors.New("invalid item type")
	}
	if err != nil {
		logger.Error("Failed to find catalog item", "item_type", itemType, "item_id", itemID, "error", err)
		return domain.InventoryItem{}, err
	}

	item := domain.InventoryItem{
		UserID:   userID,
		ItemType: itemType,
		ItemID:   itemID,
		Quantity: quantity,
	}

	if err := s.repo.UpsertInventory(ctx, &item); err != nil {
		logger.Error("Failed to update inventory", err)
		return domain.InventoryItem{}, fmt.Errorf("failed to update inventory: %w", err)
	}

	s.notify(ctx, domain.ChangeEvent{
		UserID: userID,
		Kind:   domain.ChangeKindInventory,
		ItemID: itemType + ":" + strconv.FormatUint(itemID, 10),
	})

	return item, nil
}

func (s *CollectionService) ListInventory(ctx context.Context, userID uint, itemType string) ([]domain.InventoryItem, error) {
	if itemType != domain.ItemTypeCurrency && itemType != domain.ItemTypeMaterial {
		return nil, errors.New("invalid item type")
	}

	items, err := s.repo.FindInventory(ctx, userID, itemType)
	if err != nil {
		logger.Error("Failed to list inventory", err)
		return nil, err
	}

	return items, nil
}
