//go:build !integration

package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"myStarCompanion/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCollection records the last call; only the methods under test do anything.
type fakeCollection struct {
	CollectionService

	userID        uint
	favoritesOnly bool
	favorite      *bool
	mainStats     domain.StatMap
	quantity      int64
	itemType      string
}

func (f *fakeCollection) AddRelic(ctx context.Context, userID uint, relicID uint64, level int, mainStats, subStats domain.StatMap) (domain.UserRelic, error) {
	f.userID, f.mainStats = userID, mainStats
	if relicID == 404 {
		return domain.UserRelic{}, errors.New("relic not found")
	}
	return domain.UserRelic{ID: "0b5d7c1e-3f2a-4c9b-8e61-6f0e2d8a9b10", UserID: userID, RelicID: relicID, Level: level}, nil
}

func (f *fakeCollection) ListRelics(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) (domain.PageResult[domain.UserRelic], error) {
	f.userID, f.favoritesOnly = userID, favoritesOnly
	return domain.PageResult[domain.UserRelic]{Items: []domain.UserRelic{}, Page: page.Page, Limit: page.Limit}, nil
}

func (f *fakeCollection) SetRelicFavorite(ctx context.Context, userID uint, id string, favorite bool) error {
	f.userID, f.favorite = userID, &favorite
	return nil
}

func (f *fakeCollection) SetItemQuantity(ctx context.Context, userID uint, itemType string, itemID uint64, quantity int64) (domain.InventoryItem, error) {
	f.itemType, f.quantity = itemType, quantity
	if quantity < 0 {
		return domain.InventoryItem{}, errors.New("quantity cannot be negative")
	}
	return domain.InventoryItem{UserID: userID, ItemType: itemType, ItemID: itemID, Quantity: quantity}, nil
}

func TestCollectionHandler_AddRelic(t *testing.T) {
	svc := &fakeCollection{}
	h := NewCollectionHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/v1/me/relics",
		`{"relic_id":3,"level":15,"main_stats":{"SPD":25.03},"sub_stats":{"Crit Rate":5.8}}`)
	c.Set("user_id", uint(4))
	require.NoError(t, h.AddRelic(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint(4), svc.userID)
	assert.Equal(t, domain.StatMap{"SPD": 25.03}, svc.mainStats)

	c, rec = newContext(http.MethodPost, "/api/v1/me/relics", `{"relic_id":404}`)
	c.Set("user_id", uint(4))
	require.NoError(t, h.AddRelic(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(http.MethodPost, "/api/v1/me/relics", `{"level":1}`)
	c.Set("user_id", uint(4))
	require.NoError(t, h.AddRelic(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCollectionHandler_RequiresUser(t *testing.T) {
	h := NewCollectionHandler(&fakeCollection{})

	c, rec := newContext(http.MethodGet, "/api/v1/me/relics", "")
	require.NoError(t, h.ListRelics(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCollectionHandler_ListRelicsFavorites(t *testing.T) {
	svc := &fakeCollection{}
	h := NewCollectionHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/v1/me/relics?favorites=true", "")
	c.Set("user_id", uint(4))
	require.NoError(t, h.ListRelics(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.favoritesOnly)
	assert.JSONEq(t, `{"items":[],"page":1,"limit":20,"total":0}`, rec.Body.String())
}

func TestCollectionHandler_SetRelicFavorite(t *testing.T) {
	svc := &fakeCollection{}
	h := NewCollectionHandler(svc)

	c, rec := newContext(http.MethodPut, "/", `{"favorite":false}`)
	c.SetParamNames("id")
	c.SetParamValues("0b5d7c1e-3f2a-4c9b-8e61-6f0e2d8a9b10")
	c.Set("user_id", uint(4))
	require.NoError(t, h.SetRelicFavorite(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.favorite)
	assert.False(t, *svc.favorite)

	// the flag is required, a missing one must not silently unset favorites
	c, rec = newContext(http.MethodPut, "/", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("0b5d7c1e-3f2a-4c9b-8e61-6f0e2d8a9b10")
	c.Set("user_id", uint(4))
	require.NoError(t, h.SetRelicFavorite(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCollectionHandler_SetItemQuantity(t *testing.T) {
	svc := &fakeCollection{}
	h := NewCollectionHandler(svc)

	c, rec := newContext(http.MethodPut, "/", `{"quantity":0}`)
	c.SetParamNames("type", "item_id")
	c.SetParamValues("currency", "2")
	c.Set("user_id", uint(4))
	require.NoError(t, h.SetItemQuantity(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "currency", svc.itemType)
	assert.Equal(t, int64(0), svc.quantity)

	c, rec = newContext(http.MethodPut, "/", `{"quantity":-1}`)
	c.SetParamNames("type", "item_id")
	c.SetParamValues("currency", "2")
	c.Set("user_id", uint(4))
	require.NoError(t, h.SetItemQuantity(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
