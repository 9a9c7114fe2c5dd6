//go:build !integration

package relic

import (
	"context"
	"errors"
	"testing"

	"myStarCompanion/domain"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRelicRepo struct {
	relics  map[uint64]domain.Relic
	nextID  uint64
	gotPage domain.Page
	gotSlot string
}

func newFakeRelicRepo() *fakeRelicRepo {
	return &fakeRelicRepo{relics: make(map[uint64]domain.Relic)}
}

func (f *fakeRelicRepo) Create(ctx context.Context, relic *domain.Relic) error {
	f.nextID++
	relic.ID = f.nextID
	f.relics[relic.ID] = *relic
	return nil
}

func (f *fakeRelicRepo) FindByID(ctx context.Context, id uint64) (domain.Relic, error) {
	relic, ok := f.relics[id]
	if !ok {
		return domain.Relic{}, errors.New("relic not found")
	}
	return relic, nil
}

func (f *fakeRelicRepo) FindAll(ctx context.Context, page domain.Page, slot string) ([]domain.Relic, int64, error) {
	f.gotPage, f.gotSlot = page, slot
	var out []domain.Relic
	for _, r := range f.relics {
		if slot == "" || r.Slot == slot {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRelicRepo) Update(ctx context.Context, relic *domain.Relic) error {
	f.relics[relic.ID] = *relic
	return nil
}

func (f *fakeRelicRepo) Delete(ctx context.Context, id uint64) error {
	delete(f.relics, id)
	return nil
}

func TestCreateRelicInfersSlot(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Band's Polarized Sunglasses Head", "Head"},
		{"Eagle's Beaked Helmet Head", "Head"},
		{"Thief's Myriad-Faced Mask Hands", "Hands"},
		{"Pan-Cosmic Commercial Enterprise Sphere", "Sphere"},
		{"Talia: Nailscrap Town Link", "Link"},
		{"Messenger's Holovision Body", "Body"},
		{"Knight's Iron Boots Feet", "Feet"},
		{"Wayward Trinket", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRelicService(newFakeRelicRepo(), validator.New())

			relic, err := svc.CreateRelic(context.Background(), &domain.Relic{Name: tt.name, Rarity: 5})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relic.Slot)
		})
	}
}

func TestUpdateRelicReclassifies(t *testing.T) {
	repo := newFakeRelicRepo()
	svc := NewRelicService(repo, validator.New())
	ctx := context.Background()

	created, err := svc.CreateRelic(ctx, &domain.Relic{Name: "Guard's Cast Iron Helmet Head", Rarity: 5})
	require.NoError(t, err)

	updated, err := svc.UpdateRelic(ctx, &domain.Relic{ID: created.ID, Name: "Guard's Shining Gauntlets Hands", Rarity: 5})
	require.NoError(t, err)
	assert.Equal(t, "Hands", updated.Slot)
}

func TestCreateRelicValidation(t *testing.T) {
	svc := NewRelicService(newFakeRelicRepo(), validator.New())
	ctx := context.Background()

	_, err := svc.CreateRelic(ctx, &domain.Relic{Rarity: 5})
	assert.EqualError(t, err, "relic name is required")

	_, err = svc.CreateRelic(ctx, &domain.Relic{Name: "Head", Rarity: 6})
	assert.EqualError(t, err, "relic rarity must be between 2 and 5")

	_, err = svc.CreateRelic(ctx, &domain.Relic{Name: "Head", Rarity: 5, ImageURL: "not a url"})
	assert.EqualError(t, err, "invalid image url")
}

func TestGetAllRelicsSlotFilter(t *testing.T) {
	repo := newFakeRelicRepo()
	svc := NewRelicService(repo, validator.New())
	ctx := context.Background()

	_, err := svc.CreateRelic(ctx, &domain.Relic{Name: "Musketeer's Wild Wheat Felt Hat Head", Rarity: 5})
	require.NoError(t, err)
	_, err = svc.CreateRelic(ctx, &domain.Relic{Name: "Musketeer's Rivets Riding Boots Feet", Rarity: 5})
	require.NoError(t, err)

	res, err := svc.GetAllRelics(ctx, domain.Page{}, "Feet")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, "Feet", repo.gotSlot)
	assert.Equal(t, domain.Page{Page: 1, Limit: domain.DefaultPageLimit}, repo.gotPage)

	_, err = svc.GetAllRelics(ctx, domain.Page{}, "feet")
	assert.EqualError(t, err, "invalid relic slot")
}

func TestGetRelicByID(t *testing.T) {
	svc := NewRelicService(newFakeRelicRepo(), validator.New())

	_, err := svc.GetRelicByID(context.Background(), 0)
	assert.EqualError(t, err, "invalid relic id")

	_, err = svc.GetRelicByID(context.Background(), 9)
	assert.EqualError(t, err, "relic not found")
}

func TestRelicChangesNotifyOnRenameAndDelete(t *testing.T) {
	repo := newFakeRelicRepo()
	var events []domain.ChangeEvent
	svc := NewRelicService(repo, validator.New(), func(ctx context.Context, ev domain.ChangeEvent) {
		events = append(events, ev)
	})
	ctx := context.Background()

	created, err := svc.CreateRelic(ctx, &domain.Relic{Name: "Genius's Metafield Head", Rarity: 5})
	require.NoError(t, err)
	assert.Empty(t, events, "a new relic has no owners yet")

	_, err = svc.UpdateRelic(ctx, &domain.Relic{ID: created.ID, Name: "Genius's Metafield Head", Rarity: 4})
	require.NoError(t, err)
	assert.Empty(t, events, "same name keeps every owned copy in its slot")

	_, err = svc.UpdateRelic(ctx, &domain.Relic{ID: created.ID, Name: "Mystery Trinket", Rarity: 4})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.ChangeKindCatalogRelic, events[0].Kind)
	assert.Equal(t, "1", events[0].ItemID)

	require.NoError(t, svc.DeleteRelic(ctx, created.ID))
	require.Len(t, events, 2)
	assert.Equal(t, domain.ChangeKindCatalogRelic, events[1].Kind)

	// failed deletes do not notify
	assert.Error(t, svc.DeleteRelic(ctx, created.ID))
	assert.Len(t, events, 2)
}
