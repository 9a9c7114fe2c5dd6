//go:build !integration

package character

import (
	"context"
	"errors"
	"testing"

	"myStarCompanion/domain"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCharacterRepo struct {
	characters map[uint64]domain.Character
	nextID     uint64
}

func newFakeCharacterRepo() *fakeCharacterRepo {
	return &fakeCharacterRepo{characters: make(map[uint64]domain.Character)}
}

func (f *fakeCharacterRepo) Create(ctx context.Context, character *domain.Character) error {
	for _, c := range f.characters {
		if c.Name == character.Name {
			return errors.New("character already exists")
		}
	}
	f.nextID++
	character.ID = f.nextID
	f.characters[character.ID] = *character
	return nil
}

func (f *fakeCharacterRepo) FindByID(ctx context.Context, id uint64) (domain.Character, error) {
	c, ok := f.characters[id]
	if !ok {
		return domain.Character{}, errors.New("character not found")
	}
	return c, nil
}

func (f *fakeCharacterRepo) FindAll(ctx context.Context, page domain.Page) ([]domain.Character, int64, error) {
	out := make([]domain.Character, 0, len(f.characters))
	for _, c := range f.characters {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCharacterRepo) Update(ctx context.Context, character *domain.Character) error {
	f.characters[character.ID] = *character
	return nil
}

func (f *fakeCharacterRepo) Delete(ctx context.Context, id uint64) error {
	delete(f.characters, id)
	return nil
}

func TestCreateCharacter(t *testing.T) {
	svc := NewCharacterService(newFakeCharacterRepo(), validator.New())
	ctx := context.Background()

	created, err := svc.CreateCharacter(ctx, &domain.Character{Name: "Kafka", Rarity: 5, Path: "Nihility", Element: "Lightning"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID)

	_, err = svc.CreateCharacter(ctx, &domain.Character{Name: "Kafka", Rarity: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateCharacterValidation(t *testing.T) {
	svc := NewCharacterService(newFakeCharacterRepo(), validator.New())
	ctx := context.Background()

	tests := []struct {
		name      string
		character domain.Character
		wantErr   string
	}{
		{"missing name", domain.Character{Rarity: 5}, "character name is required"},
		{"rarity three", domain.Character{Name: "Arlan", Rarity: 3}, "character rarity must be 4 or 5"},
		{"bad image", domain.Character{Name: "Arlan", Rarity: 4, ImageURL: "not-a-url"}, "invalid image url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.character
			_, err := svc.CreateCharacter(ctx, &c)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestGetAllCharactersPaginates(t *testing.T) {
	repo := newFakeCharacterRepo()
	svc := NewCharacterService(repo, validator.New())
	ctx := context.Background()

	for _, name := range []string{"Himeko", "Welt", "Bronya"} {
		_, err := svc.CreateCharacter(ctx, &domain.Character{Name: name, Rarity: 5})
		require.NoError(t, err)
	}

	res, err := svc.GetAllCharacters(ctx, domain.Page{Page: 0, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, domain.MaxPageLimit, res.Limit)
	assert.Equal(t, int64(3), res.Total)
}

func TestUpdateAndDeleteCharacter(t *testing.T) {
	svc := NewCharacterService(newFakeCharacterRepo(), validator.New())
	ctx := context.Background()

	created, err := svc.CreateCharacter(ctx, &domain.Character{Name: "March 7th", Rarity: 4})
	require.NoError(t, err)

	updated, err := svc.UpdateCharacter(ctx, &domain.Character{ID: created.ID, Name: "March 7th", Rarity: 4, Path: "Preservation"})
	require.NoError(t, err)
	assert.Equal(t, "Preservation", updated.Path)

	_, err = svc.UpdateCharacter(ctx, &domain.Character{ID: 99, Name: "Nobody", Rarity: 4})
	assert.EqualError(t, err, "character not found")

	require.NoError(t, svc.DeleteCharacter(ctx, created.ID))
	assert.EqualError(t, svc.DeleteCharacter(ctx, created.ID), "character not found")
	assert.EqualError(t, svc.DeleteCharacter(ctx, 0), "invalid character id")
}
