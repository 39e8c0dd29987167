package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"atelierapi/dbhelper"
	"atelierapi/models"
	"atelierapi/store"
	"atelierapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleItems() []models.Item {
	created := time.Date(2026, 10, 1, 9, 30, 0, 123000000, time.UTC)
	return []models.Item{
		{ID: "i2", Name: "Pink knit sweater", Category: models.CategoryTop, CreatedAt: created.Add(time.Hour)},
		{ID: "i1", Name: "Wide jeans", Category: models.CategoryBottom, Image: test.NewRefString("data:image/png;base64,AAAA"), CreatedAt: created},
	}
}

func backends(t *testing.T) map[string]store.Store {
	t.Helper()

	db := dbhelper.SetupTestDB()
	t.Cleanup(func() { _ = dbhelper.Close(db) })

	cached, err := store.NewCachedStore(store.NewMemoryStore())
	require.NoError(t, err)

	return map[string]store.Store{
		"memory": store.NewMemoryStore(),
		"gorm":   store.NewGormStore(db),
		"cached": cached,
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			items := sampleItems()
			require.NoError(t, store.SaveRecords(ctx, s, store.ItemsCollection, items))

			loaded := store.LoadRecords[models.Item](ctx, s, store.ItemsCollection)
			assert.Equal(t, items, loaded)

			outfits := []models.Outfit{{
				ID:        "o1",
				Name:      "Look A",
				Vibe:      models.VibeParty,
				ItemIDs:   []string{"i2", "i1"},
				Slots:     models.Slots{models.SlotTop: "i2", models.SlotBottom: "i1"},
				CreatedAt: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
			}}
			require.NoError(t, store.SaveRecords(ctx, s, store.OutfitsCollection, outfits))
			assert.Equal(t, outfits, store.LoadRecords[models.Outfit](ctx, s, store.OutfitsCollection))
		})
	}
}

func TestSaveReplacesValue(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			items := sampleItems()
			require.NoError(t, store.SaveRecords(ctx, s, store.ItemsCollection, items))
			// prime the cache for the cached backend
			store.LoadRecords[models.Item](ctx, s, store.ItemsCollection)

			require.NoError(t, store.SaveRecords(ctx, s, store.ItemsCollection, items[:1]))
			assert.Equal(t, items[:1], store.LoadRecords[models.Item](ctx, s, store.ItemsCollection))
		})
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			loaded := store.LoadRecords[models.Outfit](context.Background(), s, store.OutfitsCollection)
			assert.NotNil(t, loaded)
			assert.Empty(t, loaded)
		})
	}
}

func TestLoadUnparsableIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(ctx, string(store.ItemsCollection), []byte(`{"not": "an array"`)))

	loaded := store.LoadRecords[models.Item](ctx, s, store.ItemsCollection)
	assert.Empty(t, loaded)
}

func TestLoadNullIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(ctx, string(store.ItemsCollection), []byte(`null`)))

	loaded := store.LoadRecords[models.Item](ctx, s, store.ItemsCollection)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestLoadBackendFailureIsEmpty(t *testing.T) {
	s := &test.StoreMock{}
	s.On("Load", mock.Anything, string(store.ItemsCollection)).Return(nil, errors.New("disk on fire")).Once()

	loaded := store.LoadRecords[models.Item](context.Background(), s, store.ItemsCollection)
	assert.Empty(t, loaded)
	s.AssertExpectations(t)
}

func TestSaveFailureIsStorageWriteError(t *testing.T) {
	s := &test.StoreMock{}
	s.On("Save", mock.Anything, string(store.OutfitsCollection), mock.Anything).Return(errors.New("quota exceeded")).Once()

	err := store.SaveRecords(context.Background(), s, store.OutfitsCollection, []models.Outfit{})
	var writeErr *models.StorageWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, string(store.OutfitsCollection), writeErr.Collection)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, store.SaveRecords[models.Item](ctx, s, store.ItemsCollection, nil))

	raw, err := s.Load(ctx, string(store.ItemsCollection))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	value := []byte("[1]")
	require.NoError(t, s.Save(ctx, "k", value))
	value[1] = '2'

	raw, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(raw))

	_, err = s.Load(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
