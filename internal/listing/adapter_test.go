package listing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthline/estate-assistant/internal/model"
)

// recordingStore captures channel arguments and replays canned results.
type recordingStore struct {
	generalCalls int
	landCalls    int

	lastCategory *model.Category
	lastLocation *string
	lastMaxPrice *int64

	records []model.Record
	err     error
}

func (s *recordingStore) SearchGeneral(ctx context.Context, category *model.Category, location *string, maxPrice *int64) ([]model.Record, error) {
	s.generalCalls++
	s.lastCategory = category
	s.lastLocation = location
	s.lastMaxPrice = maxPrice
	return s.records, s.err
}

func (s *recordingStore) SearchLand(ctx context.Context, location *string) ([]model.Record, error) {
	s.landCalls++
	s.lastLocation = location
	return s.records, s.err
}

func records(n int) []model.Record {
	out := make([]model.Record, n)
	for i := range out {
		out[i] = model.Record{
			ID:    fmt.Sprintf("lst-%d", i),
			Name:  fmt.Sprintf("Listing %d", i),
			Price: "100000",
		}
	}
	return out
}

func TestLookup_GeneralNormalization(t *testing.T) {
	store := &recordingStore{records: []model.Record{{
		ID:          "lst-1",
		Name:        "Modern Family Home",
		Description: "desc",
		Price:       "425000",
		ImageURLs:   []string{"a.jpg", "b.jpg"},
		Latitude:    39.7,
		Longitude:   -104.9,
	}}}
	adapter := NewAdapter(store)

	category := model.CategoryHouse
	location := "Denver"
	maxPrice := int64(500000)
	got, err := adapter.Lookup(context.Background(), model.IntentGeneralSearch, model.Filter{
		Category: &category,
		Location: &location,
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, "lst-1", s.ID)
	assert.Equal(t, "Modern Family Home", s.Title)
	assert.Equal(t, int64(425000), s.Price)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, s.Images)
	assert.Equal(t, generalBeds, s.Beds)
	assert.Equal(t, generalBaths, s.Baths)
	assert.Equal(t, generalArea, s.Area)
	assert.Equal(t, model.CategoryHouse, s.Category)
	require.NotNil(t, s.Coordinates)
	assert.Equal(t, 39.7, s.Coordinates.Lat)

	assert.Equal(t, 1, store.generalCalls)
	assert.Equal(t, 0, store.landCalls)
	require.NotNil(t, store.lastMaxPrice)
	assert.Equal(t, int64(500000), *store.lastMaxPrice)
}

func TestLookup_LandNormalization(t *testing.T) {
	store := &recordingStore{records: records(1)}
	adapter := NewAdapter(store)

	got, err := adapter.Lookup(context.Background(), model.IntentLandSearch, model.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, model.CategoryLand, got[0].Category)
	assert.Zero(t, got[0].Beds)
	assert.Zero(t, got[0].Baths)
	assert.Equal(t, landArea, got[0].Area)
}

// The land channel is queried by location only. The extracted price
// ceiling never reaches the store; it only appears in the reply text.
// Preserved source behavior, pinned here so it cannot change silently.
func TestLookup_LandIgnoresPrice(t *testing.T) {
	store := &recordingStore{records: records(1)}
	adapter := NewAdapter(store)

	location := "Boulder"
	maxPrice := int64(100000)
	_, err := adapter.Lookup(context.Background(), model.IntentLandSearch, model.Filter{
		Location: &location,
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, store.landCalls)
	assert.Equal(t, 0, store.generalCalls)
	require.NotNil(t, store.lastLocation)
	assert.Equal(t, "Boulder", *store.lastLocation)
}

func TestLookup_CapsAtThree(t *testing.T) {
	store := &recordingStore{records: records(7)}
	adapter := NewAdapter(store)

	got, err := adapter.Lookup(context.Background(), model.IntentGeneralSearch, model.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, maxResults)
	// Store order is preserved; truncation happens after normalization.
	assert.Equal(t, "lst-0", got[0].ID)
	assert.Equal(t, "lst-2", got[2].ID)
}

func TestLookup_LandCategoryNotSentToGeneralChannel(t *testing.T) {
	store := &recordingStore{}
	adapter := NewAdapter(store)

	category := model.CategoryLand
	_, err := adapter.Lookup(context.Background(), model.IntentGeneralSearch, model.Filter{Category: &category})
	require.NoError(t, err)

	assert.Nil(t, store.lastCategory)
}

func TestLookup_StoreError(t *testing.T) {
	store := &recordingStore{err: errors.New("connection refused")}
	adapter := NewAdapter(store)

	_, err := adapter.Lookup(context.Background(), model.IntentGeneralSearch, model.Filter{})
	assert.Error(t, err)

	_, err = adapter.Lookup(context.Background(), model.IntentLandSearch, model.Filter{})
	assert.Error(t, err)
}

func TestLookup_UnparseablePrice(t *testing.T) {
	store := &recordingStore{records: []model.Record{{ID: "lst-1", Price: "n/a"}}}
	adapter := NewAdapter(store)

	got, err := adapter.Lookup(context.Background(), model.IntentGeneralSearch, model.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Price)
}
