package listing

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/hearthline/estate-assistant/internal/model"
)

// Entry is one seeded listing together with the fields the store
// channels filter on.
type Entry struct {
	Record model.Record
	Type   model.Category
	City   string
}

// MemoryStore is an in-memory Store used in development and tests. It
// applies the same channel semantics as the Postgres store: city
// equality on the general channel, name prefix on the land channel.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore creates a store over the given entries.
func NewMemoryStore(entries ...Entry) *MemoryStore {
	return &MemoryStore{entries: entries}
}

// Add appends entries to the store.
func (s *MemoryStore) Add(entries ...Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
}

// SearchGeneral filters the seeded entries by category, city and price
// ceiling.
func (s *MemoryStore) SearchGeneral(ctx context.Context, category *model.Category, location *string, maxPrice *int64) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Record
	for _, e := range s.entries {
		if category != nil && e.Type != *category {
			continue
		}
		if location != nil && e.City != *location {
			continue
		}
		if maxPrice != nil {
			price, err := strconv.ParseFloat(e.Record.Price, 64)
			if err != nil || int64(price) > *maxPrice {
				continue
			}
		}
		out = append(out, e.Record)
	}
	return out, nil
}

// SearchLand returns land entries whose name starts with the location
// text.
func (s *MemoryStore) SearchLand(ctx context.Context, location *string) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Record
	for _, e := range s.entries {
		if e.Type != model.CategoryLand {
			continue
		}
		if location != nil && !strings.HasPrefix(e.Record.Name, *location) {
			continue
		}
		out = append(out, e.Record)
	}
	return out, nil
}

// SeedEntries returns the development fixture set.
func SeedEntries() []Entry {
	return []Entry{
		{
			Record: model.Record{
				ID:          "lst-1001",
				Name:        "Modern Family Home",
				Description: "Four bedroom home with a landscaped garden and a double garage.",
				Price:       "425000",
				ImageURLs:   []string{"https://images.example.com/lst-1001/1.jpg"},
				Latitude:    39.7392,
				Longitude:   -104.9903,
			},
			Type: model.CategoryHouse,
			City: "Denver",
		},
		{
			Record: model.Record{
				ID:          "lst-1002",
				Name:        "Downtown Loft Apartment",
				Description: "Open-plan loft two blocks from the central station.",
				Price:       "310000",
				ImageURLs:   []string{"https://images.example.com/lst-1002/1.jpg"},
				Latitude:    39.7475,
				Longitude:   -104.9970,
			},
			Type: model.CategoryApartment,
			City: "Denver",
		},
		{
			Record: model.Record{
				ID:          "lst-1003",
				Name:        "Lakeside Cottage",
				Description: "Two bedroom cottage with private lake access.",
				Price:       "289000",
				ImageURLs:   []string{"https://images.example.com/lst-1003/1.jpg"},
				Latitude:    44.9778,
				Longitude:   -93.2650,
			},
			Type: model.CategoryHouse,
			City: "Minneapolis",
		},
		{
			Record: model.Record{
				ID:          "lst-2001",
				Name:        "Boulder Ridge Parcel",
				Description: "Five acre parcel with mountain views and road access.",
				Price:       "150000",
				ImageURLs:   []string{"https://images.example.com/lst-2001/1.jpg"},
				Latitude:    40.0150,
				Longitude:   -105.2705,
			},
			Type: model.CategoryLand,
			City: "Boulder",
		},
		{
			Record: model.Record{
				ID:          "lst-2002",
				Name:        "Boulder Creek Lot",
				Description: "Half acre creekside lot zoned residential.",
				Price:       "98000",
				ImageURLs:   []string{"https://images.example.com/lst-2002/1.jpg"},
				Latitude:    40.0176,
				Longitude:   -105.2797,
			},
			Type: model.CategoryLand,
			City: "Boulder",
		},
	}
}
