package listing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hearthline/estate-assistant/internal/model"
	"github.com/hearthline/estate-assistant/pkg/metrics"
)

// Display cap and synthesized attributes. The upstream schema carries no
// bed/bath/area data, so normalized summaries use fixed placeholders.
const (
	maxResults = 3

	generalBeds  = 3
	generalBaths = 2
	generalArea  = 1500

	landArea = 5000
)

// Adapter routes an extracted filter to the store channel matching the
// intent and normalizes the raw records for display. Results keep the
// store's order and are truncated to maxResults after normalization.
type Adapter struct {
	store Store
}

// NewAdapter creates a lookup adapter over the given store.
func NewAdapter(store Store) *Adapter {
	return &Adapter{store: store}
}

// Lookup executes the search for one turn. Land searches query by
// location only: the extracted price ceiling is not forwarded to the
// land channel and surfaces solely in the composed reply text.
func (a *Adapter) Lookup(ctx context.Context, intent model.Intent, filter model.Filter) ([]model.Summary, error) {
	if intent == model.IntentLandSearch {
		records, err := a.searchTimed(ctx, "land", func(ctx context.Context) ([]model.Record, error) {
			return a.store.SearchLand(ctx, filter.Location)
		})
		if err != nil {
			return nil, fmt.Errorf("land search: %w", err)
		}
		return truncate(normalizeLand(records)), nil
	}

	category := filter.Category
	if category != nil && *category == model.CategoryLand {
		// Land queries belong to the land channel.
		category = nil
	}
	records, err := a.searchTimed(ctx, "general", func(ctx context.Context) ([]model.Record, error) {
		return a.store.SearchGeneral(ctx, category, filter.Location, filter.MaxPrice)
	})
	if err != nil {
		return nil, fmt.Errorf("general search: %w", err)
	}
	return truncate(normalizeGeneral(records, category)), nil
}

func (a *Adapter) searchTimed(ctx context.Context, channel string, search func(context.Context) ([]model.Record, error)) ([]model.Record, error) {
	start := time.Now()
	records, err := search(ctx)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordLookup(channel, status, time.Since(start).Seconds())
	return records, err
}

func normalizeGeneral(records []model.Record, category *model.Category) []model.Summary {
	out := make([]model.Summary, 0, len(records))
	for _, r := range records {
		s := baseSummary(r)
		s.Beds = generalBeds
		s.Baths = generalBaths
		s.Area = generalArea
		if category != nil {
			s.Category = *category
		}
		out = append(out, s)
	}
	return out
}

func normalizeLand(records []model.Record) []model.Summary {
	out := make([]model.Summary, 0, len(records))
	for _, r := range records {
		s := baseSummary(r)
		s.Category = model.CategoryLand
		s.Area = landArea
		out = append(out, s)
	}
	return out
}

func baseSummary(r model.Record) model.Summary {
	return model.Summary{
		ID:          r.ID,
		Title:       r.Name,
		Description: r.Description,
		Price:       parsePrice(r.Price),
		Images:      r.ImageURLs,
		Coordinates: &model.Coordinates{Lat: r.Latitude, Lng: r.Longitude},
	}
}

// parsePrice tolerates the upstream numeric-string price field; an
// unparseable price normalizes to zero rather than failing the lookup.
func parsePrice(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return int64(v)
	}
	return 0
}

func truncate(summaries []model.Summary) []model.Summary {
	if len(summaries) > maxResults {
		return summaries[:maxResults]
	}
	return summaries
}
