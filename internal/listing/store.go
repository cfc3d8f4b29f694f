// Package listing adapts external property stores into the display
// shape the assistant attaches to its replies.
package listing

import (
	"context"

	"github.com/hearthline/estate-assistant/internal/model"
)

// Store is the external listing search service, injected explicitly
// rather than read from ambient state.
//
// The two channels keep deliberately different location semantics:
// SearchGeneral matches the city field exactly, SearchLand prefix-matches
// the listing name. Callers must not assume they behave alike.
type Store interface {
	SearchGeneral(ctx context.Context, category *model.Category, location *string, maxPrice *int64) ([]model.Record, error)
	SearchLand(ctx context.Context, location *string) ([]model.Record, error)
}
