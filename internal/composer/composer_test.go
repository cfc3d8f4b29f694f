package composer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthline/estate-assistant/internal/model"
	"github.com/hearthline/estate-assistant/pkg/logger"
)

type stubLookup struct {
	listings []model.Summary
	err      error

	gotIntent model.Intent
	gotFilter model.Filter
}

func (s *stubLookup) Lookup(ctx context.Context, intent model.Intent, filter model.Filter) ([]model.Summary, error) {
	s.gotIntent = intent
	s.gotFilter = filter
	return s.listings, s.err
}

func summaries(n int) []model.Summary {
	out := make([]model.Summary, n)
	for i := range out {
		out[i] = model.Summary{ID: "lst", Title: "Listing", Price: 100000}
	}
	return out
}

func TestCompose_CannedReplies(t *testing.T) {
	c := New(&stubLookup{}, logger.NewNop())

	tests := []struct {
		intent model.Intent
		want   string
	}{
		{model.IntentPriceInquiry, priceReply},
		{model.IntentLocationInquiry, locationReply},
		{model.IntentContactInquiry, contactReply},
		{model.IntentGreeting, greetingReply},
		{model.IntentFallback, fallbackReply},
	}

	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			reply := c.Compose(context.Background(), tt.intent, "whatever")
			assert.Equal(t, tt.want, reply.Text)
			assert.Empty(t, reply.Listings)
		})
	}
}

func TestCompose_SearchWithResults(t *testing.T) {
	lookup := &stubLookup{listings: summaries(3)}
	c := New(lookup, logger.NewNop())

	reply := c.Compose(context.Background(), model.IntentGeneralSearch, "Looking for a house in Denver under $350k")

	assert.Equal(t, model.IntentGeneralSearch, lookup.gotIntent)
	require.NotNil(t, lookup.gotFilter.Category)
	assert.Equal(t, model.CategoryHouse, *lookup.gotFilter.Category)

	assert.Contains(t, reply.Text, "I found 3 house properties")
	assert.Contains(t, reply.Text, "located in Denver")
	assert.Contains(t, reply.Text, "$350,000")
	assert.Contains(t, reply.Text, "Here are some options")
	assert.Len(t, reply.Listings, 3)
}

func TestCompose_Pluralization(t *testing.T) {
	t.Run("single result", func(t *testing.T) {
		c := New(&stubLookup{listings: summaries(1)}, logger.NewNop())
		reply := c.Compose(context.Background(), model.IntentLandSearch, "land in Boulder")

		assert.Contains(t, reply.Text, "property")
		assert.NotContains(t, reply.Text, "properties")
		assert.Contains(t, reply.Text, "is")
	})

	t.Run("multiple results", func(t *testing.T) {
		c := New(&stubLookup{listings: summaries(2)}, logger.NewNop())
		reply := c.Compose(context.Background(), model.IntentLandSearch, "land in Boulder")

		assert.Contains(t, reply.Text, "properties")
		assert.Contains(t, reply.Text, "are")
	})
}

func TestCompose_NoResultsApologyVariants(t *testing.T) {
	t.Run("no filters asks for detail", func(t *testing.T) {
		c := New(&stubLookup{}, logger.NewNop())
		reply := c.Compose(context.Background(), model.IntentGeneralSearch, "show me something nice")

		assert.Contains(t, reply.Text, "more details")
		assert.Empty(t, reply.Listings)
	})

	t.Run("filters suggest broader search", func(t *testing.T) {
		c := New(&stubLookup{}, logger.NewNop())
		reply := c.Compose(context.Background(), model.IntentGeneralSearch, "a house in Denver under $10k")

		assert.Contains(t, reply.Text, "broader search")
		assert.Empty(t, reply.Listings)
	})
}

func TestCompose_LookupFailure(t *testing.T) {
	c := New(&stubLookup{err: errors.New("store down")}, logger.NewNop())

	reply := c.Compose(context.Background(), model.IntentLandSearch, "land in Boulder")

	assert.Equal(t, lookupFailedReply, reply.Text)
	assert.Empty(t, reply.Listings)
}

// A land query mentioning a budget still gets the budget clause in the
// reply even though the land channel never filters by price. Pinned
// source behavior; see the matching adapter test.
func TestCompose_LandBudgetClauseWithoutFilter(t *testing.T) {
	lookup := &stubLookup{listings: summaries(2)}
	c := New(lookup, logger.NewNop())

	reply := c.Compose(context.Background(), model.IntentLandSearch, "land in Boulder under $100k")

	assert.Contains(t, reply.Text, "$100,000")
	require.NotNil(t, lookup.gotFilter.MaxPrice)
}
