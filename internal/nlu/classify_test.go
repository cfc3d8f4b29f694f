package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hearthline/estate-assistant/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      model.Intent
	}{
		{"land keyword", "any land for sale?", model.IntentLandSearch},
		{"plot keyword", "I want a plot near the lake", model.IntentLandSearch},
		{"acre keyword", "a five acre parcel", model.IntentLandSearch},
		{"vacant property", "vacant property listings please", model.IntentLandSearch},
		{"house", "show me a house", model.IntentGeneralSearch},
		{"recommend", "can you recommend something?", model.IntentGeneralSearch},
		{"show me", "show me what you have", model.IntentGeneralSearch},
		{"price", "how much does it cost?", model.IntentPriceInquiry},
		{"expensive", "that seems expensive", model.IntentPriceInquiry},
		{"location", "what locations do you cover?", model.IntentLocationInquiry},
		{"contact", "how do I contact you?", model.IntentContactInquiry},
		{"agent", "I want to speak to an agent", model.IntentContactInquiry},
		{"hello", "Hello!", model.IntentGreeting},
		{"hey prefix", "hey there", model.IntentGreeting},
		{"hey prefix padded", "  Hey, anyone around?", model.IntentGreeting},
		{"empty", "", model.IntentFallback},
		{"unrelated", "what's the weather today?", model.IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.utterance))
		})
	}
}

// Land keywords outrank every later rule, so a query mixing land with
// price or location phrasing still routes to the land channel.
func TestClassify_PriorityOrder(t *testing.T) {
	tests := []struct {
		utterance string
		want      model.Intent
	}{
		{"land under $100k, what's the price?", model.IntentLandSearch},
		{"where can I find a plot?", model.IntentLandSearch},
		{"how expensive is a house?", model.IntentGeneralSearch},
		{"where is your office location?", model.IntentLocationInquiry},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.utterance))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, model.IntentGeneralSearch, Classify("suggest an apartment in Austin"))
	}
}
