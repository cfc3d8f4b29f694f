package nlu

import (
	"strings"

	"github.com/hearthline/estate-assistant/internal/model"
)

// rule pairs an intent with its keyword predicate. Rules are evaluated
// in priority order on the lower-cased utterance and the first match
// wins, so an utterance mentioning both land and price classifies as a
// land search.
type rule struct {
	intent model.Intent
	match  func(lower string) bool
}

var rules = []rule{
	{model.IntentLandSearch, func(s string) bool {
		return containsAny(s, "land", "plot", "acre") ||
			(strings.Contains(s, "property") && strings.Contains(s, "vacant"))
	}},
	{model.IntentGeneralSearch, func(s string) bool {
		return containsAny(s, "property", "house", "apartment", "recommend", "suggest", "show me")
	}},
	{model.IntentPriceInquiry, func(s string) bool {
		return containsAny(s, "price", "cost", "expensive")
	}},
	{model.IntentLocationInquiry, func(s string) bool {
		return containsAny(s, "location", "where", "area")
	}},
	{model.IntentContactInquiry, func(s string) bool {
		return containsAny(s, "contact", "speak", "agent", "call")
	}},
	{model.IntentGreeting, func(s string) bool {
		return containsAny(s, "hello", "hi") ||
			strings.HasPrefix(strings.TrimSpace(s), "hey")
	}},
}

// Classify assigns exactly one intent to an utterance. It is pure,
// deterministic and total: IntentFallback is the catch-all.
func Classify(utterance string) model.Intent {
	lower := strings.ToLower(utterance)
	for _, r := range rules {
		if r.match(lower) {
			return r.intent
		}
	}
	return model.IntentFallback
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
