package model

// Category is a listed property type, as extracted from an utterance.
type Category string

const (
	CategoryHouse     Category = "House"
	CategoryApartment Category = "Apartment"
	CategoryLand      Category = "Land"
)

// Filter holds the structured constraints extracted from a single
// utterance. A nil field means "no constraint", never a wildcard. A
// fresh Filter is built per turn and not mutated afterwards.
type Filter struct {
	Category *Category `json:"category,omitempty"`
	Location *string   `json:"location,omitempty"`
	MaxPrice *int64    `json:"max_price,omitempty"`
}

// Empty reports whether no constraint was extracted.
func (f Filter) Empty() bool {
	return f.Category == nil && f.Location == nil && f.MaxPrice == nil
}

// Intent is the classified purpose of an utterance, from a closed set.
// Exactly one intent is assigned per utterance.
type Intent string

const (
	IntentLandSearch      Intent = "land_search"
	IntentGeneralSearch   Intent = "general_search"
	IntentPriceInquiry    Intent = "price_inquiry"
	IntentLocationInquiry Intent = "location_inquiry"
	IntentContactInquiry  Intent = "contact_inquiry"
	IntentGreeting        Intent = "greeting"
	IntentFallback        Intent = "fallback"
)
