// Package nlu interprets free-text utterances: it classifies them into
// intents and extracts structured search constraints.
package nlu

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hearthline/estate-assistant/internal/model"
)

// Extraction patterns. Named so the matching rules stay auditable in one
// place.
var (
	// locationPattern captures the run of letters and spaces following
	// "in". Applied to the original-case utterance.
	locationPattern = regexp.MustCompile(`(?i)in\s+([a-zA-Z\s]+)`)

	// pricePattern matches "under $350k" style ceilings, with an
	// optional k/m magnitude suffix.
	pricePattern = regexp.MustCompile(`(?i)under\s+\$?(\d+(?:\.\d+)?)([kKmM])?`)
)

// categoryKeywords is checked in order; first substring match wins. The
// dwelling keywords come before the land ones, so "house on a large
// plot" still reads as a house query.
var categoryKeywords = []struct {
	keyword  string
	category model.Category
}{
	{"house", model.CategoryHouse},
	{"apartment", model.CategoryApartment},
	{"land", model.CategoryLand},
	{"plot", model.CategoryLand},
	{"acre", model.CategoryLand},
}

// Extract pulls the structured search constraints out of one utterance.
// It is pure and never fails: anything it cannot parse is left unset.
func Extract(utterance string) model.Filter {
	var f model.Filter

	lower := strings.ToLower(utterance)
	for _, ck := range categoryKeywords {
		if strings.Contains(lower, ck.keyword) {
			category := ck.category
			f.Category = &category
			break
		}
	}

	// The price phrase is stripped before the location pattern runs so
	// "in Denver under $350k" yields "Denver", not "Denver under".
	remainder := utterance
	if m := pricePattern.FindStringSubmatch(utterance); m != nil {
		if price, ok := parsePrice(m[1], m[2]); ok {
			f.MaxPrice = &price
		}
		remainder = strings.Replace(utterance, m[0], "", 1)
	}

	if m := locationPattern.FindStringSubmatch(remainder); m != nil {
		if loc := strings.TrimSpace(m[1]); loc != "" {
			f.Location = &loc
		}
	}

	return f
}

// parsePrice converts the matched numeric literal and magnitude suffix
// into whole currency units. A literal that fails to parse is treated as
// no match.
func parsePrice(number, suffix string) (int64, bool) {
	v, err := strconv.ParseFloat(number, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	switch strings.ToLower(suffix) {
	case "k":
		v *= 1_000
	case "m":
		v *= 1_000_000
	}
	return int64(v), true
}
