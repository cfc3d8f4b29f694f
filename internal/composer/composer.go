// Package composer builds the assistant's natural-language replies.
package composer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hearthline/estate-assistant/internal/model"
	"github.com/hearthline/estate-assistant/internal/nlu"
	"github.com/hearthline/estate-assistant/pkg/logger"
)

// Canned reply templates for the non-search intents, plus the fixed
// apologies. The search wording is assembled in foundText.
const (
	priceReply    = "Our properties range from $200,000 for starter homes to $5,000,000 for luxury estates. The price varies based on location, size, and amenities. What's your budget range? I'd be happy to find properties that fit within it."
	locationReply = "We have properties in various premium locations across the country, including beachfront properties, urban apartments, and countryside estates. Is there a particular area you're interested in exploring?"
	contactReply  = "You can reach our team at (555) 123-4567 or visit our Contact page. Our agents are available Monday to Friday from 9 AM to 6 PM. Would you like me to help schedule a call with one of our agents?"
	greetingReply = "Hi there! I'm your personal real estate assistant. I can help you find properties, answer questions about pricing or locations, or connect you with our team. What can I assist you with today?"
	fallbackReply = "I'd be happy to help with your real estate needs. Are you looking for property recommendations, information about pricing, or details about specific locations? Feel free to ask anything about our properties and services."

	lookupFailedReply = "I apologize, but I encountered an issue while searching for properties. Could we try again in a moment?"

	noMatchPrefix      = "I couldn't find any properties that match exactly what you're looking for. "
	noMatchBroaderHint = "Would you like to try a broader search? Perhaps with a different location or price range?"
	noMatchDetailHint  = "Could you provide more details about what you're looking for, such as location, price range, or property type?"
)

// Reply is the composed assistant response for one turn.
type Reply struct {
	Text     string
	Listings []model.Summary
}

// Lookup is the slice of the listing adapter the composer depends on.
type Lookup interface {
	Lookup(ctx context.Context, intent model.Intent, filter model.Filter) ([]model.Summary, error)
}

// Composer turns a classified utterance into reply text plus any
// listings to display.
type Composer struct {
	lookup  Lookup
	logger  *logger.Logger
	printer *message.Printer
}

// New creates a composer over the given lookup.
func New(lookup Lookup, log *logger.Logger) *Composer {
	return &Composer{
		lookup:  lookup,
		logger:  log,
		printer: message.NewPrinter(language.English),
	}
}

// Compose builds the reply for one utterance. Lookup failures surface to
// the user as a fixed apology and are never propagated.
func (c *Composer) Compose(ctx context.Context, intent model.Intent, utterance string) Reply {
	switch intent {
	case model.IntentLandSearch, model.IntentGeneralSearch:
		return c.composeSearch(ctx, intent, utterance)
	case model.IntentPriceInquiry:
		return Reply{Text: priceReply}
	case model.IntentLocationInquiry:
		return Reply{Text: locationReply}
	case model.IntentContactInquiry:
		return Reply{Text: contactReply}
	case model.IntentGreeting:
		return Reply{Text: greetingReply}
	default:
		return Reply{Text: fallbackReply}
	}
}

func (c *Composer) composeSearch(ctx context.Context, intent model.Intent, utterance string) Reply {
	filter := nlu.Extract(utterance)

	listings, err := c.lookup.Lookup(ctx, intent, filter)
	if err != nil {
		c.logger.Error("listing lookup failed",
			zap.String("intent", string(intent)),
			zap.Error(err),
		)
		return Reply{Text: lookupFailedReply}
	}

	if len(listings) == 0 {
		if filter.Empty() {
			return Reply{Text: noMatchPrefix + noMatchDetailHint}
		}
		return Reply{Text: noMatchPrefix + noMatchBroaderHint}
	}

	return Reply{Text: c.foundText(filter, len(listings)), Listings: listings}
}

// foundText states the result count with correct pluralization, then
// appends the location and budget clauses for the constraints that were
// actually extracted, and closes with an invitation.
func (c *Composer) foundText(filter model.Filter, count int) string {
	var b strings.Builder

	singular := count == 1
	noun := "properties"
	if singular {
		noun = "property"
	}

	if filter.Category != nil {
		fmt.Fprintf(&b, "I found %d %s %s that might interest you! ",
			count, strings.ToLower(string(*filter.Category)), noun)
	} else {
		fmt.Fprintf(&b, "I found %d %s that might match what you're looking for! ", count, noun)
	}

	if filter.Location != nil {
		if singular {
			fmt.Fprintf(&b, "It is located in %s as requested. ", *filter.Location)
		} else {
			fmt.Fprintf(&b, "They're located in %s as requested. ", *filter.Location)
		}
	}

	if filter.MaxPrice != nil {
		b.WriteString(c.printer.Sprintf("All within your budget of $%d. ", *filter.MaxPrice))
	}

	if singular {
		b.WriteString("Here is an option I think you'll love:")
	} else {
		b.WriteString("Here are some options I think you'll love:")
	}

	return b.String()
}
