package dialog

import (
	"fmt"
	"strings"

	"github.com/dkotenko/shopbot/internal/domain"
)

// User-visible bot replies. Internal failure detail never leaks here.
const (
	msgWelcome         = "Hi! I can help you find service shops near you.\n/findshops - search for nearby shops\n/cancel - abandon the current dialog"
	msgWelcomeAdmin    = "\n/addshop - register a new shop"
	msgUnauthorized    = "Sorry, only admins can add shops."
	msgPromptName      = "What is the shop's name?"
	msgPromptStreet    = "What is the street address?"
	msgPromptCity      = "Which city?"
	msgPromptState     = "Which state?"
	msgPromptZip       = "What is the shop's ZIP code?"
	msgPromptShopType  = "What type of shop is it?"
	msgPromptSearchZip = "What ZIP code should I search near?"
	msgPromptRadius    = "How many miles are you willing to travel?"
	msgPromptFindType  = "What type of shop are you looking for?"
	msgInvalidZip      = "Invalid ZIP code. Please start over."
	msgShopSaved       = "Got it, %s has been added."
	msgNoResults       = "No shops found in that area."
	msgFailure         = "Something went wrong. Please try again."
	msgCanceled        = "Okay, canceled."
	msgNothingActive   = "Nothing to cancel."
	msgResultsHeader   = "Here's what I found:"
)

// radiusChoices are the suggested radius values, in miles. Free-form numeric
// input is accepted too.
var radiusChoices = []string{"5", "10", "25", "50"}

// renderHits formats a ranked result list, one shop per line with a 1-based
// rank and the distance to one decimal.
func renderHits(hits []domain.SearchHit) string {
	var b strings.Builder
	b.WriteString(msgResultsHeader)
	for i, hit := range hits {
		fmt.Fprintf(&b, "\n%d. %s - %s (%s)",
			i+1, hit.Shop.Name, hit.Shop.Address(), domain.FormatMiles(hit.DistanceMiles))
	}
	return b.String()
}
