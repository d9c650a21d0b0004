package dialogue

import "strings"

// acceptanceKeywords are the phrases that signal explicit acceptance.
// Detection runs before any price logic on every buyer turn.
var acceptanceKeywords = []string{
	"deal",
	"agreed",
	"accepted",
	"i accept",
	"works for me",
	"i'll take it",
	"ill take it",
	"sold",
	"let's do it",
	"lets do it",
}

// Acceptance is the result of acceptance detection on one buyer message.
type Acceptance struct {
	// Explicit is true when the text contains an acceptance phrase.
	Explicit bool

	// Price is the embedded amount, valid only when HasPrice is true.
	Price    int
	HasPrice bool
}

// DetectAcceptance checks buyer text for an explicit acceptance phrase and
// extracts any accompanying price. An acceptance without a price accepts
// the seller's standing offer; an acceptance with a price is only binding
// inside the sellable range, which the session decides.
func DetectAcceptance(text string) Acceptance {
	lower := strings.ToLower(text)

	var a Acceptance
	for _, kw := range acceptanceKeywords {
		if strings.Contains(lower, kw) {
			a.Explicit = true
			break
		}
	}
	a.Price, a.HasPrice = ParsePrice(text)
	return a
}
