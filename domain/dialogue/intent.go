package dialogue

import "strings"

// Intent is one rhetorical category a buyer message may carry. Intents are
// purely advisory: they pick justification snippets and never influence
// the numeric price policy.
type Intent string

const (
	IntentStudent   Intent = "student"   // Student / university framing
	IntentBudget    Intent = "budget"    // Budget pressure
	IntentCheaper   Intent = "cheaper"   // "Cheaper elsewhere" comparison
	IntentCondition Intent = "condition" // Item-condition concern
	IntentImmediacy Intent = "immediacy" // Urgency
	IntentCash      Intent = "cash"      // Cash payment
	IntentPickup    Intent = "pickup"    // Pickup preference
	IntentShipping  Intent = "shipping"  // Shipping preference
	IntentWarranty  Intent = "warranty"  // Warranty / invoice concern
)

// intentKeywords maps each category to its fixed keyword list. Matching is
// case-insensitive substring membership.
var intentKeywords = map[Intent][]string{
	IntentStudent:   {"student", "university", "college", "studying"},
	IntentBudget:    {"budget", "expensive", "can't afford", "cannot afford", "tight", "broke"},
	IntentCheaper:   {"cheaper", "better offer", "price comparison", "elsewhere", "somewhere else", "other listing"},
	IntentCondition: {"used", "scratch", "condition", "refurbished"},
	IntentImmediacy: {"urgent", "in a hurry", "today", "right away", "tomorrow", "asap"},
	IntentCash:      {"cash"},
	IntentPickup:    {"pick up", "pickup", "collect"},
	IntentShipping:  {"ship", "post", "deliver"},
	IntentWarranty:  {"warranty", "guarantee", "invoice", "receipt", "applecare"},
}

// intentPriority is the fixed order in which matched categories are turned
// into justification snippets (at most two are used).
var intentPriority = []Intent{
	IntentStudent,
	IntentBudget,
	IntentCheaper,
	IntentCondition,
	IntentImmediacy,
	IntentPickup,
	IntentCash,
	IntentShipping,
	IntentWarranty,
}

// ClassifyIntents flags the rhetorical categories present in buyer text.
func ClassifyIntents(text string) map[Intent]bool {
	lower := strings.ToLower(text)
	flags := make(map[Intent]bool, len(intentKeywords))
	for intent, keywords := range intentKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				flags[intent] = true
				break
			}
		}
	}
	return flags
}

// IntentPriority returns the fixed snippet-selection order.
func IntentPriority() []Intent {
	order := make([]Intent, len(intentPriority))
	copy(order, intentPriority)
	return order
}
