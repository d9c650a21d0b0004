package composer

import "github.com/felixgeelhaar/haggle-go/domain/dialogue"

// Line banks. Entries with %d are formatted with a price; nothing here may
// ever carry the reservation price or the sub-floor.

var neutralOpeners = []string{
	"Hi! The iPad is brand new and sealed. The price is %d €. Happy to answer any questions.",
	"Hello! I'm selling a new, sealed iPad for %d €. Let me know what you think.",
	"Hi there. The iPad is factory sealed, asking %d €.",
}

var powerOpeners = []string{
	"I'm setting the frame at %d €. That's the range I close in.",
	"Let's be efficient: the price currently stands at %d €.",
	"I prioritize committed buyers. The current frame is %d €.",
}

var empathy = []string{
	"I see your point.",
	"Thanks for being upfront.",
	"I can understand that.",
	"That sounds reasonable.",
	"I see where you're going with this.",
}

var justifications = []string{
	"It's new and factory sealed, with zero signs of use.",
	"You get it immediately, no shipping delays.",
	"Just under list is a fair price for brand-new stock.",
	"New and sealed holds its resale value much better.",
	"Compared to a used one you avoid every risk.",
}

var argBank = map[dialogue.Intent][]string{
	dialogue.IntentStudent: {
		"Especially for studies, reliability matters; new and sealed delivers exactly that.",
		"I'll meet you part of the way so we can wrap this up quickly.",
	},
	dialogue.IntentBudget: {
		"I understand a tight budget; I'll stay fair, but not below value.",
		"Fairness yes, below value no.",
	},
	dialogue.IntentCheaper: {
		"Many supposedly cheaper listings are promotions, older batches, or demo units.",
		"With cheaper listings it's often not actually new and sealed.",
	},
	dialogue.IntentCondition: {
		"Factory sealed is priced differently from 'like new'.",
		"New means zero cycles and no surprises; that justifies just under list.",
	},
	dialogue.IntentImmediacy: {
		"If you're in a hurry, you can have it today; that's worth something too.",
		"Saving time costs as well.",
	},
	dialogue.IntentCash: {
		"Cash payment works; nice and simple.",
	},
	dialogue.IntentPickup: {
		"Pickup is no problem; you can check the seal on the spot.",
	},
	dialogue.IntentShipping: {
		"Shipping is possible, well packed; pickup is easier though.",
	},
	dialogue.IntentWarranty: {
		"Manufacturer support starts at activation.",
	},
}

var neutralClosers = []string{
	"How does that sound to you?",
	"Would that be okay for you?",
	"Can we settle on that?",
	"Does that work for you?",
}

// Power rebukes, staged by lowball severity, blunt but not insulting.

var powerRebukeTier1 = []string{
	"That's not a serious offer for a new, sealed device.",
	"You wouldn't even get a demo unit at that level.",
	"That's far outside any realistic range.",
}

var powerRebukeTier2 = []string{
	"That's well below market value.",
	"You're way off what's defensible for new and sealed.",
	"That's more wish than offer; it isn't realistic.",
}

var powerRebukeTier3 = []string{
	"That's clearly too low for new and sealed.",
	"Much too far off; we won't get anywhere like this.",
	"That's well outside my range.",
}

var powerPush = []string{
	"Give me your best current offer, short and concrete.",
	"Tell me why I should go lower.",
	"If %d € doesn't work, let's wrap this up cleanly.",
}

var powerClosers = []string{
	"I'm staying at %d €; if that works, we have a deal.",
	"I'll keep %d € open briefly; otherwise we end this fairly.",
	"If %d € works, we close now.",
}

var powerNudgePause = []string{
	"I don't have forever.",
	"There are plenty of other interested buyers.",
	"Without a committed offer we'd better end this.",
}

var powerNudgeTimed = []string{
	"I have an appointment shortly; let's close this out.",
	"Someone else is coming to look at the iPad soon.",
	"I won't keep the offer open for long.",
}

var declineLines = []string{
	"Pity, but I won't let it go below that. I'm staying in my range.",
	"Thanks for negotiating! I'm priced higher; I can't come down that far.",
	"I understand your point, but I don't close below my range.",
}
