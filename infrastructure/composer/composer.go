// Package composer renders seller text from phase tags and offers. The
// numbers always come from the offer engine; this package only words them.
package composer

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/felixgeelhaar/haggle-go/domain/dialogue"
	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

// Template is the canned-line composer. Line selection is pluggable: the
// deterministic variant always takes the first line of a bank, the random
// variant samples from a seeded source. Price decisions never depend on
// which variant is used.
type Template struct {
	listPrice int
	pick      func(n int) int
}

var _ dialogue.Composer = (*Template)(nil)

// NewDeterministic creates a composer that always picks the first line of
// each bank. Used in tests.
func NewDeterministic(listPrice int) *Template {
	return &Template{
		listPrice: listPrice,
		pick:      func(int) int { return 0 },
	}
}

// NewRandom creates a composer with seeded line sampling.
func NewRandom(listPrice int, seed int64) *Template {
	rng := rand.New(rand.NewSource(seed))
	return &Template{
		listPrice: listPrice,
		pick:      rng.Intn,
	}
}

func (t *Template) choose(lines []string) string {
	return lines[t.pick(len(lines))]
}

func (t *Template) choosef(lines []string, price int) string {
	line := t.choose(lines)
	if strings.Contains(line, "%d") {
		return fmt.Sprintf(line, price)
	}
	return line
}

// arguments picks at most two justification snippets for the flagged
// intents, in fixed priority order, falling back to a generic line.
func (t *Template) arguments(intents map[dialogue.Intent]bool) string {
	var chosen []string
	for _, intent := range dialogue.IntentPriority() {
		if !intents[intent] {
			continue
		}
		lines, ok := argBank[intent]
		if !ok {
			continue
		}
		chosen = append(chosen, t.choose(lines))
		if len(chosen) >= 2 {
			break
		}
	}
	if len(chosen) == 0 {
		return t.choose(justifications)
	}
	return strings.Join(chosen, " ")
}

// Opening is the seller's first message of a session.
func (t *Template) Opening(mode negotiation.Mode) string {
	if mode == negotiation.ModePower {
		return fmt.Sprintf("%s The device is new and sealed. %s",
			t.choosef(powerOpeners, t.listPrice),
			t.choosef(powerPush, t.listPrice))
	}
	return t.choosef(neutralOpeners, t.listPrice)
}

// Reply words one counter-offer.
func (t *Template) Reply(p dialogue.Prompt) string {
	if p.Phase == negotiation.PhaseNoPrice {
		ask := "What price did you have in mind?"
		if p.Mode == negotiation.ModePower {
			ask = t.choosef(powerPush, t.listPrice)
		}
		return fmt.Sprintf("The price for a new one is %d €. %s", t.listPrice, ask)
	}

	arg := t.arguments(p.Intents)
	if p.Mode == negotiation.ModePower {
		return t.powerReply(p, arg)
	}
	return t.neutralReply(p, arg)
}

func (t *Template) powerReply(p dialogue.Prompt, arg string) string {
	switch p.Phase {
	case negotiation.PhaseLowballTier1:
		return fmt.Sprintf("%s %s I'm setting %d €. %s",
			t.choose(powerRebukeTier1), arg, p.Offer, t.choosef(powerClosers, p.Offer))
	case negotiation.PhaseLowballTier2:
		return fmt.Sprintf("%s %s %d € is my frame. %s",
			t.choose(powerRebukeTier2), arg, p.Offer, t.choosef(powerClosers, p.Offer))
	case negotiation.PhaseLowballTier3:
		return fmt.Sprintf("%s %s I'm at %d €. %s",
			t.choose(powerRebukeTier3), arg, p.Offer, t.choosef(powerClosers, p.Offer))
	case negotiation.PhaseSubFloorRare:
		return fmt.Sprintf("%s As an exception I'll go to %d €, not a unit below.", arg, p.Offer)
	case negotiation.PhaseNearClose:
		return fmt.Sprintf("%s I can go to %d €; below that I don't close.", arg, p.Offer)
	case negotiation.PhaseEarlyRound:
		return fmt.Sprintf("%s For a new device I'm setting %d €. %s",
			arg, p.Offer, t.choosef(powerClosers, p.Offer))
	case negotiation.PhaseAtOrAboveList:
		return fmt.Sprintf("%s At %d € we close.", arg, p.Offer)
	default:
		return fmt.Sprintf("%s That's below my range. %d € is realistic.", arg, p.Offer)
	}
}

func (t *Template) neutralReply(p dialogue.Prompt, arg string) string {
	tail := t.choose(neutralClosers)
	switch {
	case p.Phase.IsLowball():
		return fmt.Sprintf("That's below its value. %s I'd consider %d € fair. %s", arg, p.Offer, tail)
	case p.Phase == negotiation.PhaseSubFloorRare:
		return fmt.Sprintf("%s As an exception I can accept %d €. %s", arg, p.Offer, tail)
	case p.Phase == negotiation.PhaseAtOrAboveList:
		return fmt.Sprintf("%s We can close at %d €. %s", arg, p.Offer, tail)
	default:
		return fmt.Sprintf("%s %s %d € would be my proposal. %s", t.choose(empathy), arg, p.Offer, tail)
	}
}

// Accept confirms a closed deal.
func (t *Template) Accept(mode negotiation.Mode, price int) string {
	if mode == negotiation.ModePower {
		return fmt.Sprintf("Deal. %d € it is.", price)
	}
	return fmt.Sprintf("Agreed, %d €. Thank you!", price)
}

// Decline ends the negotiation without a deal.
func (t *Template) Decline(negotiation.Mode) string {
	return t.choose(declineLines)
}

// FinalOffer is the one last-offer line at the round cap.
func (t *Template) FinalOffer(mode negotiation.Mode, price int) string {
	if mode == negotiation.ModePower {
		return fmt.Sprintf("Last call: %d €. Take it or we're done here.", price)
	}
	return fmt.Sprintf("My final offer is %d €; I can't go any lower.", price)
}

// TimeClose pushes for an immediate close when the deadline forces a
// finalization.
func (t *Template) TimeClose(mode negotiation.Mode, price int) string {
	if mode == negotiation.ModePower {
		return fmt.Sprintf("I'm settling this now: %d €. If that works, we close immediately.", price)
	}
	return fmt.Sprintf("We're out of time. I can do %d €; shall we close?", price)
}

// TimedNudge is the power-mode pressure interjection for a stage.
func (t *Template) TimedNudge(mode negotiation.Mode, _ int) string {
	if mode != negotiation.ModePower {
		return ""
	}
	return t.choose(powerNudgeTimed)
}

// PauseNudge is the power-mode interjection after a long silence.
func (t *Template) PauseNudge(mode negotiation.Mode) string {
	if mode != negotiation.ModePower {
		return ""
	}
	return t.choose(powerNudgePause)
}
