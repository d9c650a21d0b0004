package composer

import (
	"strconv"
	"strings"
	"testing"

	"github.com/felixgeelhaar/haggle-go/domain/dialogue"
	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

func allPrompts(offer int) []dialogue.Prompt {
	var prompts []dialogue.Prompt
	for _, mode := range negotiation.AllModes() {
		for _, phase := range negotiation.AllPhases() {
			prompts = append(prompts, dialogue.Prompt{
				Mode:      mode,
				Phase:     phase,
				Offer:     offer,
				ListPrice: 1000,
			})
		}
	}
	return prompts
}

func TestTemplate_DeterministicIsStable(t *testing.T) {
	a := NewDeterministic(1000)
	b := NewDeterministic(1000)

	for _, p := range allPrompts(955) {
		if a.Reply(p) != b.Reply(p) {
			t.Errorf("deterministic Reply differs for %s/%s", p.Mode, p.Phase)
		}
	}
	if a.Opening(negotiation.ModePower) != b.Opening(negotiation.ModePower) {
		t.Error("deterministic Opening differs")
	}
}

func TestTemplate_ReplyContainsOffer(t *testing.T) {
	c := NewRandom(1000, 42)

	for _, p := range allPrompts(955) {
		if p.Phase == negotiation.PhaseNoPrice {
			continue
		}
		text := c.Reply(p)
		if !strings.Contains(text, "955") {
			t.Errorf("Reply(%s/%s) = %q, missing the offer amount", p.Mode, p.Phase, text)
		}
	}
}

func TestTemplate_NoPriceAsksForNumber(t *testing.T) {
	c := NewDeterministic(1000)

	for _, mode := range negotiation.AllModes() {
		text := c.Reply(dialogue.Prompt{Mode: mode, Phase: negotiation.PhaseNoPrice, Offer: 1000, ListPrice: 1000})
		if !strings.Contains(text, "1000") {
			t.Errorf("no_price reply for %s = %q, missing the list price", mode, text)
		}
	}
}

func TestTemplate_NeverDisclosesFloor(t *testing.T) {
	// 955 keeps the offer away from the floor constants so any 900/895 in
	// the output must be a leak.
	c := NewRandom(1000, 7)

	var outputs []string
	for seed := int64(0); seed < 20; seed++ {
		c = NewRandom(1000, seed)
		for _, p := range allPrompts(955) {
			outputs = append(outputs, c.Reply(p))
		}
		for _, mode := range negotiation.AllModes() {
			outputs = append(outputs,
				c.Opening(mode),
				c.Accept(mode, 955),
				c.Decline(mode),
				c.FinalOffer(mode, 955),
				c.TimeClose(mode, 955),
				c.TimedNudge(mode, 1),
				c.PauseNudge(mode),
			)
		}
	}

	for _, text := range outputs {
		if strings.Contains(text, "900") || strings.Contains(text, "895") {
			t.Fatalf("output leaks a floor constant: %q", text)
		}
	}
}

func TestTemplate_ArgumentSelection(t *testing.T) {
	c := NewDeterministic(1000)

	tests := []struct {
		name    string
		intents map[dialogue.Intent]bool
		wantMax int
	}{
		{"no intents falls back to generic", nil, 1},
		{"single intent", map[dialogue.Intent]bool{dialogue.IntentBudget: true}, 1},
		{
			"three intents capped at two",
			map[dialogue.Intent]bool{
				dialogue.IntentStudent: true,
				dialogue.IntentBudget:  true,
				dialogue.IntentCheaper: true,
			},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arg := c.arguments(tt.intents)
			if arg == "" {
				t.Fatal("arguments() returned empty text")
			}
			// Count snippets by matching against the banks.
			count := 0
			for _, lines := range argBank {
				for _, line := range lines {
					if strings.Contains(arg, line) {
						count++
					}
				}
			}
			if count > tt.wantMax {
				t.Errorf("arguments() used %d snippets, want at most %d", count, tt.wantMax)
			}
		})
	}
}

func TestTemplate_PriorityOrderPicksFirstMatches(t *testing.T) {
	c := NewDeterministic(1000)

	// budget and cheaper outrank warranty, so warranty must not appear
	// when two higher-priority intents already matched.
	intents := map[dialogue.Intent]bool{
		dialogue.IntentWarranty: true,
		dialogue.IntentCheaper:  true,
		dialogue.IntentBudget:   true,
	}
	arg := c.arguments(intents)

	if strings.Contains(arg, argBank[dialogue.IntentWarranty][0]) {
		t.Errorf("arguments() = %q, warranty snippet should be crowded out", arg)
	}
	if !strings.Contains(arg, argBank[dialogue.IntentBudget][0]) {
		t.Errorf("arguments() = %q, missing budget snippet", arg)
	}
	if !strings.Contains(arg, argBank[dialogue.IntentCheaper][0]) {
		t.Errorf("arguments() = %q, missing cheaper snippet", arg)
	}
}

func TestTemplate_NudgesAreModeGated(t *testing.T) {
	c := NewDeterministic(1000)

	if got := c.TimedNudge(negotiation.ModeNeutral, 1); got != "" {
		t.Errorf("neutral TimedNudge = %q, want empty", got)
	}
	if got := c.PauseNudge(negotiation.ModeNeutral); got != "" {
		t.Errorf("neutral PauseNudge = %q, want empty", got)
	}
	if got := c.TimedNudge(negotiation.ModePower, 1); got == "" {
		t.Error("power TimedNudge should not be empty")
	}
	if got := c.PauseNudge(negotiation.ModePower); got == "" {
		t.Error("power PauseNudge should not be empty")
	}
}

func TestTemplate_ClosingLinesCarryPrice(t *testing.T) {
	c := NewDeterministic(1000)

	for _, mode := range negotiation.AllModes() {
		for name, text := range map[string]string{
			"Accept":     c.Accept(mode, 930),
			"FinalOffer": c.FinalOffer(mode, 930),
			"TimeClose":  c.TimeClose(mode, 930),
		} {
			if !strings.Contains(text, strconv.Itoa(930)) {
				t.Errorf("%s(%s) = %q, missing the price", name, mode, text)
			}
		}
	}
}

func TestTemplate_BanksHaveNoStrayVerbs(t *testing.T) {
	// Formatting a bank line with a price must never leave a literal %d
	// or produce a MISSING marker.
	c := NewRandom(1000, 3)
	for i := 0; i < 50; i++ {
		for _, p := range allPrompts(955) {
			text := c.Reply(p)
			if strings.Contains(text, "%d") || strings.Contains(text, "%!") {
				t.Fatalf("Reply(%s/%s) = %q, broken format", p.Mode, p.Phase, text)
			}
		}
	}
}
