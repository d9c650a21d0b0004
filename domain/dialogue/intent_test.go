package dialogue

import "testing"

func TestClassifyIntents(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Intent
	}{
		{
			"student budget",
			"I'm a STUDENT and my budget is tight",
			[]Intent{IntentStudent, IntentBudget},
		},
		{
			"cheaper elsewhere",
			"I saw it cheaper elsewhere",
			[]Intent{IntentCheaper},
		},
		{
			"logistics",
			"Can I pick up today and pay cash?",
			[]Intent{IntentImmediacy, IntentCash, IntentPickup},
		},
		{
			"warranty",
			"Does it come with a warranty and the receipt?",
			[]Intent{IntentWarranty},
		},
		{
			"nothing",
			"How about 850?",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := ClassifyIntents(tt.text)

			want := make(map[Intent]bool, len(tt.want))
			for _, i := range tt.want {
				want[i] = true
			}

			for _, intent := range IntentPriority() {
				if flags[intent] != want[intent] {
					t.Errorf("ClassifyIntents(%q)[%s] = %v, want %v", tt.text, intent, flags[intent], want[intent])
				}
			}
		})
	}
}

func TestIntentPriority_Stable(t *testing.T) {
	order := IntentPriority()
	if len(order) != len(intentKeywords) {
		t.Fatalf("priority covers %d intents, keyword table has %d", len(order), len(intentKeywords))
	}
	if order[0] != IntentStudent || order[len(order)-1] != IntentWarranty {
		t.Errorf("priority order changed: %v", order)
	}

	// Callers may not mutate the canonical order.
	order[0] = IntentWarranty
	if IntentPriority()[0] != IntentStudent {
		t.Error("IntentPriority() leaks internal slice")
	}
}
