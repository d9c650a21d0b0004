package dialogue

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		text    string
		want    int
		wantOK  bool
	}{
		{"950", 950, true},
		{"I can pay 950 for it", 950, true},
		{"950€", 950, true},
		{"would 950.50 work?", 951, true},
		{"950,50", 951, true},
		{"1 000", 1000, true},
		{"1.000", 1000, true},
		{"1,000", 1000, true},
		{"1.000,50", 1001, true},
		{"maybe 900, maybe 920", 900, true},
		{"no numbers here", 0, false},
		{"", 0, false},
		{"???", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParsePrice(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParsePrice(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParsePrice(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestParsePrice_NeverPanics(t *testing.T) {
	for _, text := range []string{".,.,", "€€€", "12345678901234567890", "9.9.9.9"} {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("ParsePrice(%q) panicked: %v", text, r)
				}
			}()
			ParsePrice(text)
		}()
	}
}
