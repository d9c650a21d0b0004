package negotiation

// Prices are whole currency units. Every computed offer is snapped to a
// multiple of five so counter-offers read like a human wrote them.

// RoundToFive rounds an amount to the nearest multiple of 5, halves up.
func RoundToFive(amount int) int {
	if amount >= 0 {
		return ((amount + 2) / 5) * 5
	}
	return -(((-amount + 2) / 5) * 5)
}

// Bound clamps value into [lo, hi]. lo wins if the interval is inverted,
// which keeps the floor authoritative when the ceiling has drifted below it.
func Bound(value, lo, hi int) int {
	if value > hi {
		value = hi
	}
	if value < lo {
		value = lo
	}
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
