// Package dialogue provides the text-understanding side of the negotiation:
// price extraction, intent spotting, acceptance detection, and the composer
// contract for seller wording. Everything here is pure and side-effect free.
package dialogue

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// priceToken matches the first digit run together with any `.`/`,`
// separators. Whether a separator means grouping or decimals is decided
// afterwards, so "1.000", "1,000" and "950,50" all resolve.
var priceToken = regexp.MustCompile(`\d+(?:[.,]\d+)*`)

// ParsePrice extracts the first numeric amount from free-form buyer text
// and returns it as whole currency units, rounding decimal parts to the
// nearest integer. The second result is false when the text carries no
// parsable number. ParsePrice never fails on garbage input; unparsable
// text is simply "no price offered".
func ParsePrice(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	compact := strings.ReplaceAll(text, " ", "")
	match := priceToken.FindString(compact)
	if match == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(normalizeSeparators(match), 64)
	if err != nil {
		return 0, false
	}

	return int(math.Round(value)), true
}

// normalizeSeparators rewrites a matched token into strconv form. The last
// separator is the decimal point when one or two digits follow it; every
// other separator is thousands grouping and dropped.
func normalizeSeparators(token string) string {
	lastSep := strings.LastIndexAny(token, ".,")
	if lastSep == -1 {
		return token
	}

	intPart := token
	fracPart := ""
	if digits := len(token) - lastSep - 1; digits >= 1 && digits <= 2 {
		intPart = token[:lastSep]
		fracPart = "." + token[lastSep+1:]
	}

	intPart = strings.ReplaceAll(intPart, ".", "")
	intPart = strings.ReplaceAll(intPart, ",", "")
	return intPart + fracPart
}
