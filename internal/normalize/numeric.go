package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyChars = regexp.MustCompile(`[$,]`)
	firstNumber   = regexp.MustCompile(`\d+\.?\d*`)
)

// Numeric extracts the first number from free text after stripping currency
// symbols and thousands separators, scaling by a billion/million/thousand
// marker when one is present. ok is false when the text holds no digits.
//
// A bare "m" or "k" counts as a scale marker only when no letter sits on
// either side: "4.5M" scales, "MMBtu" and "kWh" do not.
func Numeric(text string) (value float64, ok bool) {
	clean := currencyChars.ReplaceAllString(text, "")
	match := firstNumber.FindString(clean)
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "billion"):
		n *= 1e9
	case strings.Contains(lower, "million"),
		standalone(lower, 'm') && !strings.Contains(lower, "mb"):
		n *= 1e6
	case strings.Contains(lower, "thousand"), standalone(lower, 'k'):
		n *= 1e3
	}
	return n, true
}

func standalone(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			continue
		}
		if i > 0 && isLetter(s[i-1]) {
			continue
		}
		if i+1 < len(s) && isLetter(s[i+1]) {
			continue
		}
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
