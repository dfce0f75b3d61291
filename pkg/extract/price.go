package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonPriceChars  = regexp.MustCompile(`[^\d,.]`)
	dotDecimalTail = regexp.MustCompile(`^\d+\.\d{2}$`)
)

// ParsePrice converts storefront price text such as "R$ 1.234,56" into a
// float. Dots are thousands separators and the comma is the decimal mark,
// except for plain "123.45" strings. Unparsable text yields 0.
func ParsePrice(text string) float64 {
	clean := nonPriceChars.ReplaceAllString(text, "")
	if clean == "" {
		return 0
	}

	if !dotDecimalTail.MatchString(clean) {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
