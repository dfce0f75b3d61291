package extract

import (
	"regexp"
	"strconv"
)

// packUnitRegex matches a count followed by a pack-unit word, e.g.
// "30 comprimidos", "28 drágeas", "60caps", "10 unid.", "14 tablets".
// Captures the count.
var packUnitRegex = regexp.MustCompile(
	`(?i)(\d+)\s{0,3}(?:comprimidos?|comp\b|c[aá]psulas?|caps\b|dr[aá]geas?|drag\b|unidades?|unid\b|un\b|tabletes?|tabs?\b` +
		`|tablets?\b|capsules?\b|dragees?\b|units?\b|pills?\b)`,
)

// commonPackRegex matches a standalone number that is one of the usual
// pharmaceutical box sizes.
var commonPackRegex = regexp.MustCompile(`\b(20|21|28|30|42|56|60|84|90)\b`)

// ExtractQuantity derives the pack size from a product title. It first looks
// for a number next to a pack-unit word, then for a standalone common pack
// size, and returns 1 when neither is found. The result is always >= 1.
func ExtractQuantity(title string) int {
	for _, m := range packUnitRegex.FindAllStringSubmatch(title, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}

	if m := commonPackRegex.FindStringSubmatch(title); len(m) > 1 {
		n, _ := strconv.Atoi(m[1])
		return n
	}

	return 1
}
