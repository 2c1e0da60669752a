package ocr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var centsRE = regexp.MustCompile(`[.,]\d{2}$`)

// ParseAmountFromMatch normalizes a matched substring into whole currency
// units. A trailing two-digit decimal part is dropped (10.000,00 -> 10000).
func ParseAmountFromMatch(found string) (int64, error) {
	found = strings.TrimSpace(found)
	if found == "" {
		return 0, fmt.Errorf("empty match")
	}
	digits := found
	if centsRE.MatchString(found) {
		// the later of the last '.'/',' separates the decimal part
		cut := strings.LastIndex(found, ".")
		if c := strings.LastIndex(found, ","); c > cut {
			cut = c
		}
		digits = found[:cut]
	}
	digits = onlyDigits(digits)
	if digits == "" {
		return 0, fmt.Errorf("no digits in %q", found)
	}
	amt, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", digits, err)
	}
	if amt < 0 {
		amt = -amt
	}
	return amt, nil
}
