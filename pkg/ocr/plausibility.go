package ocr

import "strings"

// isPlausibleAmount filters numeric substrings that are more likely phone
// numbers, transaction ids or reference numbers than money. Conservative:
// currency hints or grouping separators are trusted, long bare digit runs and
// leading zeros are not.
func isPlausibleAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	low := strings.ToLower(s)
	if strings.Contains(low, "rp") || strings.Contains(low, "idr") {
		return true
	}
	if strings.Contains(s, ".") || strings.Contains(s, ",") {
		d := onlyDigits(s)
		return len(d) >= 3 && d[0] != '0'
	}
	d := onlyDigits(s)
	if d == "" || d[0] == '0' {
		return false
	}
	if len(d) < 2 || len(d) > 7 {
		return false
	}
	if len(d) >= 5 {
		// bare mid-size runs are usually ids unless they end on a clean step
		return strings.HasSuffix(d, "000") || strings.HasSuffix(d, "500")
	}
	return true
}

// onlyDigits keeps decimal digits from a string.
func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
