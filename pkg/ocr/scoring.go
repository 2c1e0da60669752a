package ocr

import "strings"

// BestAmountFromMatches picks the candidate with the strongest amount
// signals. Ties break toward the larger amount, then the longer raw match.
func BestAmountFromMatches(matches []string) (int64, string, bool) {
	type cand struct {
		amt   int64
		raw   string
		score int
	}
	score := func(raw string) int {
		s := 0
		low := strings.ToLower(raw)
		if strings.Contains(low, "rp") || strings.Contains(low, "idr") {
			s += 10
		}
		if strings.Contains(low, "total") || strings.Contains(low, "jumlah") {
			s += 8
		}
		if strings.Contains(raw, ".") || strings.Contains(raw, ",") {
			s += 5
		}
		if strings.HasSuffix(raw, ",00") || strings.HasSuffix(raw, ".00") {
			s += 3
		}
		if len(onlyDigits(raw)) >= 4 {
			s++
		}
		return s
	}
	var best *cand
	for _, m := range matches {
		amt, err := ParseAmountFromMatch(m)
		if err != nil || amt <= 0 {
			continue
		}
		c := cand{amt: amt, raw: m, score: score(m)}
		if best == nil ||
			c.score > best.score ||
			(c.score == best.score && c.amt > best.amt) ||
			(c.score == best.score && c.amt == best.amt && len(c.raw) > len(best.raw)) {
			b := c
			best = &b
		}
	}
	if best == nil {
		return 0, "", false
	}
	return best.amt, best.raw, true
}
