package ocr

import "testing"

func TestBestAmountTotalPriority(t *testing.T) {
	// Rp50.000 is larger, but the labeled total should win the score.
	matches := []string{"Rp50.000", "TOTAL Rp40.000"}
	amt, raw, ok := BestAmountFromMatches(matches)
	if !ok {
		t.Fatalf("no amount chosen")
	}
	if amt != 40000 {
		t.Fatalf("expected 40000 (TOTAL) got %d raw=%s", amt, raw)
	}
}

func TestBestAmountNoCandidates(t *testing.T) {
	if _, _, ok := BestAmountFromMatches([]string{"abc", ""}); ok {
		t.Fatalf("expected no candidate")
	}
}

func TestFindMatchesPlausibility(t *testing.T) {
	text := "Transfer berhasil Rp600.000 ref 085512345678901 tanggal 02/01"
	got := findMatches(text)
	for _, m := range got {
		if m == "085512345678901" {
			t.Fatalf("phone-like id should be filtered, got %v", got)
		}
	}
	if len(got) == 0 {
		t.Fatalf("expected at least the currency match")
	}
}
