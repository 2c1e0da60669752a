// Package nomor formats lab document reference numbers from a category
// keyword and a sequence counter.
package nomor

import (
	"fmt"
	"strings"
	"time"
)

// Lainnya is the catch-all category label for unknown keywords.
const Lainnya = "Lainnya"

// prefixUnknown is the number prefix used when the keyword is not a known
// category code.
const prefixUnknown = "XX"

// kategoriByKeyword maps the short category codes to their labels.
var kategoriByKeyword = map[string]string{
	"H":  "Perbaikan",
	"SA": "Sertifikat Asisten",
	"SS": "Sertifikat Webinar",
	"P":  "Formulir pendaftaran calas",
	"S":  "SK Asisten",
}

// Kategori returns the category label for a keyword, or Lainnya when the
// keyword is not a known code.
func Kategori(keyword string) string {
	if label, ok := kategoriByKeyword[keyword]; ok {
		return label
	}
	return Lainnya
}

// Prefix returns the number prefix for a keyword. Known codes map to
// themselves, everything else to "XX".
func Prefix(keyword string) string {
	if _, ok := kategoriByKeyword[keyword]; ok {
		return keyword
	}
	return prefixUnknown
}

// Format builds the reference number {prefix}/UBL/LAB/{seq}/{month}/{year}
// with the sequence, month and two-digit year zero-padded.
func Format(keyword string, seq int, now time.Time) string {
	return fmt.Sprintf("%s/UBL/LAB/%02d/%02d/%02d", Prefix(keyword), seq, int(now.Month()), now.Year()%100)
}

// RewritePrefix replaces only the prefix segment of an existing reference
// number with the prefix derived from keyword. The sequence, month and year
// segments are intentionally left as issued.
func RewritePrefix(nomor, keyword string) string {
	parts := strings.Split(nomor, "/")
	if len(parts) == 0 {
		return nomor
	}
	parts[0] = Prefix(keyword)
	return strings.Join(parts, "/")
}
