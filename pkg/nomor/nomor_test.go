package nomor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatKnownKeyword(t *testing.T) {
	// 8th number (7 existing rows) in February 2025.
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "H/UBL/LAB/08/02/25", Format("H", 8, now))
	assert.Equal(t, "Perbaikan", Kategori("H"))
}

func TestFormatUnknownKeyword(t *testing.T) {
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "XX/UBL/LAB/01/02/25", Format("ZZ", 1, now))
	assert.Equal(t, Lainnya, Kategori("ZZ"))
}

func TestKategoriTable(t *testing.T) {
	cases := map[string]string{
		"H":  "Perbaikan",
		"SA": "Sertifikat Asisten",
		"SS": "Sertifikat Webinar",
		"P":  "Formulir pendaftaran calas",
		"S":  "SK Asisten",
		"Q":  Lainnya,
		"":   Lainnya,
	}
	for keyword, want := range cases {
		assert.Equalf(t, want, Kategori(keyword), "keyword %q", keyword)
	}
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "SA", Prefix("SA"))
	assert.Equal(t, "XX", Prefix("ZZ"))
	// lookup is case sensitive, lowercase codes are not recognized
	assert.Equal(t, "XX", Prefix("h"))
}

func TestRewritePrefixKeepsTail(t *testing.T) {
	assert.Equal(t, "SA/UBL/LAB/08/02/25", RewritePrefix("H/UBL/LAB/08/02/25", "SA"))
	assert.Equal(t, "XX/UBL/LAB/08/02/25", RewritePrefix("H/UBL/LAB/08/02/25", "ZZ"))
}

func TestFormatPadding(t *testing.T) {
	now := time.Date(2031, 11, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "S/UBL/LAB/99/11/31", Format("S", 99, now))
	assert.Equal(t, "S/UBL/LAB/100/11/31", Format("S", 100, now))
}
