// Package ocr extracts a payment amount from proof-of-payment images so a
// faktur can be created without typing the nominal by hand. Preprocessing is
// light (grayscale + upscale); Tesseract does the heavy lifting.
package ocr

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog/log"
)

// amountPatterns are tried in priority order. Labeled totals first, then
// currency-marked numbers, then grouped digit runs, then plain digit runs.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:jumlah(?:\s+transfer)?|total(?:\s+bayar)?|total pembayaran|transfer)[:\s]*(?:Rp|IDR)?[\s]*([0-9\.,]+)`),
	regexp.MustCompile(`(?i)Rp[\s]*([0-9\.,]+)`),
	regexp.MustCompile(`(?i)IDR[\s]*([0-9\.,]+)`),
	regexp.MustCompile(`([0-9]{1,3}(?:[.,][0-9]{3})+)`),
	regexp.MustCompile(`([0-9]{5,})`),
}

// ExtractAmount runs OCR over an image held in memory and returns the most
// plausible amount in whole rupiah, a rough confidence in [0,1], and the raw
// matched substring. Returns ErrNoAmount when nothing plausible is found.
func ExtractAmount(data []byte) (int64, float64, string, error) {
	text, err := recognize(data)
	if err != nil {
		return 0, 0, "", err
	}
	matches := findMatches(text)
	if len(matches) == 0 {
		return 0, 0, "", ErrNoAmount
	}
	amt, raw, ok := BestAmountFromMatches(matches)
	if !ok {
		return 0, 0, "", ErrNoAmount
	}
	// Confidence proxy: currency hints or an explicit decimal tail are strong
	// signals, otherwise scale by match length relative to the OCR text.
	conf := float64(len(raw)) / float64(len(text)+1)
	if conf > 1 {
		conf = 1
	}
	low := strings.ToLower(raw)
	if strings.Contains(low, "rp") || strings.Contains(low, "idr") ||
		strings.HasSuffix(low, ",00") || strings.HasSuffix(low, ".00") {
		if conf < 0.85 {
			conf = 0.85
		}
	}
	log.Debug().Str("raw", raw).Int64("amount", amt).Float64("confidence", conf).
		Str("text_snippet", snippet(text, 120)).Msg("ocr amount extracted")
	return amt, conf, raw, nil
}

// recognize preprocesses the image and runs Tesseract with a digit-heavy
// whitelist. Tesseract reads from a file, so the prepared image goes through
// a temp png.
func recognize(data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	gray := imaging.Grayscale(img)
	if gray.Bounds().Dy() < 800 {
		gray = imaging.Resize(gray, 0, 1200, imaging.Lanczos)
	}
	tmp, err := os.CreateTemp("", "bukti-*.png")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(path)
	if err := imaging.Save(gray, path); err != nil {
		return "", fmt.Errorf("save preprocessed image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("eng")
	_ = client.SetWhitelist("0123456789RpIDRidrTOALJUMHtotaljumlah.,:()/- ")
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return normalizeOCRText(text), nil
}

// findMatches collects unique plausible amount-looking substrings from the
// recognized text, re-attaching a currency marker the capture group stripped.
func findMatches(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, re := range amountPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 {
				continue
			}
			s := strings.TrimSpace(m[1])
			if s == "" {
				continue
			}
			full := strings.ToLower(m[0])
			lowS := strings.ToLower(s)
			if (strings.Contains(full, "rp") || strings.Contains(full, "idr")) &&
				!strings.Contains(lowS, "rp") && !strings.Contains(lowS, "idr") {
				s = "Rp" + s
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			if !isPlausibleAmount(s) {
				continue
			}
			out = append(out, s)
		}
	}
	return out
}
