package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"market-scout/models"
	"market-scout/utils"
)

var (
	// nonDecimal strips everything but digits and the decimal point
	nonDecimal = regexp.MustCompile(`[^0-9.]`)
	// nonDigit strips everything but digits
	nonDigit = regexp.MustCompile(`[^0-9]`)
	// firstNumber captures the first decimal number in a string
	firstNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

const unknownBrand = "Unknown"

// Cleaner transforms RawProducts into deduplicated, typed Products.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean deduplicates by (title, product URL) keeping the first occurrence,
// coerces display-formatted numbers, fills absent rating/review values with
// zero and backfills missing brands from the title. Price keeps no fill
// rule: an unparsable price stays absent. Cleaning already-clean data
// produces an identical result.
func (c *Cleaner) Clean(raw []*models.RawProduct) []*models.Product {
	seen := utils.NewSeenSet()
	result := make([]*models.Product, 0, len(raw))

	for _, r := range raw {
		title := normalizeText(r.Title)
		if title == "" {
			c.logger.Debug("[cleaner] Dropping record without title: %s", r.ProductURL)
			continue
		}

		p := &models.Product{
			Title:      title,
			ProductURL: strings.TrimSpace(r.ProductURL),
			ImageURL:   strings.TrimSpace(r.ImageURL),
			Sponsored:  r.Sponsored,
		}

		if !seen.Add(p.Key()) {
			c.logger.Debug("[cleaner] Duplicate skipped: %s", title)
			continue
		}

		p.Price, p.HasPrice = parsePrice(r.Price)
		p.Rating = parseRating(r.Rating)
		p.Reviews = parseReviews(r.Reviews)
		p.Brand = backfillBrand(r.Brand, title)

		result = append(result, p)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d products (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice strips currency symbols and thousand separators and parses the
// remainder. Unparsable values stay absent.
func parsePrice(raw string) (float64, bool) {
	cleaned := nonDecimal.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// parseRating extracts a 0–5 numeric rating; anything else becomes 0.
func parseRating(raw string) float64 {
	match := firstNumber.FindString(raw)
	if match == "" {
		return 0
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil || val < 0 || val > 5 {
		return 0
	}
	return val
}

// parseReviews extracts a non-negative review count; anything else becomes 0.
func parseReviews(raw string) int {
	cleaned := nonDigit.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}

// backfillBrand keeps a non-blank brand, otherwise takes the first
// whitespace-delimited token of the title when it has more than one
// character, else "Unknown".
func backfillBrand(brand, title string) string {
	if b := strings.TrimSpace(brand); b != "" {
		return b
	}

	tokens := strings.Fields(title)
	if len(tokens) > 0 && len([]rune(tokens[0])) > 1 {
		return tokens[0]
	}
	return unknownBrand
}

// normalizeText strips leading/trailing whitespace and collapses internal
// whitespace.
func normalizeText(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
