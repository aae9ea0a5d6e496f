package services

import (
	"strconv"
	"testing"

	"market-scout/models"
	"market-scout/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		present bool
	}{
		{"1,299", 1299, true},
		{"₹1,299.50", 1299.50, true},
		{"499", 499, true},
		{"", 0, false},
		{"free", 0, false},
		{"0", 0, true},
	}

	for _, tt := range tests {
		got, present := parsePrice(tt.raw)
		if got != tt.want || present != tt.present {
			t.Errorf("parsePrice(%q) = (%.2f, %v); want (%.2f, %v)",
				tt.raw, got, present, tt.want, tt.present)
		}
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"4.3", 4.3},
		{"4.3 out of 5 stars", 4.3},
		{"5", 5},
		{"", 0},
		{"New", 0},
		{"6.0", 0},
	}

	for _, tt := range tests {
		if got := parseRating(tt.raw); got != tt.want {
			t.Errorf("parseRating(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestParseReviews(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"2,148", 2148},
		{"17", 17},
		{"", 0},
		{"No reviews", 0},
	}

	for _, tt := range tests {
		if got := parseReviews(tt.raw); got != tt.want {
			t.Errorf("parseReviews(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestBackfillBrand(t *testing.T) {
	tests := []struct {
		brand string
		title string
		want  string
	}{
		{"Cuddles", "SuperToy Plush Bear", "Cuddles"},
		{"", "SuperToy Plush Bear", "SuperToy"},
		{"   ", "SuperToy Plush Bear", "SuperToy"},
		{"", "A", "Unknown"},
		{"", "A Plush Bear", "Unknown"},
	}

	for _, tt := range tests {
		if got := backfillBrand(tt.brand, tt.title); got != tt.want {
			t.Errorf("backfillBrand(%q, %q) = %q; want %q", tt.brand, tt.title, got, tt.want)
		}
	}
}

func TestCleanDropsMissingTitle(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawProduct{
		{Title: "", ProductURL: "https://example.com/p/1", Sponsored: true},
		{Title: "Plush Bear", ProductURL: "https://example.com/p/2", Sponsored: true},
	}

	if got := c.Clean(raw); len(got) != 1 {
		t.Errorf("expected 1 product after dropping untitled record, got %d", len(got))
	}
}

func TestCleanDeduplicatesFirstWins(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawProduct{
		{Title: "Plush Bear", ProductURL: "https://example.com/p/1", Price: "100", Rating: "4.0"},
		{Title: "Plush Bear", ProductURL: "https://example.com/p/1", Price: "999", Rating: "1.0"},
		{Title: "Plush Bear", ProductURL: "https://example.com/p/2", Price: "200"},
	}

	got := c.Clean(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 products after dedup, got %d", len(got))
	}
	// First occurrence survives with its own field values.
	if got[0].Price != 100 || got[0].Rating != 4.0 {
		t.Errorf("first occurrence should win: %+v", got[0])
	}
}

// rawFromProducts re-encodes cleaned products as raw records, the same shape
// a second pass over the clean CSV would see.
func rawFromProducts(products []*models.Product) []*models.RawProduct {
	raw := make([]*models.RawProduct, 0, len(products))
	for _, p := range products {
		price := ""
		if p.HasPrice {
			price = strconv.FormatFloat(p.Price, 'f', -1, 64)
		}
		raw = append(raw, &models.RawProduct{
			Title:      p.Title,
			Brand:      p.Brand,
			Price:      price,
			Rating:     strconv.FormatFloat(p.Rating, 'f', -1, 64),
			Reviews:    strconv.Itoa(p.Reviews),
			ImageURL:   p.ImageURL,
			ProductURL: p.ProductURL,
			Sponsored:  p.Sponsored,
		})
	}
	return raw
}

func TestCleanIdempotent(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawProduct{
		{Title: "SuperToy  Plush   Bear", ProductURL: "https://example.com/p/1", Price: "₹1,299", Rating: "4.3 out of 5 stars", Reviews: "2,148", Sponsored: true},
		{Title: "Cuddles Elephant", Brand: "Cuddles", ProductURL: "https://example.com/p/2", Price: "bad", Reviews: "", Sponsored: true},
		{Title: "Cuddles Elephant", Brand: "Cuddles", ProductURL: "https://example.com/p/2", Price: "799", Sponsored: true},
	}

	once := c.Clean(raw)
	twice := c.Clean(rawFromProducts(once))

	if len(once) != len(twice) {
		t.Fatalf("second clean changed length: %d → %d", len(once), len(twice))
	}
	for i := range once {
		if *once[i] != *twice[i] {
			t.Errorf("record %d changed on re-clean:\n first: %+v\nsecond: %+v", i, once[i], twice[i])
		}
	}
}
