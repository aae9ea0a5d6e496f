package models

import "time"

// RawProduct holds unprocessed scraped data directly from the results page.
// Display-formatted fields stay as strings; this is what the raw CSV records.
type RawProduct struct {
	Title      string
	Brand      string
	Price      string
	Rating     string
	Reviews    string
	ImageURL   string
	ProductURL string
	Sponsored  bool
	ScrapedAt  time.Time
}

// Product is the cleaned, typed record ready for analysis and storage.
// HasPrice distinguishes "price unparsable" from a genuine zero price —
// records without a known price are excluded from price statistics.
type Product struct {
	Title      string
	Brand      string
	Price      float64
	HasPrice   bool
	Rating     float64
	Reviews    int
	ImageURL   string
	ProductURL string
	Sponsored  bool
}

// Key returns the uniqueness key used for deduplication across pages.
func (p *Product) Key() string {
	return p.Title + "\x1f" + p.ProductURL
}

// ValueScore is an informal "bang for buck" signal: rating / (price + 1).
// The +1 keeps the division defined for free items.
func (p *Product) ValueScore() float64 {
	if !p.HasPrice {
		return 0
	}
	return p.Rating / (p.Price + 1)
}

// BrandAggregate summarizes one brand across the cleaned dataset.
// Derived and read-only; recomputed on every run.
type BrandAggregate struct {
	Brand      string
	Frequency  int
	MeanRating float64
}

// InsightReport holds the computed analytics over the cleaned dataset.
type InsightReport struct {
	TotalProducts   int
	Brands          []BrandAggregate
	PriceRatingCorr float64
	CorrComputed    bool
	BestValue       []*Product
	TopByReviews    []*Product
	TopByRating     []*Product
	HiddenGems      []*Product
	Overpriced      []*Product
	MedianReviews   float64
	RatingP75       float64
	RatingP25       float64
	PriceP75        float64
}
