package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"market-scout/models"
	"market-scout/utils"
)

const (
	topN       = 5
	shortlistN = 3
	// minReviewsForRating keeps barely-reviewed products out of the
	// top-by-rating list.
	minReviewsForRating = 10
)

// InsightService computes descriptive analytics over the cleaned dataset.
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates an InsightService with the given logger.
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate recomputes the full InsightReport from the given products.
// Zero-filled ratings and review counts participate in the median and
// percentile statistics; records without a known price are excluded from the
// price statistics.
func (s *InsightService) Generate(products []*models.Product) *models.InsightReport {
	report := &models.InsightReport{TotalProducts: len(products)}
	if len(products) == 0 {
		return report
	}

	report.Brands = brandAggregates(products)

	var prices, ratingsAtPrice stats.Float64Data
	var priced []*models.Product
	for _, p := range products {
		if p.HasPrice {
			prices = append(prices, p.Price)
			ratingsAtPrice = append(ratingsAtPrice, p.Rating)
			priced = append(priced, p)
		}
	}

	if len(prices) >= 2 {
		if corr, err := stats.Pearson(prices, ratingsAtPrice); err == nil {
			report.PriceRatingCorr = corr
			report.CorrComputed = true
		}
	}

	bestValue := append([]*models.Product(nil), priced...)
	sort.SliceStable(bestValue, func(i, j int) bool {
		return bestValue[i].ValueScore() > bestValue[j].ValueScore()
	})
	report.BestValue = head(bestValue, shortlistN)

	byReviews := append([]*models.Product(nil), products...)
	sort.SliceStable(byReviews, func(i, j int) bool {
		return byReviews[i].Reviews > byReviews[j].Reviews
	})
	report.TopByReviews = head(byReviews, topN)

	var reviewed []*models.Product
	for _, p := range products {
		if p.Reviews >= minReviewsForRating {
			reviewed = append(reviewed, p)
		}
	}
	sort.SliceStable(reviewed, func(i, j int) bool {
		return reviewed[i].Rating > reviewed[j].Rating
	})
	report.TopByRating = head(reviewed, topN)

	var ratings, reviews stats.Float64Data
	for _, p := range products {
		ratings = append(ratings, p.Rating)
		reviews = append(reviews, float64(p.Reviews))
	}

	medianReviews, medOK := statValue(stats.Median(reviews))
	ratingP75, p75OK := statValue(stats.Percentile(ratings, 75))
	ratingP25, p25OK := statValue(stats.Percentile(ratings, 25))
	priceP75, priceOK := statValue(stats.Percentile(prices, 75))

	report.MedianReviews = medianReviews
	report.RatingP75 = ratingP75
	report.RatingP25 = ratingP25
	report.PriceP75 = priceP75

	if medOK && p75OK {
		for _, p := range products {
			if float64(p.Reviews) < medianReviews && p.Rating > ratingP75 {
				report.HiddenGems = append(report.HiddenGems, p)
			}
		}
		report.HiddenGems = head(report.HiddenGems, shortlistN)
	}

	if priceOK && p25OK {
		for _, p := range priced {
			if p.Price > priceP75 && p.Rating < ratingP25 {
				report.Overpriced = append(report.Overpriced, p)
			}
		}
	}

	return report
}

// brandAggregates returns per-brand frequency and mean rating, sorted by
// frequency descending (brand name breaks ties for stable output).
func brandAggregates(products []*models.Product) []models.BrandAggregate {
	type acc struct {
		count     int
		ratingSum float64
	}

	byBrand := make(map[string]*acc)
	for _, p := range products {
		a := byBrand[p.Brand]
		if a == nil {
			a = &acc{}
			byBrand[p.Brand] = a
		}
		a.count++
		a.ratingSum += p.Rating
	}

	aggs := make([]models.BrandAggregate, 0, len(byBrand))
	for brand, a := range byBrand {
		aggs = append(aggs, models.BrandAggregate{
			Brand:      brand,
			Frequency:  a.count,
			MeanRating: a.ratingSum / float64(a.count),
		})
	}

	sort.Slice(aggs, func(i, j int) bool {
		if aggs[i].Frequency != aggs[j].Frequency {
			return aggs[i].Frequency > aggs[j].Frequency
		}
		return aggs[i].Brand < aggs[j].Brand
	})

	return aggs
}

func statValue(v float64, err error) (float64, bool) {
	if err != nil {
		return 0, false
	}
	return v, true
}

func head(products []*models.Product, n int) []*models.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

// Print writes a human-readable summary of the report to the terminal.
func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  PRODUCT LISTING INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Sponsored products analyzed : \033[1m%d\033[0m\n", r.TotalProducts)
	if r.CorrComputed {
		fmt.Printf("  Price–rating correlation    : \033[1m%.2f\033[0m\n", r.PriceRatingCorr)
	} else {
		fmt.Printf("  Price–rating correlation    : not enough priced records\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Top Brands\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.Brands) == 0 {
		fmt.Printf("  No brand data\n")
	} else {
		for i, b := range r.Brands {
			if i >= topN {
				break
			}
			bar := strings.Repeat("█", b.Frequency)
			fmt.Printf("  %-20s %s (%d, avg %.1f ★)\n", truncate(b.Brand, 18), bar, b.Frequency, b.MeanRating)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Best Value (rating per rupee)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for i, p := range r.BestValue {
		fmt.Printf("  \033[1m%d.\033[0m %-40s ₹%.0f, %.1f ★\n", i+1, truncate(p.Title, 38), p.Price, p.Rating)
	}
	if len(r.BestValue) == 0 {
		fmt.Printf("  No priced products\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Hidden Gems (few reviews, high rating)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, p := range r.HiddenGems {
		fmt.Printf("  • %-40s %.1f ★, %d reviews\n", truncate(p.Title, 38), p.Rating, p.Reviews)
	}
	if len(r.HiddenGems) == 0 {
		fmt.Printf("  None found\n")
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
