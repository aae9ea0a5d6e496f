package services

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"market-scout/models"
)

// maxBrandFrequencyForUntapped bounds which brands count as low-presence
// when looking for untapped potential.
const maxBrandFrequencyForUntapped = 3

// WriteInsights renders the report as a plain-text insights file.
func WriteInsights(r *models.InsightReport, path string) error {
	var sb strings.Builder

	sb.WriteString("# Sponsored Product Analysis Insights\n\n")

	sb.WriteString("## Brand Performance Insights\n")
	if len(r.Brands) > 0 {
		sb.WriteString(fmt.Sprintf("- Top Brand: %s\n", r.Brands[0].Brand))
		sb.WriteString(fmt.Sprintf("- Most Dominant Brands: %s\n", strings.Join(brandNames(r.Brands, shortlistN), ", ")))
		sb.WriteString(fmt.Sprintf("- Highest Rated Brand: %s\n", highestRatedBrand(r.Brands)))
		if untapped := untappedBrands(r.Brands); len(untapped) > 0 {
			sb.WriteString(fmt.Sprintf("- Untapped Potential Brands: %s\n", strings.Join(untapped, ", ")))
		}
	} else {
		sb.WriteString("- No brand data available\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Price vs. Rating Insights\n")
	if r.CorrComputed {
		sb.WriteString(fmt.Sprintf("- Price-Rating Correlation: %.2f\n", r.PriceRatingCorr))
	} else {
		sb.WriteString("- Price-Rating Correlation: not enough priced records\n")
	}
	sb.WriteString("- Best Value Products (High Rating, Low Price):\n")
	for _, p := range r.BestValue {
		sb.WriteString(fmt.Sprintf("  * %s by %s - ₹%.0f with %.1f stars\n", p.Title, p.Brand, p.Price, p.Rating))
	}
	sb.WriteString("- Overpriced Products (High Price, Low Rating):\n")
	for _, p := range r.Overpriced {
		sb.WriteString(fmt.Sprintf("  * %s by %s - ₹%.0f with %.1f stars\n", p.Title, p.Brand, p.Price, p.Rating))
	}
	sb.WriteString("\n")

	sb.WriteString("## Review & Rating Insights\n")
	if len(r.TopByReviews) > 0 {
		sb.WriteString(fmt.Sprintf("- Most Reviewed Product: %s\n", r.TopByReviews[0].Title))
	}
	if len(r.TopByRating) > 0 {
		sb.WriteString(fmt.Sprintf("- Highest Rated Popular Product: %s\n", r.TopByRating[0].Title))
	}
	sb.WriteString("- Hidden Gems (High Rating, Few Reviews):\n")
	for _, p := range r.HiddenGems {
		sb.WriteString(fmt.Sprintf("  * %s by %s - %.1f stars\n", p.Title, p.Brand, p.Rating))
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("insights: write %s: %w", path, err)
	}
	return nil
}

func brandNames(brands []models.BrandAggregate, n int) []string {
	names := make([]string, 0, n)
	for i, b := range brands {
		if i >= n {
			break
		}
		names = append(names, b.Brand)
	}
	return names
}

func highestRatedBrand(brands []models.BrandAggregate) string {
	best := brands[0]
	for _, b := range brands[1:] {
		if b.MeanRating > best.MeanRating {
			best = b
		}
	}
	return best.Brand
}

// untappedBrands returns low-presence brands with strong ratings.
func untappedBrands(brands []models.BrandAggregate) []string {
	var low []models.BrandAggregate
	for _, b := range brands {
		if b.Frequency < maxBrandFrequencyForUntapped {
			low = append(low, b)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].MeanRating > low[j].MeanRating
	})

	names := make([]string, 0, shortlistN)
	for i, b := range low {
		if i >= shortlistN {
			break
		}
		names = append(names, b.Brand)
	}
	return names
}
