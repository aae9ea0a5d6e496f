package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"market-scout/models"
	"market-scout/utils"
)

// Chart output filenames, fixed per run.
const (
	BrandChartName   = "brand_performance.png"
	PriceChartName   = "price_vs_rating.png"
	ReviewsChartName = "review_rating_distribution.png"
)

// ChartService renders the analysis charts as PNG files.
type ChartService struct {
	logger *utils.Logger
}

// NewChartService creates a ChartService with the given logger.
func NewChartService(logger *utils.Logger) *ChartService {
	return &ChartService{logger: logger}
}

// Render writes the three analysis charts into dir and returns the written
// paths. A chart that cannot be drawn from the available data (too few
// records) is skipped with a warning; the remaining charts still render.
func (s *ChartService) Render(report *models.InsightReport, products []*models.Product, dir string) ([]string, error) {
	var written []string

	renderers := []struct {
		name string
		fn   func(path string) (bool, error)
	}{
		{BrandChartName, func(p string) (bool, error) { return s.renderBrandChart(report, p) }},
		{PriceChartName, func(p string) (bool, error) { return s.renderPriceChart(products, p) }},
		{ReviewsChartName, func(p string) (bool, error) { return s.renderReviewsChart(report, p) }},
	}

	for _, r := range renderers {
		path := filepath.Join(dir, r.name)
		ok, err := r.fn(path)
		if err != nil {
			return written, err
		}
		if !ok {
			s.logger.Warn("[charts] Skipping %s: not enough data", r.name)
			continue
		}
		written = append(written, path)
	}

	return written, nil
}

// renderBrandChart draws the top brands by frequency.
func (s *ChartService) renderBrandChart(report *models.InsightReport, path string) (bool, error) {
	brands := report.Brands
	if len(brands) > topN {
		brands = brands[:topN]
	}
	if len(brands) == 0 {
		return false, nil
	}

	maxFreq := 0.0
	bars := make([]chart.Value, 0, len(brands))
	for _, b := range brands {
		if f := float64(b.Frequency); f > maxFreq {
			maxFreq = f
		}
		bars = append(bars, chart.Value{
			Label: truncate(b.Brand, 12),
			Value: float64(b.Frequency),
		})
	}

	graph := chart.BarChart{
		Title:    "Top Brands by Frequency",
		Width:    800,
		Height:   512,
		BarWidth: 60,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxFreq + 1},
		},
		Bars: bars,
	}

	return true, s.renderPNG(&graph, path)
}

// renderPriceChart draws price against rating for priced records.
func (s *ChartService) renderPriceChart(products []*models.Product, path string) (bool, error) {
	var xs, ys []float64
	for _, p := range products {
		if p.HasPrice {
			xs = append(xs, p.Rating)
			ys = append(ys, p.Price)
		}
	}
	if len(xs) < 2 {
		return false, nil
	}

	graph := chart.Chart{
		Title:  "Price vs. Rating",
		Width:  800,
		Height: 512,
		XAxis:  chart.XAxis{Name: "Rating (out of 5)"},
		YAxis:  chart.YAxis{Name: "Price"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
					DotColor:    drawing.ColorBlue,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	return true, s.renderPNG(&graph, path)
}

// renderReviewsChart draws the most-reviewed products.
func (s *ChartService) renderReviewsChart(report *models.InsightReport, path string) (bool, error) {
	if len(report.TopByReviews) == 0 {
		return false, nil
	}

	maxReviews := 0.0
	bars := make([]chart.Value, 0, len(report.TopByReviews))
	for _, p := range report.TopByReviews {
		if f := float64(p.Reviews); f > maxReviews {
			maxReviews = f
		}
		bars = append(bars, chart.Value{
			Label: truncate(p.Title, 12),
			Value: float64(p.Reviews),
		})
	}

	graph := chart.BarChart{
		Title:    "Top Products by Review Count",
		Width:    800,
		Height:   512,
		BarWidth: 60,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxReviews + 1},
		},
		Bars: bars,
	}

	return true, s.renderPNG(&graph, path)
}

type pngRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func (s *ChartService) renderPNG(graph pngRenderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("charts: create %s: %w", path, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("charts: render %s: %w", path, err)
	}

	s.logger.Info("[charts] Wrote %s", path)
	return nil
}
