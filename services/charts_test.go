package services

import (
	"os"
	"path/filepath"
	"testing"

	"market-scout/utils"
)

func TestChartServiceRender(t *testing.T) {
	dir := t.TempDir()
	products := scenarioProducts()
	report := NewInsightService(utils.NewLogger()).Generate(products)

	svc := NewChartService(utils.NewLogger())
	files, err := svc.Render(report, products, dir)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("rendered %d charts, want 3: %v", len(files), files)
	}

	for _, name := range []string{BrandChartName, PriceChartName, ReviewsChartName} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("missing chart %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("chart %s is empty", name)
		}
	}
}

func TestChartServiceSkipsScatterWithOnePrice(t *testing.T) {
	dir := t.TempDir()
	products := scenarioProducts()[:1]
	report := NewInsightService(utils.NewLogger()).Generate(products)

	svc := NewChartService(utils.NewLogger())
	files, err := svc.Render(report, products, dir)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, f := range files {
		if filepath.Base(f) == PriceChartName {
			t.Error("scatter chart should be skipped with a single priced record")
		}
	}
	if _, err := os.Stat(filepath.Join(dir, PriceChartName)); !os.IsNotExist(err) {
		t.Errorf("scatter chart file should not exist, stat err = %v", err)
	}
}

func TestChartServiceEmptyInput(t *testing.T) {
	dir := t.TempDir()
	report := NewInsightService(utils.NewLogger()).Generate(nil)

	svc := NewChartService(utils.NewLogger())
	files, err := svc.Render(report, nil, dir)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("no charts expected for empty input, got %v", files)
	}
}
