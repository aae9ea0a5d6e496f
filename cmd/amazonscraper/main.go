package main

import (
	"context"
	"fmt"
	"os"

	"market-scout/config"
	"market-scout/models"
	"market-scout/scraper/amazon"
	"market-scout/services"
	"market-scout/storage"
	"market-scout/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	ctx := context.Background()

	logger.Info("=== Amazon Sponsored Product Scraper starting ===")
	logger.Info("Config — search: %q | pages: %d | delay: %dms | retries: %d",
		cfg.SearchTerm, cfg.PagesToScrape, cfg.PageDelayMs, cfg.MaxRetries)

	amazonScraper := amazon.New(cfg, logger)
	rawProducts, err := amazonScraper.Scrape(ctx)
	if err != nil {
		logger.Error("Amazon scrape failed: %v", err)
	}

	if len(rawProducts) == 0 {
		logger.Error("No sponsored products were scraped. Exiting.")
		os.Exit(1)
	}

	logger.Info("Scraped %d raw sponsored products — writing to CSV...", len(rawProducts))

	rawPath := cfg.OutputPath(cfg.RawCSVName)
	if err := writeRawCSV(rawPath, rawProducts); err != nil {
		logger.Error("Raw CSV write failed: %v", err)
	} else {
		logger.Info("Raw products saved to %s", rawPath)
	}

	cleaner := services.NewCleaner(logger)
	products := cleaner.Clean(rawProducts)

	if len(products) == 0 {
		logger.Error("All products were dropped during cleaning. Exiting.")
		os.Exit(1)
	}

	logger.Info("Cleaned dataset: %d products", len(products))

	cleanPath := cfg.OutputPath(cfg.CleanCSVName)
	if err := writeCleanCSV(cleanPath, products); err != nil {
		logger.Error("Clean CSV write failed: %v", err)
	} else {
		logger.Info("Clean products saved to %s", cleanPath)
	}

	if cfg.PostgresEnabled() {
		products = persistPostgres(cfg, logger, products)
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(products)

	chartSvc := services.NewChartService(logger)
	charts, err := chartSvc.Render(report, products, cfg.OutputDir)
	if err != nil {
		logger.Error("Chart rendering failed: %v", err)
	}
	for _, c := range charts {
		logger.Info("Chart saved to %s", c)
	}

	insightsPath := cfg.OutputPath(cfg.InsightsName)
	if err := services.WriteInsights(report, insightsPath); err != nil {
		logger.Error("Insights report write failed: %v", err)
	} else {
		logger.Info("Insights report saved to %s", insightsPath)
	}

	insightSvc.Print(report)

	fmt.Printf("  Done. Raw CSV → %s | Clean CSV → %s | Insights → %s\n\n",
		rawPath, cleanPath, insightsPath)
}

func writeRawCSV(path string, products []*models.RawProduct) error {
	w, err := storage.NewRawCSVWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.WriteRaw(products)
}

func writeCleanCSV(path string, products []*models.Product) error {
	w, err := storage.NewCleanCSVWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Write(products)
}

// persistPostgres stores the cleaned products and re-reads them so the
// insight stage runs over exactly what the database holds. Storage failures
// degrade to the in-memory dataset.
func persistPostgres(cfg *config.Config, logger *utils.Logger, products []*models.Product) []*models.Product {
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		return products
	}
	defer pgWriter.Close()

	if err := pgWriter.Write(products); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return products
	}
	logger.Info("Clean products stored in PostgreSQL (table: products)")

	stored, err := pgWriter.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch products from DB for insights: %v", err)
		return products
	}
	return stored
}
