package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"market-scout/models"
)

// RawCSVWriter writes raw (uncleaned) product records to a CSV file.
// It is safe for concurrent use.
type RawCSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewRawCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewRawCSVWriter(path string) (*RawCSVWriter, error) {
	f, w, err := createCSV(path, []string{
		"title", "brand", "price", "rating", "reviews", "image_url", "product_url", "sponsored", "scraped_at",
	})
	if err != nil {
		return nil, err
	}
	return &RawCSVWriter{file: f, writer: w}, nil
}

// WriteRaw appends all raw product records to the CSV file.
func (c *RawCSVWriter) WriteRaw(products []*models.RawProduct) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range products {
		row := []string{
			p.Title,
			p.Brand,
			p.Price,
			p.Rating,
			p.Reviews,
			p.ImageURL,
			p.ProductURL,
			strconv.FormatBool(p.Sponsored),
			p.ScrapedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *RawCSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// CleanCSVWriter writes cleaned product records to a CSV file.
// It is safe for concurrent use.
type CleanCSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCleanCSVWriter creates (or truncates) the CSV file at the given path
// and writes the header row.
func NewCleanCSVWriter(path string) (*CleanCSVWriter, error) {
	f, w, err := createCSV(path, []string{
		"title", "brand", "price", "rating", "reviews", "image_url", "product_url", "sponsored",
	})
	if err != nil {
		return nil, err
	}
	return &CleanCSVWriter{file: f, writer: w}, nil
}

// Write appends all cleaned product records to the CSV file. Records without
// a parsed price get an empty price column rather than a zero.
func (c *CleanCSVWriter) Write(products []*models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range products {
		price := ""
		if p.HasPrice {
			price = strconv.FormatFloat(p.Price, 'f', -1, 64)
		}
		row := []string{
			p.Title,
			p.Brand,
			price,
			strconv.FormatFloat(p.Rating, 'f', -1, 64),
			strconv.Itoa(p.Reviews),
			p.ImageURL,
			p.ProductURL,
			strconv.FormatBool(p.Sponsored),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CleanCSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func createCSV(path string, header []string) (*os.File, *csv.Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return f, w, nil
}
