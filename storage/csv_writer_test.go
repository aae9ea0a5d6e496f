package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"market-scout/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestRawCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")
	w, err := NewRawCSVWriter(path)
	if err != nil {
		t.Fatalf("NewRawCSVWriter: %v", err)
	}

	scraped := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []*models.RawProduct{
		{
			Title: "Plush Bear", Brand: "SuperToy", Price: "1,299",
			Rating: "4.3 out of 5 stars", Reviews: "1,204",
			ImageURL: "https://img.example/a.jpg", ProductURL: "https://example.com/dp/A1",
			Sponsored: true, ScrapedAt: scraped,
		},
	}
	if err := w.WriteRaw(records); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 record", len(rows))
	}
	if rows[0][0] != "title" || rows[0][8] != "scraped_at" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "Plush Bear" || rows[1][2] != "1,299" || rows[1][7] != "true" {
		t.Errorf("unexpected record row: %v", rows[1])
	}
	if rows[1][8] != scraped.Format(time.RFC3339) {
		t.Errorf("scraped_at = %q, want RFC3339 of %v", rows[1][8], scraped)
	}
}

func TestCleanCSVWriterPriceColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")
	w, err := NewCleanCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCleanCSVWriter: %v", err)
	}

	products := []*models.Product{
		{Title: "Priced", Brand: "A", Price: 499.5, HasPrice: true, Rating: 4.2, Reviews: 17, ProductURL: "u1", Sponsored: true},
		{Title: "Unpriced", Brand: "B", Rating: 3.9, Reviews: 8, ProductURL: "u2", Sponsored: true},
	}
	if err := w.Write(products); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}
	if rows[1][2] != "499.5" {
		t.Errorf("priced record price column = %q, want 499.5", rows[1][2])
	}
	if rows[2][2] != "" {
		t.Errorf("unpriced record price column = %q, want empty", rows[2][2])
	}
	if rows[1][4] != "17" || rows[2][4] != "8" {
		t.Errorf("review columns = %q, %q", rows[1][4], rows[2][4])
	}
}

func TestCSVWriterCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "raw.csv")
	w, err := NewRawCSVWriter(path)
	if err != nil {
		t.Fatalf("NewRawCSVWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}
