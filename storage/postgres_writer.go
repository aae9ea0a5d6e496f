package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"market-scout/models"
)

// PostgresWriter persists cleaned products to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id          SERIAL PRIMARY KEY,
			title       TEXT         NOT NULL,
			brand       TEXT         NOT NULL DEFAULT '',
			price       NUMERIC(12,2),
			rating      NUMERIC(4,2) NOT NULL DEFAULT 0,
			reviews     INTEGER      NOT NULL DEFAULT 0,
			image_url   TEXT         NOT NULL DEFAULT '',
			product_url TEXT         NOT NULL,
			sponsored   BOOLEAN      NOT NULL DEFAULT TRUE,
			created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			UNIQUE (title, product_url)
		);

		CREATE INDEX IF NOT EXISTS idx_products_brand   ON products(brand);
		CREATE INDEX IF NOT EXISTS idx_products_price   ON products(price);
		CREATE INDEX IF NOT EXISTS idx_products_rating  ON products(rating);
		CREATE INDEX IF NOT EXISTS idx_products_reviews ON products(reviews);
	`)
	return err
}

// Clear deletes all existing products from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM products")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts ALL cleaned products, clearing old data first.
func (pw *PostgresWriter) Write(products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(products); i += batchSize {
		end := i + batchSize
		if end > len(products) {
			end = len(products)
		}
		if err := pw.insertBatch(products[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Product) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*8)

	for idx, p := range batch {
		base := idx * 8
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		price := sql.NullFloat64{Float64: p.Price, Valid: p.HasPrice}
		valueArgs = append(valueArgs,
			p.Title, p.Brand, price, p.Rating, p.Reviews, p.ImageURL, p.ProductURL, p.Sponsored)
	}

	query := fmt.Sprintf(`
		INSERT INTO products (title, brand, price, rating, reviews, image_url, product_url, sponsored)
		VALUES %s
		ON CONFLICT (title, product_url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored products — used by the insight service.
func (pw *PostgresWriter) FetchAll() ([]*models.Product, error) {
	rows, err := pw.db.Query(`
		SELECT title, brand, price, rating, reviews, image_url, product_url, sponsored
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		var price sql.NullFloat64
		if err := rows.Scan(
			&p.Title, &p.Brand, &price, &p.Rating,
			&p.Reviews, &p.ImageURL, &p.ProductURL, &p.Sponsored,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		p.Price = price.Float64
		p.HasPrice = price.Valid
		products = append(products, p)
	}
	return products, rows.Err()
}
