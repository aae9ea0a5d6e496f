package storage

import "market-scout/models"

// ProductWriter is the interface any storage backend must satisfy.
type ProductWriter interface {
	Write(products []*models.Product) error
	Close() error
}

// RawProductWriter is the interface for persisting unprocessed scraped data.
type RawProductWriter interface {
	WriteRaw(products []*models.RawProduct) error
	Close() error
}
