package catalog

import (
	"strings"

	"farmer-offers-service/internal/models"
)

// Catalog is an immutable table of product rows keyed by (Product, SKU).
// It is built once by the loader and never mutated afterwards, so any number
// of evaluations may read it concurrently without locking.
type Catalog struct {
	rows  []models.CatalogRow
	index map[string]int
}

func key(product, sku string) string {
	return product + "\x00" + sku
}

// New builds a catalog from rows, preserving row order. On duplicate
// (Product, SKU) pairs the first row wins; the loader warns about duplicates
// before calling this.
func New(rows []models.CatalogRow) *Catalog {
	c := &Catalog{
		rows:  rows,
		index: make(map[string]int, len(rows)),
	}
	for i, row := range rows {
		k := key(row.Product, row.SKU)
		if _, exists := c.index[k]; !exists {
			c.index[k] = i
		}
	}
	return c
}

// Lookup returns the row for a (product, SKU) pair.
func (c *Catalog) Lookup(product, sku string) (models.CatalogRow, bool) {
	i, ok := c.index[key(product, sku)]
	if !ok {
		return models.CatalogRow{}, false
	}
	return c.rows[i], true
}

// Rows returns all rows in spreadsheet order. Callers must not modify the
// returned slice.
func (c *Catalog) Rows() []models.CatalogRow {
	return c.rows
}

// Len returns the number of rows.
func (c *Catalog) Len() int {
	return len(c.rows)
}

// Products returns the distinct product names in first-seen order.
func (c *Catalog) Products() []string {
	seen := make(map[string]bool)
	var products []string
	for _, row := range c.rows {
		if !seen[row.Product] {
			seen[row.Product] = true
			products = append(products, row.Product)
		}
	}
	return products
}

// SKUsForProduct returns the SKUs of one product in row order. The product
// name is matched case-insensitively, the way the form submits it back.
func (c *Catalog) SKUsForProduct(product string) []string {
	var skus []string
	for _, row := range c.rows {
		if strings.EqualFold(row.Product, product) {
			skus = append(skus, row.SKU)
		}
	}
	return skus
}
