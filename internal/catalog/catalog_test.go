package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"farmer-offers-service/internal/models"
)

func sampleRows() []models.CatalogRow {
	return []models.CatalogRow{
		{Product: "Seedling Tray", SKU: "A1", FarmerPrice: 500, CTPurchasePrice: 250, CTSKUProfit: 100, MinProfitPct: 0.1},
		{Product: "Seedling Tray", SKU: "A2", FarmerPrice: 800, CTPurchasePrice: 350, CTSKUProfit: 150, MinProfitPct: 0.1},
		{Product: "Drip Kit", SKU: "B2", FarmerPrice: 1200, CTPurchasePrice: 400, CTSKUProfit: 300, MinProfitPct: 0.2},
	}
}

func TestLookup(t *testing.T) {
	cat := New(sampleRows())

	row, ok := cat.Lookup("Drip Kit", "B2")
	assert.True(t, ok)
	assert.Equal(t, 300.0, row.CTSKUProfit)

	_, ok = cat.Lookup("Drip Kit", "A1")
	assert.False(t, ok, "SKU belongs to a different product")

	_, ok = cat.Lookup("Mystery", "Z9")
	assert.False(t, ok)
}

func TestDuplicateKeyFirstRowWins(t *testing.T) {
	rows := append(sampleRows(), models.CatalogRow{Product: "Seedling Tray", SKU: "A1", CTSKUProfit: 999})
	cat := New(rows)

	row, ok := cat.Lookup("Seedling Tray", "A1")
	assert.True(t, ok)
	assert.Equal(t, 100.0, row.CTSKUProfit)
}

func TestProducts(t *testing.T) {
	cat := New(sampleRows())

	assert.Equal(t, []string{"Seedling Tray", "Drip Kit"}, cat.Products())
}

func TestSKUsForProduct(t *testing.T) {
	cat := New(sampleRows())

	assert.Equal(t, []string{"A1", "A2"}, cat.SKUsForProduct("Seedling Tray"))
	assert.Equal(t, []string{"A1", "A2"}, cat.SKUsForProduct("seedling tray"))
	assert.Empty(t, cat.SKUsForProduct("Mystery"))
}

func TestStoreSwap(t *testing.T) {
	store := NewStore(New(sampleRows()))
	assert.Equal(t, 3, store.Get().Len())

	store.Swap(New(sampleRows()[:1]))
	assert.Equal(t, 1, store.Get().Len())
}
