package catalog

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"farmer-offers-service/internal/config"
	"farmer-offers-service/internal/models"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "test")
}

// buildWorkbook writes a single-sheet workbook with the given rows, header first.
func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheet)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func header() []interface{} {
	cols := make([]interface{}, len(models.RequiredColumns))
	for i, c := range models.RequiredColumns {
		cols[i] = c
	}
	return cols
}

func TestParseWorkbook(t *testing.T) {
	data := buildWorkbook(t, "Catalog", [][]interface{}{
		header(),
		{"Seedling Tray", "A1", 500, 250, 100, "10%"},
		{"Drip Kit", "B2", "1,200", 400, 300, "0.2"},
	})

	rows, err := ParseWorkbook(data, "", testLogger())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, models.CatalogRow{
		Product: "Seedling Tray", SKU: "A1",
		FarmerPrice: 500, CTPurchasePrice: 250, CTSKUProfit: 100, MinProfitPct: 0.1,
	}, rows[0])
	assert.Equal(t, 1200.0, rows[1].FarmerPrice, "thousands separator tolerated")
	assert.InDelta(t, 0.2, rows[1].MinProfitPct, 1e-9)
}

func TestParseWorkbookMissingColumns(t *testing.T) {
	data := buildWorkbook(t, "Catalog", [][]interface{}{
		{"Product", "SKU", "Farmer Price(with GST)"},
		{"Seedling Tray", "A1", 500},
	})

	_, err := ParseWorkbook(data, "", testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), models.ColumnMinProfit)
}

func TestParseWorkbookHeaderCaseInsensitive(t *testing.T) {
	data := buildWorkbook(t, "Catalog", [][]interface{}{
		{"product", "sku", "FARMER PRICE(WITH GST)", "ct purchase price(with gst)", "CT SKU Profit", "min. profit"},
		{"Seedling Tray", "A1", 500, 250, 100, 15},
	})

	rows, err := ParseWorkbook(data, "", testLogger())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 0.15, rows[0].MinProfitPct, 1e-9)
}

func TestParseWorkbookSkipsIncompleteRows(t *testing.T) {
	data := buildWorkbook(t, "Catalog", [][]interface{}{
		header(),
		{"", "A1", 500, 250, 100, "10%"},
		{"Seedling Tray", "", 500, 250, 100, "10%"},
		{"Seedling Tray", "A1", 500, 250, 100, "10%"},
	})

	rows, err := ParseWorkbook(data, "", testLogger())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].SKU)
}

func TestParseWorkbookMalformedCellsDefaultToZero(t *testing.T) {
	data := buildWorkbook(t, "Catalog", [][]interface{}{
		header(),
		{"Seedling Tray", "A1", "n/a", "", "abc", "oops"},
	})

	rows, err := ParseWorkbook(data, "", testLogger())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Zero(t, rows[0].FarmerPrice)
	assert.Zero(t, rows[0].CTPurchasePrice)
	assert.Zero(t, rows[0].CTSKUProfit)
	assert.Zero(t, rows[0].MinProfitPct)
}

func TestParseWorkbookDuplicateFirstWins(t *testing.T) {
	data := buildWorkbook(t, "Catalog", [][]interface{}{
		header(),
		{"Seedling Tray", "A1", 500, 250, 100, "10%"},
		{"Seedling Tray", "A1", 999, 999, 999, "99%"},
	})

	rows, err := ParseWorkbook(data, "", testLogger())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 100.0, rows[0].CTSKUProfit)
}

func TestParseWorkbookSheetSelection(t *testing.T) {
	data := buildWorkbook(t, "Offers", [][]interface{}{
		header(),
		{"Seedling Tray", "A1", 500, 250, 100, "10%"},
	})

	rows, err := ParseWorkbook(data, "offers", testLogger())
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = ParseWorkbook(data, "Missing", testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseWorkbookNeedsDataRows(t *testing.T) {
	data := buildWorkbook(t, "Catalog", [][]interface{}{header()})

	_, err := ParseWorkbook(data, "", testLogger())
	require.Error(t, err)
}

func TestLoaderLoadsFromFile(t *testing.T) {
	data := buildWorkbook(t, "Catalog", [][]interface{}{
		header(),
		{"Seedling Tray", "A1", 500, 250, 100, "10%"},
		{"Drip Kit", "B2", 1200, 400, 300, "20%"},
	})

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	loader := NewLoader(&config.Config{CatalogFile: path}, nil, logger)

	cat, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	row, ok := cat.Lookup("Drip Kit", "B2")
	assert.True(t, ok)
	assert.InDelta(t, 0.2, row.MinProfitPct, 1e-9)
}

func TestLoaderNoSourceConfigured(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	loader := NewLoader(&config.Config{}, nil, logger)

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog source configured")
}
