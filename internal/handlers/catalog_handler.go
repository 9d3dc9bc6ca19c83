package handlers

import (
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"farmer-offers-service/internal/catalog"
	"farmer-offers-service/internal/config"
	"farmer-offers-service/internal/events"
	"farmer-offers-service/internal/models"
)

type CatalogHandler struct {
	cfg       *config.Config
	store     *catalog.Store
	loader    *catalog.Loader
	publisher *events.Publisher
}

// NewCatalogHandler creates a handler for catalog browsing, template download
// and reload. publisher may be nil.
func NewCatalogHandler(cfg *config.Config, store *catalog.Store, loader *catalog.Loader, publisher *events.Publisher) *CatalogHandler {
	return &CatalogHandler{
		cfg:       cfg,
		store:     store,
		loader:    loader,
		publisher: publisher,
	}
}

// GetCatalog returns the full catalog table
// @Summary Get catalog
// @Description List all catalog rows with pricing and profit data
// @Tags catalog
// @Produce json
// @Success 200 {object} models.CatalogResponse
// @Router /catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	cat := h.store.Get()
	c.JSON(http.StatusOK, models.CatalogResponse{
		Success: true,
		Rows:    cat.Rows(),
		Total:   cat.Len(),
	})
}

// GetProducts returns unique product names for the form dropdowns
// @Summary List products
// @Description List distinct product names in catalog order
// @Tags catalog
// @Produce json
// @Success 200 {object} models.ProductListResponse
// @Router /catalog/products [get]
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, models.ProductListResponse{
		Success:  true,
		Products: h.store.Get().Products(),
		FormRows: h.cfg.FormRowCount,
	})
}

// GetProductSKUs returns the SKUs of one product
// @Summary List SKUs for a product
// @Description List the SKUs of a product in catalog order
// @Tags catalog
// @Produce json
// @Param product path string true "Product name"
// @Success 200 {object} models.SKUListResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /catalog/products/{product}/skus [get]
func (h *CatalogHandler) GetProductSKUs(c *gin.Context) {
	product := c.Param("product")

	skus := h.store.Get().SKUsForProduct(product)
	if len(skus) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PRODUCT_NOT_FOUND",
				Message: "No catalog rows for this product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SKUListResponse{
		Success: true,
		Product: product,
		SKUs:    skus,
	})
}

// GetTemplate returns the catalog template definition or file
// @Summary Download catalog template
// @Description Download the catalog spreadsheet template as xlsx, csv or the column list as json
// @Tags catalog
// @Produce json
// @Param format query string false "Template format: json, csv or xlsx" default(json)
// @Success 200 {object} map[string]interface{}
// @Router /catalog/template [get]
func (h *CatalogHandler) GetTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	switch format {
	case "csv":
		h.generateCSVTemplate(c)
	case "xlsx":
		h.generateXLSXTemplate(c)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"columns": models.RequiredColumns,
		})
	}
}

// generateCSVTemplate generates and downloads a CSV template (headers only)
func (h *CatalogHandler) generateCSVTemplate(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=farmer_offer_catalog_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(models.RequiredColumns)
}

// generateXLSXTemplate generates and downloads an Excel template
func (h *CatalogHandler) generateXLSXTemplate(c *gin.Context) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Catalog"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"27AE60"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range models.RequiredColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	f.NewSheet("Instructions")
	f.SetCellValue("Instructions", "A1", "Farmer Offer Catalog Instructions")
	f.SetCellValue("Instructions", "A3", "One row per (Product, SKU) pair; the pair must be unique.")
	f.SetCellValue("Instructions", "A4", "Prices are GST-inclusive amounts in INR.")
	f.SetCellValue("Instructions", "A5", "Min. Profit accepts a percentage (\"15\" or \"15%\") or a fraction (\"0.15\").")

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=farmer_offer_catalog_template.xlsx")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "TEMPLATE_FAILED",
				Message: "Failed to generate template",
				Details: &models.JSON{"error": err.Error()},
			},
		})
	}
}

// ReloadCatalog re-fetches the catalog and swaps it in atomically
// @Summary Reload catalog
// @Description Re-download the catalog workbook, rebuild the table and swap it in
// @Tags catalog
// @Produce json
// @Success 200 {object} models.ReloadResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /catalog/reload [post]
func (h *CatalogHandler) ReloadCatalog(c *gin.Context) {
	cat, err := h.loader.Reload(c.Request.Context())
	if err != nil {
		// The current catalog stays in place on any reload failure.
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "RELOAD_FAILED",
				Message: "Failed to reload catalog",
				Details: &models.JSON{"error": err.Error()},
			},
		})
		return
	}

	h.store.Swap(cat)

	if h.publisher != nil {
		h.publisher.PublishCatalogReloaded(cat.Len())
	}

	c.JSON(http.StatusOK, models.ReloadResponse{
		Success: true,
		Rows:    cat.Len(),
	})
}
