package models

// Spreadsheet column headers the catalog loader requires. Headers are matched
// case-insensitively after trimming.
const (
	ColumnProduct         = "Product"
	ColumnSKU             = "SKU"
	ColumnFarmerPrice     = "Farmer Price(with GST)"
	ColumnCTPurchasePrice = "CT Purchase Price(with GST)"
	ColumnCTSKUProfit     = "CT SKU Profit"
	ColumnMinProfit       = "Min. Profit"
)

// RequiredColumns lists the headers a catalog workbook must carry, in template order.
var RequiredColumns = []string{
	ColumnProduct,
	ColumnSKU,
	ColumnFarmerPrice,
	ColumnCTPurchasePrice,
	ColumnCTSKUProfit,
	ColumnMinProfit,
}

// CatalogRow is one sellable SKU of a product. (Product, SKU) is unique within
// a catalog. MinProfitPct is stored as a fraction in [0,1], normalized at load.
type CatalogRow struct {
	Product         string  `json:"product"`
	SKU             string  `json:"sku"`
	FarmerPrice     float64 `json:"farmerPrice"`
	CTPurchasePrice float64 `json:"ctPurchasePrice"`
	CTSKUProfit     float64 `json:"ctSkuProfit"`
	MinProfitPct    float64 `json:"minProfitPct"`
}

// OrderLine is one row of the order form, purchased or free. Product and SKU
// are not validated here: lines that do not match a catalog row are excluded
// from the totals rather than rejected.
type OrderLine struct {
	Product string `json:"product"`
	SKU     string `json:"sku"`
	Qty     int    `json:"qty" binding:"min=0"`
}

// EligibilityResult holds the verdict and the totals it was derived from.
// LeftoverProfit is purchased profit minus the cost of items given free; the
// order is eligible when it covers the required minimum computed from
// purchases alone.
type EligibilityResult struct {
	Eligible               bool    `json:"eligible"`
	LeftoverProfit         float64 `json:"leftoverProfit"`
	TotalPurchasedProfit   float64 `json:"totalPurchasedProfit"`
	TotalRequiredMinProfit float64 `json:"totalRequiredMinProfit"`
	TotalFreeCost          float64 `json:"totalFreeCost"`
}

// Suggestion is one free-product proposal: the maximum quantity of a SKU that
// fits the leftover profit budget on its own.
type Suggestion struct {
	Product string `json:"product"`
	SKU     string `json:"sku"`
	MaxQty  int    `json:"maxQty"`
}
