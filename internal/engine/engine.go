package engine

import (
	"math"

	"github.com/sirupsen/logrus"

	"farmer-offers-service/internal/models"
)

// Catalog is the read-only product table the engine evaluates orders against.
type Catalog interface {
	Lookup(product, sku string) (models.CatalogRow, bool)
	Rows() []models.CatalogRow
}

// Engine computes offer eligibility and free-product suggestions. It holds no
// state beyond a logger; evaluation is pure arithmetic over the catalog.
type Engine struct {
	logger *logrus.Entry
}

// New creates an eligibility engine.
func New(logger *logrus.Logger) *Engine {
	return &Engine{
		logger: logger.WithField("component", "engine"),
	}
}

// Evaluate applies the profit-margin rule to an order. Purchased lines
// accumulate realized profit and the required minimum (profit weighted by the
// SKU's minimum margin); free lines accumulate the internal cost of goods
// given away. The order is eligible when the profit left after covering free
// items still meets the required minimum, inclusively. The required minimum is
// computed from purchases only; free items reduce the available budget, not
// the requirement.
//
// Lines referencing a (product, SKU) pair absent from the catalog contribute
// nothing to any total. They are logged at debug level but never surfaced.
func (e *Engine) Evaluate(purchased, free []models.OrderLine, cat Catalog) models.EligibilityResult {
	var result models.EligibilityResult

	for _, line := range purchased {
		row, ok := cat.Lookup(line.Product, line.SKU)
		if !ok {
			e.logUnknownLine("purchased", line)
			continue
		}
		qty := float64(line.Qty)
		result.TotalPurchasedProfit += row.CTSKUProfit * qty
		result.TotalRequiredMinProfit += row.CTSKUProfit * qty * row.MinProfitPct
	}

	for _, line := range free {
		row, ok := cat.Lookup(line.Product, line.SKU)
		if !ok {
			e.logUnknownLine("free", line)
			continue
		}
		result.TotalFreeCost += row.CTPurchasePrice * float64(line.Qty)
	}

	result.LeftoverProfit = result.TotalPurchasedProfit - result.TotalFreeCost
	result.Eligible = result.LeftoverProfit >= result.TotalRequiredMinProfit

	return result
}

// AvailableForFree is the profit budget suggestions are drawn from: realized
// profit minus the required minimum. Distinct from LeftoverProfit, which
// subtracts the cost of free items instead.
func AvailableForFree(result models.EligibilityResult) float64 {
	return result.TotalPurchasedProfit - result.TotalRequiredMinProfit
}

// Suggest proposes free products fitting the given budget. The catalog is
// scanned in row order; each row's quantity is floor(budget / CT purchase
// price), computed against the full undeducted budget — bounds are independent
// per row, not a joint allocation. Rows priced at zero are never suggested.
// A budget of zero or less yields no suggestions.
func (e *Engine) Suggest(availableForFree float64, cat Catalog) []models.Suggestion {
	if availableForFree <= 0 {
		return nil
	}

	var suggestions []models.Suggestion
	for _, row := range cat.Rows() {
		if row.CTPurchasePrice <= 0 {
			continue
		}
		maxQty := int(math.Floor(availableForFree / row.CTPurchasePrice))
		if maxQty <= 0 {
			continue
		}
		suggestions = append(suggestions, models.Suggestion{
			Product: row.Product,
			SKU:     row.SKU,
			MaxQty:  maxQty,
		})
	}
	return suggestions
}

// OrderValue totals FarmerPrice * Qty over the lines that match the catalog,
// for the form's purchase/free value summaries. Unknown lines are skipped the
// same way Evaluate skips them.
func (e *Engine) OrderValue(lines []models.OrderLine, cat Catalog) float64 {
	var total float64
	for _, line := range lines {
		row, ok := cat.Lookup(line.Product, line.SKU)
		if !ok {
			continue
		}
		total += row.FarmerPrice * float64(line.Qty)
	}
	return total
}

func (e *Engine) logUnknownLine(list string, line models.OrderLine) {
	e.logger.WithFields(logrus.Fields{
		"list":    list,
		"product": line.Product,
		"sku":     line.SKU,
	}).Debug("Order line references unknown catalog entry, excluded from totals")
}
