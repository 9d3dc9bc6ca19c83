package models

import "github.com/google/uuid"

// JSON is a free-form detail payload for error responses.
type JSON map[string]interface{}

// Error represents an error detail
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details *JSON  `json:"details,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

// CheckEligibilityRequest carries the two order lists from the form. The form
// renders three rows per list, but the service accepts any length.
type CheckEligibilityRequest struct {
	Purchased []OrderLine `json:"purchased" binding:"omitempty,dive"`
	Free      []OrderLine `json:"free" binding:"omitempty,dive"`
}

// CheckEligibilityResponse is the full payload the form renders: verdict,
// totals, order values for the summary boxes, and free-product suggestions.
type CheckEligibilityResponse struct {
	Success        bool              `json:"success"`
	EvaluationID   uuid.UUID         `json:"evaluationId"`
	Result         EligibilityResult `json:"result"`
	PurchasedValue float64           `json:"purchasedValue"`
	FreeValue      float64           `json:"freeValue"`
	Message        string            `json:"message"`
	Suggestions    []Suggestion      `json:"suggestions"`
}

// CatalogResponse returns the full catalog table.
type CatalogResponse struct {
	Success bool         `json:"success"`
	Rows    []CatalogRow `json:"rows"`
	Total   int          `json:"total"`
}

// ProductListResponse returns unique product names for the form dropdowns.
type ProductListResponse struct {
	Success  bool     `json:"success"`
	Products []string `json:"products"`
	FormRows int      `json:"formRows"`
}

// SKUListResponse returns the SKUs of one product.
type SKUListResponse struct {
	Success bool     `json:"success"`
	Product string   `json:"product"`
	SKUs    []string `json:"skus"`
}

// ReloadResponse reports the outcome of a catalog reload.
type ReloadResponse struct {
	Success bool `json:"success"`
	Rows    int  `json:"rows"`
}
