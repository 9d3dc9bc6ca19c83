package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"farmer-offers-service/internal/catalog"
	"farmer-offers-service/internal/engine"
	"farmer-offers-service/internal/events"
	"farmer-offers-service/internal/models"
)

// Verdict messages rendered by the form.
const (
	MessageEligible    = "Eligible for Free Products!"
	MessageNotEligible = "Not Eligible"
)

// Evaluator is the engine surface the handler needs. Satisfied by
// *engine.Engine.
type Evaluator interface {
	Evaluate(purchased, free []models.OrderLine, cat engine.Catalog) models.EligibilityResult
	Suggest(availableForFree float64, cat engine.Catalog) []models.Suggestion
	OrderValue(lines []models.OrderLine, cat engine.Catalog) float64
}

type OffersHandler struct {
	engine    Evaluator
	store     *catalog.Store
	publisher *events.Publisher
}

// NewOffersHandler creates a handler for eligibility checks. publisher may be
// nil when NATS is unavailable.
func NewOffersHandler(eng Evaluator, store *catalog.Store, publisher *events.Publisher) *OffersHandler {
	return &OffersHandler{
		engine:    eng,
		store:     store,
		publisher: publisher,
	}
}

// CheckEligibility evaluates an order against the profit-margin rule
// @Summary Check offer eligibility
// @Description Evaluate purchased and free order lines against the catalog and suggest free products
// @Tags offers
// @Accept json
// @Produce json
// @Param order body models.CheckEligibilityRequest true "Purchased and free order lines"
// @Success 200 {object} models.CheckEligibilityResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /offers/check [post]
func (h *OffersHandler) CheckEligibility(c *gin.Context) {
	var req models.CheckEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cat := h.store.Get()

	result := h.engine.Evaluate(req.Purchased, req.Free, cat)
	suggestions := h.engine.Suggest(engine.AvailableForFree(result), cat)

	message := MessageNotEligible
	if result.Eligible {
		message = MessageEligible
	}

	evaluationID := uuid.New()
	if h.publisher != nil {
		h.publisher.PublishEligibilityChecked(evaluationID, result, len(suggestions))
	}

	c.JSON(http.StatusOK, models.CheckEligibilityResponse{
		Success:        true,
		EvaluationID:   evaluationID,
		Result:         result,
		PurchasedValue: h.engine.OrderValue(req.Purchased, cat),
		FreeValue:      h.engine.OrderValue(req.Free, cat),
		Message:        message,
		Suggestions:    suggestions,
	})
}
