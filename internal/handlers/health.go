package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmer-offers-service/internal/catalog"
)

// HealthCheck handles health check requests
// @Summary Health check endpoint
// @Description Check if the service is running and report catalog size
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HealthCheck(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"service":     "farmer-offers-service",
			"version":     "1.0.0",
			"catalogRows": store.Get().Len(),
		})
	}
}
