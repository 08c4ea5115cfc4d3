package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Dashboard summary
// @Description Net worth plus spend and income for the current period in one call
// @Tags summary
// @Produce json
// @Success 200 {object} Summary "Summary"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/summary [get]
func getSummary(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	sum, err := service.Summary(ctx)
	if err != nil {
		respondWithError(c, err, "summary")
		return
	}
	c.JSON(http.StatusOK, newSummary(sum))
}

// healthResponse is what /healthz returns
type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// @Summary Health check
// @Description Reports whether the storage backend answers
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /healthz [get]
func healthCheck(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	if pinger, ok := service.Store().(interface{ Ping(context.Context) error }); ok {
		if err := pinger.Ping(ctx); err != nil {
			requestLog(c).Error().Err(err).Msg("Health check failed")
			c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Backend: dataBackend})
			return
		}
	}
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Backend: dataBackend})
}
