package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Record snapshot
// @Description Store today's net worth. Calling it again on the same day overwrites the figure.
// @Tags snapshots
// @Produce json
// @Success 200 {object} DailyBalanceSnapshot "Recorded snapshot"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/snapshot [post]
func recordSnapshot(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	snap, err := service.RecordSnapshot(ctx)
	if err != nil {
		respondWithError(c, err, "record snapshot")
		return
	}
	c.JSON(http.StatusOK, newSnapshot(snap))
}

// @Summary Snapshot history
// @Description Every recorded daily snapshot, oldest first
// @Tags snapshots
// @Produce json
// @Success 200 {array} DailyBalanceSnapshot "Snapshots"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/transactions/snapshot [get]
func getSnapshots(c *gin.Context) {
	ctx, cancel := storeContext(c)
	defer cancel()

	dbSnapshots, err := service.ListSnapshots(ctx)
	if err != nil {
		respondWithError(c, err, "list snapshots")
		return
	}

	snapshots := make([]DailyBalanceSnapshot, 0, len(dbSnapshots))
	for _, snap := range dbSnapshots {
		snapshots = append(snapshots, newSnapshot(snap))
	}
	c.JSON(http.StatusOK, snapshots)
}
