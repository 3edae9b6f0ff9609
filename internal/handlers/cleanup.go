package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RoomSweeper is the slice of the sweeper the cleanup trigger needs.
type RoomSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// CleanupHandler exposes the sweep as an HTTP trigger for external
// schedulers. Authentication happens in middleware.
type CleanupHandler struct {
	sweeper RoomSweeper
}

// NewCleanupHandler builds a CleanupHandler.
func NewCleanupHandler(sweeper RoomSweeper) *CleanupHandler {
	return &CleanupHandler{sweeper: sweeper}
}

// Trigger runs one sweep and reports how many rooms were removed.
func (h *CleanupHandler) Trigger(c *gin.Context) {
	count, err := h.sweeper.Sweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clean up rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("removed %d expired room(s)", count),
		"count":   count,
	})
}
