package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wirewatch/middleware"
	"wirewatch/models"
)

// GetSubscription returns the caller's subscription with the active flag
// recomputed against the wall clock, never the stored status alone.
func (h *Handler) GetSubscription(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	ctx := c.Request.Context()

	sub, err := h.ledger.GetSubscription(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if sub == nil {
		c.JSON(http.StatusOK, gin.H{"status": models.SubStatusNone, "active": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscription": sub,
		"active":       h.ledger.IsActive(ctx, userID),
	})
}
