package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wirewatch/services"
)

// GetNews returns the current update, gated by the viewer's entitlement.
// Anonymous and unsubscribed viewers get the preview plus locked remainder.
func (h *Handler) GetNews(c *gin.Context) {
	update := h.feed.Current()
	if update == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No update available yet"})
		return
	}

	c.JSON(http.StatusOK, services.SelectRenderedText(update, h.viewer(c)))
}

// RefreshNews triggers a manual fetch. The in-flight check is advisory; two
// racing refreshes both hit the provider and the last assignment wins.
func (h *Handler) RefreshNews(c *gin.Context) {
	if h.feed.Refreshing() {
		c.JSON(http.StatusAccepted, gin.H{"status": "refresh already in flight"})
		return
	}

	update, err := h.feed.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, services.SelectRenderedText(update, h.viewer(c)))
}
