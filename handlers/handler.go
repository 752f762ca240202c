package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wirewatch/middleware"
	"wirewatch/services"
)

// Handler bundles the injected dependencies every endpoint needs. No package
// globals: everything is constructed in main and passed down.
type Handler struct {
	db        *sql.DB
	feed      *services.Feed
	ledger    *services.Ledger
	payments  *services.PaymentClient
	mailer    *services.ReceiptMailer
	jwtSecret []byte
}

func New(db *sql.DB, feed *services.Feed, ledger *services.Ledger, payments *services.PaymentClient, mailer *services.ReceiptMailer, jwtSecret string) *Handler {
	return &Handler{
		db:        db,
		feed:      feed,
		ledger:    ledger,
		payments:  payments,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
	}
}

// viewer reads the identity the auth middleware tagged onto the request and
// resolves the subscription freshly against the ledger.
func (h *Handler) viewer(c *gin.Context) services.Viewer {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		return services.Viewer{}
	}
	return services.Viewer{
		Authenticated: true,
		Subscribed:    h.ledger.IsActive(c.Request.Context(), userID),
	}
}

// respondError maps the service failure taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrConfigurationError):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service not configured"})
	case errors.Is(err, services.ErrPaymentFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment was not completed"})
	case errors.Is(err, services.ErrPersistenceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable"})
	case errors.Is(err, services.ErrContentUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Content temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
