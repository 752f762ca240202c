package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wirewatch/middleware"
	"wirewatch/models"
)

type CheckoutInput struct {
	CardToken string `json:"card_token" binding:"required"`
	Plan      string `json:"plan"`
}

// Checkout charges the card, records the payment, and grants the
// subscription. Order matters: the durable payment record is written before
// the grant, and a record-write failure surfaces as an error even though the
// charge went through. A subscription-write failure after a recorded payment
// falls back to the ledger cache and checkout still succeeds.
func (h *Handler) Checkout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := models.AnnualPlan
	if input.Plan != "" && input.Plan != plan.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan. Only 'annual' is available."})
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	email := c.GetString(middleware.CtxUserEmail)
	ctx := c.Request.Context()

	result, err := h.payments.ChargeCard(ctx, input.CardToken, plan, userID, email)
	if err != nil {
		respondError(c, err)
		return
	}

	record := models.PaymentRecord{
		PaymentID:   result.PaymentID,
		UserID:      userID,
		AmountCents: plan.AmountCents,
		Currency:    plan.Currency,
		Status:      models.PaymentCompleted,
		CreatedAt:   time.Now(),
	}
	if err := h.ledger.RecordPayment(ctx, record); err != nil {
		log.Error().Err(err).Str("payment_id", result.PaymentID).
			Msg("checkout: charge completed but payment record write failed")
		respondError(c, err)
		return
	}

	sub, err := h.ledger.CreateSubscription(ctx, userID, plan.ID, result.PaymentID)
	if err != nil {
		respondError(c, err)
		return
	}

	go h.mailer.SendReceipt(email, plan, sub, result.PaymentID)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"payment_id":   result.PaymentID,
		"receipt_url":  result.ReceiptURL,
		"subscription": sub,
	})
}
