package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"wirewatch/config"
	"wirewatch/models"
)

// PaymentClient charges tokenized cards through the processor's REST API.
// The core only cares that the returned payment reached COMPLETED; receipts
// and disputes stay the processor's problem.
type PaymentClient struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

func NewPaymentClient(cfg config.PaymentsConfig) *PaymentClient {
	return &PaymentClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type chargeRequest struct {
	SourceID       string      `json:"source_id"`
	IdempotencyKey string      `json:"idempotency_key"`
	AmountMoney    amountMoney `json:"amount_money"`
	Note           string      `json:"note"`
	BuyerEmail     string      `json:"buyer_email_address,omitempty"`
}

type amountMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type chargeResponse struct {
	Payment *struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		ReceiptURL string `json:"receipt_url"`
	} `json:"payment"`
}

// ChargeResult is the slice of the processor response the core needs.
type ChargeResult struct {
	PaymentID  string
	Status     string
	ReceiptURL string
}

// ChargeCard captures a one-time payment for the plan. The idempotency key is
// unique per attempt, so retrying a failed checkout produces a fresh charge
// rather than replaying the old one.
func (c *PaymentClient) ChargeCard(ctx context.Context, cardToken string, plan models.Plan, userID, email string) (*ChargeResult, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("%w: payment access token not configured", ErrConfigurationError)
	}
	if cardToken == "" {
		return nil, fmt.Errorf("%w: missing card token", ErrPaymentFailed)
	}

	body, err := json.Marshal(chargeRequest{
		SourceID:       cardToken,
		IdempotencyKey: fmt.Sprintf("%s-%s-%s", userID, plan.ID, uuid.NewString()),
		AmountMoney:    amountMoney{Amount: plan.AmountCents, Currency: plan.Currency},
		Note:           "Wirewatch - " + plan.Name,
		BuyerEmail:     email,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal charge payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: processor %s: %s", ErrPaymentFailed, resp.Status, strings.TrimSpace(string(b)))
	}

	var cr chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("%w: decode processor response: %v", ErrPaymentFailed, err)
	}
	if cr.Payment == nil {
		return nil, fmt.Errorf("%w: processor returned no payment object", ErrPaymentFailed)
	}
	if cr.Payment.Status != "COMPLETED" {
		return nil, fmt.Errorf("%w: payment status %s", ErrPaymentFailed, cr.Payment.Status)
	}

	return &ChargeResult{
		PaymentID:  cr.Payment.ID,
		Status:     cr.Payment.Status,
		ReceiptURL: cr.Payment.ReceiptURL,
	}, nil
}
