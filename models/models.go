package models

import (
	"time"
)

// Urgency is the coarse severity of an update.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Update is a single generated content item. Updates are created fresh on
// every fetch, superseded by the next one, and never persisted.
type Update struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	CreatedAt int64    `json:"created_at"` // milliseconds since epoch
	Sources   []string `json:"sources"`
	Urgency   Urgency  `json:"urgency"`
}

// Subscription status values. Cancelled is terminal and only reachable by
// administrative action.
const (
	SubStatusNone      = "none"
	SubStatusActive    = "active"
	SubStatusExpired   = "expired"
	SubStatusCancelled = "cancelled"
)

type Subscription struct {
	UserID    string    `json:"user_id"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	ExpiresAt time.Time `json:"expires_at"`
	PaymentID string    `json:"payment_id,omitempty"`
}

// Active reports whether the subscription grants access at the given instant.
// The stored status flag alone is never authoritative.
func (s *Subscription) Active(now time.Time) bool {
	if s == nil {
		return false
	}
	return s.Status == SubStatusActive && now.Before(s.ExpiresAt)
}

// Payment status values as reported by the card processor.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
)

type PaymentRecord struct {
	PaymentID   string    `json:"payment_id"`
	UserID      string    `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Plan describes a purchasable access tier. A single annual plan exists.
type Plan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

var AnnualPlan = Plan{
	ID:          "annual",
	Name:        "12 Month Access",
	AmountCents: 149,
	Currency:    "USD",
}
