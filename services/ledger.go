package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"wirewatch/models"
)

// Ledger records and queries subscription lifecycle. The durable store is
// authoritative; an in-memory cache keeps a grant alive through store outages
// and is reconciled on the next successful durable read.
type Ledger struct {
	store SubscriptionStore
	now   func() time.Time

	mu    sync.Mutex
	cache map[string]models.Subscription
}

func NewLedger(store SubscriptionStore) *Ledger {
	return &Ledger{
		store: store,
		now:   time.Now,
		cache: make(map[string]models.Subscription),
	}
}

// CreateSubscription grants the user one calendar year of access starting
// now. Exact calendar arithmetic, so a grant spanning a leap year still
// expires on the same date. Persistence failure falls back to the advisory
// cache rather than losing the grant.
func (l *Ledger) CreateSubscription(ctx context.Context, userID, plan, paymentID string) (*models.Subscription, error) {
	start := l.now()
	sub := models.Subscription{
		UserID:    userID,
		Plan:      plan,
		Status:    models.SubStatusActive,
		StartDate: start,
		ExpiresAt: start.AddDate(1, 0, 0),
		PaymentID: paymentID,
	}

	if err := l.store.UpsertSubscription(ctx, sub); err != nil {
		log.Warn().Err(err).Str("user_id", userID).
			Msg("ledger: durable write failed, caching grant locally")
		l.mu.Lock()
		l.cache[userID] = sub
		l.mu.Unlock()
		return &sub, nil
	}

	l.mu.Lock()
	delete(l.cache, userID)
	l.mu.Unlock()
	return &sub, nil
}

// GetSubscription reads the durable record, degrading to the cache when the
// store is unavailable. A successful durable read reconciles the cache:
// grants written only locally during an outage are replayed, and an existing
// durable record supersedes any cached one. Absent everywhere returns nil.
func (l *Ledger) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := l.store.GetSubscription(ctx, userID)
	if err != nil {
		l.mu.Lock()
		cached, ok := l.cache[userID]
		l.mu.Unlock()
		if ok {
			log.Warn().Err(err).Str("user_id", userID).
				Msg("ledger: durable read failed, serving cached grant")
			return &cached, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}

	l.mu.Lock()
	cached, ok := l.cache[userID]
	l.mu.Unlock()

	if ok {
		if sub == nil {
			// The grant only ever landed in the cache; replay it.
			if uerr := l.store.UpsertSubscription(ctx, cached); uerr != nil {
				log.Warn().Err(uerr).Str("user_id", userID).
					Msg("ledger: grant replay failed, keeping cache entry")
				return &cached, nil
			}
			log.Info().Str("user_id", userID).Msg("ledger: cached grant reconciled to store")
		}
		l.mu.Lock()
		delete(l.cache, userID)
		l.mu.Unlock()
		if sub == nil {
			return &cached, nil
		}
	}

	return sub, nil
}

// IsActive recomputes entitlement fresh on every call: active status AND an
// expiry still in the future. A stored status flag alone is never trusted.
func (l *Ledger) IsActive(ctx context.Context, userID string) bool {
	sub, err := l.GetSubscription(ctx, userID)
	if err != nil || sub == nil {
		return false
	}
	return sub.Active(l.now())
}

// RecordPayment writes the durable payment record. Unlike subscription
// writes there is no cache fallback: a payment must never look successful to
// the user if its record could not be written.
func (l *Ledger) RecordPayment(ctx context.Context, rec models.PaymentRecord) error {
	if err := l.store.SavePayment(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
	}
	return nil
}
