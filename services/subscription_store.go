package services

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"wirewatch/models"
)

// SubscriptionStore is the durable side of the ledger.
type SubscriptionStore interface {
	// GetSubscription returns nil (no error) when the user has no record.
	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	// UpsertSubscription writes keyed by user id; last write wins.
	UpsertSubscription(ctx context.Context, sub models.Subscription) error
	SavePayment(ctx context.Context, rec models.PaymentRecord) error
}

// PostgresStore implements SubscriptionStore against the subscriptions and
// payments tables.
type PostgresStore struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ SubscriptionStore = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *PostgresStore) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	query, args, err := s.sb.
		Select("user_id", "plan", "status", "start_date", "expires_at", "payment_id").
		From("subscriptions").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build subscription query: %w", err)
	}

	var sub models.Subscription
	var paymentID sql.NullString
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&sub.UserID, &sub.Plan, &sub.Status, &sub.StartDate, &sub.ExpiresAt, &paymentID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query subscription: %w", err)
	}

	sub.PaymentID = paymentID.String
	return &sub, nil
}

func (s *PostgresStore) UpsertSubscription(ctx context.Context, sub models.Subscription) error {
	query, args, err := s.sb.
		Insert("subscriptions").
		Columns("user_id", "plan", "status", "start_date", "expires_at", "payment_id").
		Values(sub.UserID, sub.Plan, sub.Status, sub.StartDate, sub.ExpiresAt, sub.PaymentID).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			plan = EXCLUDED.plan,
			status = EXCLUDED.status,
			start_date = EXCLUDED.start_date,
			expires_at = EXCLUDED.expires_at,
			payment_id = EXCLUDED.payment_id,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build subscription upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

func (s *PostgresStore) SavePayment(ctx context.Context, rec models.PaymentRecord) error {
	query, args, err := s.sb.
		Insert("payments").
		Columns("payment_id", "user_id", "amount_cents", "currency", "status").
		Values(rec.PaymentID, rec.UserID, rec.AmountCents, rec.Currency, rec.Status).
		Suffix(`ON CONFLICT (payment_id) DO UPDATE SET status = EXCLUDED.status`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build payment insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}
