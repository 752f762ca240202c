package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wirewatch/models"
)

func TestPostgresStoreGetSubscription(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	start := time.Now().UTC()
	expires := start.AddDate(1, 0, 0)

	mock.ExpectQuery("SELECT user_id, plan, status, start_date, expires_at, payment_id FROM subscriptions").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "plan", "status", "start_date", "expires_at", "payment_id"},
		).AddRow("user-1", "annual", "active", start, expires, "pay-1"))

	store := NewPostgresStore(conn)
	sub, err := store.GetSubscription(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, sub)

	assert.Equal(t, "user-1", sub.UserID)
	assert.Equal(t, "annual", sub.Plan)
	assert.Equal(t, models.SubStatusActive, sub.Status)
	assert.Equal(t, "pay-1", sub.PaymentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetSubscriptionAbsent(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT user_id, plan, status, start_date, expires_at, payment_id FROM subscriptions").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "plan", "status", "start_date", "expires_at", "payment_id"},
		))

	store := NewPostgresStore(conn)
	sub, err := store.GetSubscription(context.Background(), "ghost")

	// Absent is not an error.
	assert.NoError(t, err)
	assert.Nil(t, sub)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreUpsertSubscription(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	start := time.Now().UTC()
	sub := models.Subscription{
		UserID:    "user-1",
		Plan:      "annual",
		Status:    models.SubStatusActive,
		StartDate: start,
		ExpiresAt: start.AddDate(1, 0, 0),
		PaymentID: "pay-1",
	}

	mock.ExpectExec("INSERT INTO subscriptions").
		WithArgs(sub.UserID, sub.Plan, sub.Status, sub.StartDate, sub.ExpiresAt, sub.PaymentID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPostgresStore(conn)
	require.NoError(t, store.UpsertSubscription(context.Background(), sub))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSavePayment(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	rec := models.PaymentRecord{
		PaymentID:   "pay-1",
		UserID:      "user-1",
		AmountCents: 149,
		Currency:    "USD",
		Status:      models.PaymentCompleted,
	}

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(rec.PaymentID, rec.UserID, rec.AmountCents, rec.Currency, rec.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPostgresStore(conn)
	require.NoError(t, store.SavePayment(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}
