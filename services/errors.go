package services

import "errors"

// Failure taxonomy. Handlers map these onto HTTP statuses; nothing in the
// services layer retries.
var (
	// ErrContentUnavailable means the content provider was unreachable,
	// misconfigured, or returned an unusable response.
	ErrContentUnavailable = errors.New("content unavailable")

	// ErrPaymentFailed means the card processor declined or returned no
	// payment object.
	ErrPaymentFailed = errors.New("payment failed")

	// ErrPersistenceUnavailable means a durable-store read or write failed.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// ErrConfigurationError means a required credential is missing.
	ErrConfigurationError = errors.New("configuration error")
)
