package models

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError reports malformed input or a violated amount constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown entity id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ExpiredError reports an operation against an authorization past its window.
type ExpiredError struct {
	AuthorizationID string
	ExpiredAt       time.Time
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("authorization %s expired at %s", e.AuthorizationID, e.ExpiredAt.UTC().Format(time.RFC3339))
}

// ConflictError reports an illegal transition, a concurrent transition on the
// same intent or a stale version on write.
type ConflictError struct {
	IntentID string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on payment intent %s: %s", e.IntentID, e.Reason)
}

// ProviderError is a transient provider failure. It is the only error the
// retry dispatcher retries.
type ProviderError struct {
	Provider   Provider
	Operation  string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s %s failed (status %d): %v", e.Provider, e.Operation, e.StatusCode, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Retryable() bool { return true }

// ProviderDeclineError is a definitive refusal by the provider.
type ProviderDeclineError struct {
	Provider  Provider
	Operation string
	Code      string
	Reason    string
}

func (e *ProviderDeclineError) Error() string {
	return fmt.Sprintf("provider %s declined %s: %s (%s)", e.Provider, e.Operation, e.Reason, e.Code)
}

// RiskDeclineError is returned when the risk engine recommends DECLINE.
type RiskDeclineError struct {
	PaymentID string
	Score     float64
	Level     RiskLevel
}

func (e *RiskDeclineError) Error() string {
	return fmt.Sprintf("payment %s declined by risk assessment: score %.3f (%s)", e.PaymentID, e.Score, e.Level)
}

// IsConflict reports whether err carries a ConflictError.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
