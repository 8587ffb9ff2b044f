// Package common defines shared constants and sentinel errors used across
// the lending service layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Inventory ledger errors. A copy only moves Available -> Issued on the
	// borrow path and Issued -> Available on the return path; anything else
	// is refused.
	ErrCopyNotFound      = errors.New("copy not found")
	ErrCopyNotAvailable  = errors.New("copy not available")
	ErrCopyNotIssued     = errors.New("copy not issued")
	ErrCopyAlreadyExists = errors.New("copy identifier already exists")

	// Borrowing errors.
	ErrBorrowingNotFound   = errors.New("borrowing not found")
	ErrBorrowerNotEligible = errors.New("borrower membership is not active")

	// Settlement guards.
	ErrNothingToSettle = errors.New("no fine to settle")
	ErrAlreadySettled  = errors.New("fine already settled")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
