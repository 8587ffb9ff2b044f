package models

import "time"

// Member is a library member. Active is the membership gate the lending
// service reads before issuing a copy; it never writes it as part of a
// borrow, only the membership service does.
type Member struct {
	ID             string
	Username       string
	PasswordHash   string
	Email          string
	FullName       string
	Active         bool
	RegisteredAt   time.Time
	LastPaymentAt  *time.Time
}
