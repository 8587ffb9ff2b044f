package models

import "time"

// PaymentType categorizes collected money.
type PaymentType string

const (
	PaymentTypeMembershipFee PaymentType = "Membership Fee"
	PaymentTypeFine          PaymentType = "Fine"
	PaymentTypeOther         PaymentType = "Other"
)

// Payment is an immutable record of money collected. MemberID is nil for
// non-member payments. BorrowingID back-references the borrowing a fine
// payment settles; at most one Fine payment may reference a given
// borrowing.
type Payment struct {
	ID          string
	MemberID    *string
	Type        PaymentType
	Amount      float64
	PaidAt      time.Time
	Description string
	BorrowingID *string
}
