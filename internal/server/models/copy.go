// Package models defines the persistent entities of the lending core:
// book copies, borrowings, payments, and members.
package models

// CopyStatus is the availability state of a single physical book copy.
// Exactly one status applies at a time.
type CopyStatus string

const (
	CopyStatusAvailable CopyStatus = "Available"
	CopyStatusIssued    CopyStatus = "Issued"
	CopyStatusDamaged   CopyStatus = "Damaged"
	CopyStatusRetired   CopyStatus = "Retired"
)

// BookCopy is one physical, individually tracked instance of a book title.
// CopyID is the human-assigned identifier (e.g. "CC-001") and doubles as the
// primary key. LastBorrowerID is informational only and records who held the
// copy most recently.
//
// Invariant: a copy is Issued if and only if exactly one open borrowing
// (ReturnAt null) references it. The lending service keeps both sides of
// that invariant inside one transaction.
type BookCopy struct {
	CopyID         string
	BookID         string
	Rack           string
	Status         CopyStatus
	LastBorrowerID *string
}
