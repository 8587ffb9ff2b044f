package models

import "time"

// Borrowing is one lending episode of one copy to one member.
//
// ReturnAt is nil while the loan is open. FineAmount and OverdueDays are
// computed exactly once when the loan closes and are immutable afterwards;
// FinePaid flips to true at most once, later, via fine settlement.
// Borrowings are never deleted.
type Borrowing struct {
	ID          string
	CopyID      string
	MemberID    string
	IssueAt     time.Time
	DueAt       time.Time
	ReturnAt    *time.Time
	FineAmount  float64
	FinePaid    bool
	OverdueDays *int
}

// Open reports whether the loan has not been closed yet.
func (b *Borrowing) Open() bool {
	return b.ReturnAt == nil
}
