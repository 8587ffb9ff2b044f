package copies

import (
	"context"

	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
)

// Repository is the inventory ledger: it owns copy rows and the only legal
// status transitions, Available -> Issued and Issued -> Available. Both
// transition methods are conditional updates, so a caller running them
// inside a transaction gets compare-and-swap semantics against concurrent
// borrowers.
type Repository interface {
	Create(ctx context.Context, copy *models.BookCopy) error
	FindByID(ctx context.Context, copyID string) (*models.BookCopy, error)

	// MarkIssued flips the copy to Issued and records the borrower.
	// Returns common.ErrCopyNotAvailable unless the copy is currently
	// Available.
	MarkIssued(ctx context.Context, copyID, borrowerID string) error

	// MarkReturned flips the copy back to Available. Returns
	// common.ErrCopyNotIssued unless the copy is currently Issued.
	MarkReturned(ctx context.Context, copyID string) error
}
