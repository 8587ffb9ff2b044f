package borrowings

import (
	"context"
	"time"

	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
)

// Repository persists borrowing episodes. Rows are created open, closed
// exactly once, and never deleted.
type Repository interface {
	Create(ctx context.Context, b *models.Borrowing) error
	FindByID(ctx context.Context, id string) (*models.Borrowing, error)

	// FindOpenByCopy returns the open borrowing for a copy, most recently
	// issued first if more than one is somehow open.
	FindOpenByCopy(ctx context.Context, copyID string) (*models.Borrowing, error)

	// Close records the return and the fine computed for it. The
	// return_at IS NULL guard makes closing idempotent-hostile: a second
	// close attempt affects no rows and fails.
	Close(ctx context.Context, id string, returnAt time.Time, fineAmount float64, overdueDays int) error

	// MarkFinePaid flips fine_paid exactly once; a row already paid
	// yields common.ErrAlreadySettled.
	MarkFinePaid(ctx context.Context, id string) error

	// ListOverdue returns open borrowings whose due instant is strictly
	// before asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]*models.Borrowing, error)

	// ListUnpaidFinesByMember returns the member's closed borrowings with
	// an unpaid, positive fine.
	ListUnpaidFinesByMember(ctx context.Context, memberID string) ([]*models.Borrowing, error)
}
