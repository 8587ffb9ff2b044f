package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Prathamesh2640/AI-Hackathon/internal/common"
	"github.com/Prathamesh2640/AI-Hackathon/internal/dbx"
	"github.com/Prathamesh2640/AI-Hackathon/internal/logging"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/repomanager"
)

// SettlementService records fine payments exactly once. Marking the
// borrowing paid and appending the payment row commit together or not at
// all; the fine_paid guard means a second settlement attempt can never
// duplicate the payment.
type SettlementService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

// NewSettlementService constructs a SettlementService.
func NewSettlementService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *SettlementService {
	return &SettlementService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "settlement_service"),
		now:         time.Now,
	}
}

// SettleFine marks the borrowing's fine paid and appends one Fine payment
// back-referencing it.
//
// Fails with common.ErrBorrowingNotFound, common.ErrNothingToSettle
// (fine is zero), or common.ErrAlreadySettled (fine already paid).
func (s *SettlementService) SettleFine(ctx context.Context, borrowingID string) (*models.Payment, error) {
	var payment *models.Payment

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		borrowing, err := s.repomanager.Borrowings(tx).FindByID(ctx, borrowingID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrBorrowingNotFound
			}
			return err
		}
		if borrowing.FineAmount <= 0 {
			return common.ErrNothingToSettle
		}
		if borrowing.FinePaid {
			return common.ErrAlreadySettled
		}

		if err := s.repomanager.Borrowings(tx).MarkFinePaid(ctx, borrowingID); err != nil {
			return err
		}

		payment = &models.Payment{
			ID:          uuid.New().String(),
			MemberID:    &borrowing.MemberID,
			Type:        models.PaymentTypeFine,
			Amount:      borrowing.FineAmount,
			PaidAt:      s.now(),
			Description: fmt.Sprintf("Fine payment for borrowing #%s", borrowingID),
			BorrowingID: &borrowing.ID,
		}
		return s.repomanager.Payments(tx).Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "fine settled", "borrowing_id", borrowingID, "amount", payment.Amount)
	return payment, nil
}

// ListUnpaidFines returns the member's borrowings carrying an unpaid,
// positive fine.
func (s *SettlementService) ListUnpaidFines(ctx context.Context, memberID string) ([]*models.Borrowing, error) {
	return s.repomanager.Borrowings(s.db).ListUnpaidFinesByMember(ctx, memberID)
}

// ListPayments returns the member's payment history, most recent first.
func (s *SettlementService) ListPayments(ctx context.Context, memberID string) ([]*models.Payment, error) {
	return s.repomanager.Payments(s.db).ListByMember(ctx, memberID)
}
