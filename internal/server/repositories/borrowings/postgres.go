// Package borrowings provides PostgreSQL-backed storage for lending
// episodes.
package borrowings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Prathamesh2640/AI-Hackathon/internal/common"
	"github.com/Prathamesh2640/AI-Hackathon/internal/dbx"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
)

const selectColumns = `id, copy_id, member_id, issue_at, due_at, return_at, fine_amount, fine_paid, overdue_days`

// PostgresRepository implements borrowing storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new open borrowing.
func (r *PostgresRepository) Create(ctx context.Context, b *models.Borrowing) error {
	query := `
		INSERT INTO borrowings (id, copy_id, member_id, issue_at, due_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, b.ID, b.CopyID, b.MemberID, b.IssueAt, b.DueAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindByID loads a borrowing by ID, or common.ErrorNotFound.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Borrowing, error) {
	query := `SELECT ` + selectColumns + ` FROM borrowings WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindOpenByCopy returns the open borrowing for copyID, preferring the most
// recently issued one.
func (r *PostgresRepository) FindOpenByCopy(ctx context.Context, copyID string) (*models.Borrowing, error) {
	query := `
		SELECT ` + selectColumns + ` FROM borrowings
		WHERE copy_id = $1 AND return_at IS NULL
		ORDER BY issue_at DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, copyID))
}

// Close sets the return instant and the fine computed for it. The guard on
// return_at makes sure a loan closes exactly once; fine amount and overdue
// days are immutable afterwards.
func (r *PostgresRepository) Close(ctx context.Context, id string, returnAt time.Time, fineAmount float64, overdueDays int) error {
	query := `
		UPDATE borrowings SET return_at = $1, fine_amount = $2, overdue_days = $3
		WHERE id = $4 AND return_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, returnAt, fineAmount, overdueDays, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrBorrowingNotFound
	}
	return nil
}

// MarkFinePaid flips fine_paid to true. The fine_paid guard closes the race
// between two concurrent settlements: the loser affects no rows.
func (r *PostgresRepository) MarkFinePaid(ctx context.Context, id string) error {
	query := `
		UPDATE borrowings SET fine_paid = TRUE
		WHERE id = $1 AND fine_paid = FALSE
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrAlreadySettled
	}
	return nil
}

// ListOverdue returns open borrowings past due as of the given instant.
func (r *PostgresRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*models.Borrowing, error) {
	query := `
		SELECT ` + selectColumns + ` FROM borrowings
		WHERE return_at IS NULL AND due_at < $1
		ORDER BY due_at
	`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.scanAll(rows)
}

// ListUnpaidFinesByMember returns the member's borrowings carrying an
// unpaid, positive fine.
func (r *PostgresRepository) ListUnpaidFinesByMember(ctx context.Context, memberID string) ([]*models.Borrowing, error) {
	query := `
		SELECT ` + selectColumns + ` FROM borrowings
		WHERE member_id = $1 AND fine_paid = FALSE AND fine_amount > 0
		ORDER BY issue_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.scanAll(rows)
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Borrowing, error) {
	b := &models.Borrowing{}
	var returnAt sql.NullTime
	var overdueDays sql.NullInt64
	err := row.Scan(&b.ID, &b.CopyID, &b.MemberID, &b.IssueAt, &b.DueAt,
		&returnAt, &b.FineAmount, &b.FinePaid, &overdueDays)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if returnAt.Valid {
		t := returnAt.Time
		b.ReturnAt = &t
	}
	if overdueDays.Valid {
		d := int(overdueDays.Int64)
		b.OverdueDays = &d
	}
	return b, nil
}

func (r *PostgresRepository) scanAll(rows *sql.Rows) ([]*models.Borrowing, error) {
	defer rows.Close()

	var result []*models.Borrowing
	for rows.Next() {
		b := &models.Borrowing{}
		var returnAt sql.NullTime
		var overdueDays sql.NullInt64
		if err := rows.Scan(&b.ID, &b.CopyID, &b.MemberID, &b.IssueAt, &b.DueAt,
			&returnAt, &b.FineAmount, &b.FinePaid, &overdueDays); err != nil {
			return nil, err
		}
		if returnAt.Valid {
			t := returnAt.Time
			b.ReturnAt = &t
		}
		if overdueDays.Valid {
			d := int(overdueDays.Int64)
			b.OverdueDays = &d
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
