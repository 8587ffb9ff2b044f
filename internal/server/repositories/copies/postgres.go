// Package copies provides the PostgreSQL-backed inventory ledger for
// physical book copies.
package copies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Prathamesh2640/AI-Hackathon/internal/common"
	"github.com/Prathamesh2640/AI-Hackathon/internal/dbx"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
)

// PostgresRepository implements copy storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new copy. Returns common.ErrCopyAlreadyExists if the
// human-assigned identifier is already taken.
func (r *PostgresRepository) Create(ctx context.Context, copy *models.BookCopy) error {
	query := `
		INSERT INTO book_copies (copy_id, book_id, rack, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (copy_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, copy.CopyID, copy.BookID, copy.Rack, copy.Status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrCopyAlreadyExists
	}
	return nil
}

// FindByID loads a copy by identifier, or common.ErrorNotFound.
func (r *PostgresRepository) FindByID(ctx context.Context, copyID string) (*models.BookCopy, error) {
	query := `
		SELECT copy_id, book_id, rack, status, last_borrower_id FROM book_copies
		WHERE copy_id = $1
	`
	copy := &models.BookCopy{}
	var lastBorrower sql.NullString
	err := r.db.QueryRowContext(ctx, query, copyID).
		Scan(&copy.CopyID, &copy.BookID, &copy.Rack, &copy.Status, &lastBorrower)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if lastBorrower.Valid {
		copy.LastBorrowerID = &lastBorrower.String
	}
	return copy, nil
}

// MarkIssued transitions Available -> Issued. The status guard in the
// WHERE clause makes the transition safe against racing borrowers: the
// loser sees 0 rows affected.
func (r *PostgresRepository) MarkIssued(ctx context.Context, copyID, borrowerID string) error {
	query := `
		UPDATE book_copies SET status = $1, last_borrower_id = $2
		WHERE copy_id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query,
		models.CopyStatusIssued, borrowerID, copyID, models.CopyStatusAvailable)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrCopyNotAvailable
	}
	return nil
}

// MarkReturned transitions Issued -> Available.
func (r *PostgresRepository) MarkReturned(ctx context.Context, copyID string) error {
	query := `
		UPDATE book_copies SET status = $1
		WHERE copy_id = $2 AND status = $3
	`
	res, err := r.db.ExecContext(ctx, query,
		models.CopyStatusAvailable, copyID, models.CopyStatusIssued)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrCopyNotIssued
	}
	return nil
}
