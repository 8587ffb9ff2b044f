// Package payments provides PostgreSQL-backed storage for the append-only
// payment log.
package payments

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Prathamesh2640/AI-Hackathon/internal/dbx"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
)

// PostgresRepository implements payment storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends one payment row.
func (r *PostgresRepository) Create(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (id, member_id, ptype, amount, paid_at, description, borrowing_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.MemberID, p.Type, p.Amount, p.PaidAt, p.Description, p.BorrowingID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByMember returns the member's payments, most recent first.
func (r *PostgresRepository) ListByMember(ctx context.Context, memberID string) ([]*models.Payment, error) {
	query := `
		SELECT id, member_id, ptype, amount, paid_at, description, borrowing_id FROM payments
		WHERE member_id = $1
		ORDER BY paid_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var memberID, borrowingID sql.NullString
		if err := rows.Scan(&p.ID, &memberID, &p.Type, &p.Amount, &p.PaidAt,
			&p.Description, &borrowingID); err != nil {
			return nil, err
		}
		if memberID.Valid {
			p.MemberID = &memberID.String
		}
		if borrowingID.Valid {
			p.BorrowingID = &borrowingID.String
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
