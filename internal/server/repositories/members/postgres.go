// Package members provides PostgreSQL-backed storage for library members.
package members

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

const selectColumns = `id, username, password_hash, email, full_name, active, registered_at, last_payment_at`

// PostgresRepository implements member storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new member. A taken username or email yields
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, m *models.Member) error {
	query := `
		INSERT INTO members (id, username, password_hash, email, full_name, active, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		m.ID, m.Username, m.PasswordHash, m.Email, m.FullName, m.Active, m.RegisteredAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

// FindByID loads a member by ID, or common.ErrorNotFound.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Member, error) {
	query := `SELECT ` + selectColumns + ` FROM members WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindByUsername loads a member by username, or common.ErrorNotFound.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*models.Member, error) {
	query := `SELECT ` + selectColumns + ` FROM members WHERE username = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// SetActive updates the membership gate and, when provided, stamps the last
// payment instant.
func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool, lastPaymentAt *time.Time) error {
	query := `
		UPDATE members SET active = $1, last_payment_at = COALESCE($2, last_payment_at)
		WHERE id = $3
	`
	res, err := r.db.ExecContext(ctx, query, active, lastPaymentAt, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Member, error) {
	m := &models.Member{}
	var lastPaymentAt sql.NullTime
	err := row.Scan(&m.ID, &m.Username, &m.PasswordHash, &m.Email, &m.FullName,
		&m.Active, &m.RegisteredAt, &lastPaymentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if lastPaymentAt.Valid {
		t := lastPaymentAt.Time
		m.LastPaymentAt = &t
	}
	return m, nil
}
