package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Prathamesh2640/AI-Hackathon/internal/dbx"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/migrations"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/borrowings"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/copies"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/members"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/payments"
)

// PostgresRepositoryManager builds the PostgreSQL repositories.
type PostgresRepositoryManager struct {
}

// NewPostgresRepositoryManager returns a manager for the PostgreSQL
// repositories.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Copies(db dbx.DBTX) copies.Repository {
	return copies.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Borrowings(db dbx.DBTX) borrowings.Repository {
	return borrowings.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Payments(db dbx.DBTX) payments.Repository {
	return payments.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Members(db dbx.DBTX) members.Repository {
	return members.NewPostgresRepository(db)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
