package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/Prathamesh2640/AI-Hackathon/internal/logging"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/config"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/repomanager"
)

// The service tests run the real PostgreSQL repositories against an
// in-memory SQLite database: the queries stick to portable SQL ($N
// placeholders, conditional updates, no dialect-specific locking), so the
// transactional behavior under test is the same.
const testSchema = `
CREATE TABLE members (
    id              TEXT PRIMARY KEY,
    username        TEXT NOT NULL UNIQUE,
    password_hash   TEXT NOT NULL,
    email           TEXT NOT NULL UNIQUE,
    full_name       TEXT NOT NULL,
    active          BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at   TIMESTAMP NOT NULL,
    last_payment_at TIMESTAMP
);

CREATE TABLE book_copies (
    copy_id          TEXT PRIMARY KEY,
    book_id          TEXT NOT NULL,
    rack             TEXT NOT NULL DEFAULT '',
    status           TEXT NOT NULL DEFAULT 'Available',
    last_borrower_id TEXT
);

CREATE TABLE borrowings (
    id           TEXT PRIMARY KEY,
    copy_id      TEXT NOT NULL,
    member_id    TEXT NOT NULL,
    issue_at     TIMESTAMP NOT NULL,
    due_at       TIMESTAMP NOT NULL,
    return_at    TIMESTAMP,
    fine_amount  REAL NOT NULL DEFAULT 0,
    fine_paid    BOOLEAN NOT NULL DEFAULT FALSE,
    overdue_days INTEGER
);

CREATE TABLE payments (
    id           TEXT PRIMARY KEY,
    member_id    TEXT,
    ptype        TEXT NOT NULL,
    amount       REAL NOT NULL,
    paid_at      TIMESTAMP NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    borrowing_id TEXT
);

CREATE UNIQUE INDEX borrowings_open_copy_uq ON borrowings (copy_id) WHERE return_at IS NULL;
CREATE UNIQUE INDEX payments_fine_borrowing_uq ON payments (borrowing_id) WHERE ptype = 'Fine';
`

var dbSeq atomic.Int64

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	// a single connection serializes transactions, which stands in for
	// the row-level locking the production database provides
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func newTestLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

type testEnv struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	cfg        *config.Config
	lending    *LendingService
	settlement *SettlementService
	members    *MemberService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	repos := repomanager.NewPostgresRepositoryManager()
	cfg := newTestConfig()
	logger := newTestLogger()
	return &testEnv{
		db:         db,
		repos:      repos,
		cfg:        cfg,
		lending:    NewLendingService(db, repos, cfg, logger),
		settlement: NewSettlementService(db, repos, logger),
		members:    NewMemberService(db, repos, cfg, logger),
	}
}

func (e *testEnv) seedMember(t *testing.T, active bool) *models.Member {
	t.Helper()
	m := &models.Member{
		ID:           uuid.New().String(),
		Username:     "user-" + uuid.New().String()[:8],
		PasswordHash: "irrelevant",
		Email:        uuid.New().String()[:8] + "@example.com",
		FullName:     "Test Member",
		Active:       active,
		RegisteredAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, e.repos.Members(e.db).Create(context.Background(), m))
	return m
}

func (e *testEnv) seedCopy(t *testing.T, copyID string) *models.BookCopy {
	t.Helper()
	c := &models.BookCopy{
		CopyID: copyID,
		BookID: "B-1",
		Rack:   "R-1",
		Status: models.CopyStatusAvailable,
	}
	require.NoError(t, e.repos.Copies(e.db).Create(context.Background(), c))
	return c
}

func (e *testEnv) copyStatus(t *testing.T, copyID string) models.CopyStatus {
	t.Helper()
	c, err := e.repos.Copies(e.db).FindByID(context.Background(), copyID)
	require.NoError(t, err)
	return c.Status
}

func (e *testEnv) countOpenBorrowings(t *testing.T, copyID string) int {
	t.Helper()
	var n int
	err := e.db.QueryRow(
		`SELECT COUNT(*) FROM borrowings WHERE copy_id = $1 AND return_at IS NULL`, copyID).Scan(&n)
	require.NoError(t, err)
	return n
}

func (e *testEnv) countPayments(t *testing.T, borrowingID string) int {
	t.Helper()
	var n int
	err := e.db.QueryRow(
		`SELECT COUNT(*) FROM payments WHERE borrowing_id = $1 AND ptype = 'Fine'`, borrowingID).Scan(&n)
	require.NoError(t, err)
	return n
}
