// Package repomanager bundles the per-entity repositories behind one
// factory so services can rebind them to a transaction handle.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Prathamesh2640/AI-Hackathon/internal/dbx"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/borrowings"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/copies"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/members"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/payments"
)

// RepositoryManager creates repositories bound to a DBTX, which is either
// the shared *sql.DB or a *sql.Tx when an operation needs several writes
// to commit together.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Copies(db dbx.DBTX) copies.Repository
	Borrowings(db dbx.DBTX) borrowings.Repository
	Payments(db dbx.DBTX) payments.Repository
	Members(db dbx.DBTX) members.Repository
}
