package payments

import (
	"context"

	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
)

// Repository persists payment records. Payments are append-only: created
// once, never mutated or deleted.
type Repository interface {
	Create(ctx context.Context, p *models.Payment) error
	ListByMember(ctx context.Context, memberID string) ([]*models.Payment, error)
}
