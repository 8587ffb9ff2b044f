package members

import (
	"context"
	"time"

	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
)

// Repository persists library members. The lending service only ever reads
// the Active flag; SetActive is reserved for the membership service.
type Repository interface {
	Create(ctx context.Context, m *models.Member) error
	FindByID(ctx context.Context, id string) (*models.Member, error)
	FindByUsername(ctx context.Context, username string) (*models.Member, error)
	SetActive(ctx context.Context, id string, active bool, lastPaymentAt *time.Time) error
}
