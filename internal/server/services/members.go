package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Prathamesh2640/AI-Hackathon/internal/common"
	"github.com/Prathamesh2640/AI-Hackathon/internal/dbx"
	"github.com/Prathamesh2640/AI-Hackathon/internal/logging"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/auth"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/config"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/repositories/repomanager"
)

// MemberService handles member registration, login, and the membership
// gate the lending path reads. Activating a membership records the fee
// payment in the same transaction.
type MemberService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	membershipFee               float64
	now                         func() time.Time
}

// NewMemberService constructs a MemberService using repositories and
// server config.
func NewMemberService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *MemberService {
	return &MemberService{
		db:                          db,
		repomanager:                 m,
		logger:                      logger.With("module", "member_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		membershipFee:               cfg.MembershipFee,
		now:                         time.Now,
	}
}

// Register creates a new member with a bcrypt password hash. The
// membership starts inactive; activation is a separate, staff-side
// operation.
func (s *MemberService) Register(ctx context.Context, username, password, email, fullName string) (*models.Member, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	member := &models.Member{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FullName:     fullName,
		Active:       false,
		RegisteredAt: s.now(),
	}
	if err := s.repomanager.Members(s.db).Create(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "member registered", "member_id", member.ID, "username", username)
	return member, nil
}

// Login verifies the credentials and returns a signed access token.
func (s *MemberService) Login(ctx context.Context, username, password string) (string, error) {
	member, err := s.repomanager.Members(s.db).FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(member.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// SetMembershipActive flips the membership gate. Activation also stamps
// the last payment instant and records the membership fee payment; both
// writes commit together.
func (s *MemberService) SetMembershipActive(ctx context.Context, memberID string, active bool) (*models.Member, error) {
	var member *models.Member

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		member, err = s.repomanager.Members(tx).FindByID(ctx, memberID)
		if err != nil {
			return err
		}

		var lastPaymentAt *time.Time
		if active {
			t := s.now()
			lastPaymentAt = &t
		}
		if err := s.repomanager.Members(tx).SetActive(ctx, memberID, active, lastPaymentAt); err != nil {
			return err
		}

		member.Active = active
		if !active {
			return nil
		}

		member.LastPaymentAt = lastPaymentAt
		payment := &models.Payment{
			ID:          uuid.New().String(),
			MemberID:    &member.ID,
			Type:        models.PaymentTypeMembershipFee,
			Amount:      s.membershipFee,
			PaidAt:      *lastPaymentAt,
			Description: "Membership fee payment",
		}
		return s.repomanager.Payments(tx).Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "membership updated", "member_id", memberID, "active", active)
	return member, nil
}

// IsEligible reports whether the member exists and the membership is
// active.
func (s *MemberService) IsEligible(ctx context.Context, memberID string) (bool, error) {
	member, err := s.repomanager.Members(s.db).FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return member.Active, nil
}
