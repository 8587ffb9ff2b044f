package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prathamesh2640/AI-Hackathon/internal/common"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/auth"
	"github.com/Prathamesh2640/AI-Hackathon/internal/server/models"
)

func TestMemberService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m, err := env.members.Register(ctx, "alice", "s3cret", "alice@example.com", "Alice A")
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.False(t, m.Active)
	assert.NotEqual(t, "s3cret", m.PasswordHash)

	_, err = env.members.Register(ctx, "alice", "other", "alice2@example.com", "Alice B")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestMemberService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m, err := env.members.Register(ctx, "bob", "s3cret", "bob@example.com", "Bob B")
	require.NoError(t, err)

	token, err := env.members.Login(ctx, "bob", "s3cret")
	require.NoError(t, err)

	memberID, err := auth.GetMemberIDFromToken(token, []byte(env.cfg.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, m.ID, memberID)

	_, err = env.members.Login(ctx, "bob", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = env.members.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestMemberService_SetMembershipActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m, err := env.members.Register(ctx, "carol", "s3cret", "carol@example.com", "Carol C")
	require.NoError(t, err)

	paidAt := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	env.members.now = fixedNow(paidAt)

	updated, err := env.members.SetMembershipActive(ctx, m.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Active)
	require.NotNil(t, updated.LastPaymentAt)
	assert.True(t, updated.LastPaymentAt.Equal(paidAt))

	// activation records the membership fee payment
	payments, err := env.settlement.ListPayments(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentTypeMembershipFee, payments[0].Type)
	assert.Equal(t, 500.0, payments[0].Amount)

	// deactivation does not
	updated, err = env.members.SetMembershipActive(ctx, m.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	payments, err = env.settlement.ListPayments(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestMemberService_SetMembershipActive_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.members.SetMembershipActive(context.Background(), "no-such-member", true)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemberService_IsEligible(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	active := env.seedMember(t, true)
	inactive := env.seedMember(t, false)

	ok, err := env.members.IsEligible(ctx, active.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.members.IsEligible(ctx, inactive.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.members.IsEligible(ctx, "no-such-member")
	require.NoError(t, err)
	assert.False(t, ok)
}
