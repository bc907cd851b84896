package subscription

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/plans"
	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/auralink/auralink-backend/internal/ydb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *mocks.Database) {
	mockDB := mocks.NewDatabase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	planSvc := plans.NewService(mockDB, logger)
	return NewService(mockDB, planSvc, logger), mockDB
}

func int64Ptr(v int64) *int64 { return &v }

func TestActivateStaffPlanSyncsTenantAllowances(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	plan := &ydb.Plan{
		PlanID:             "plan-staff-pro",
		IsStaffPlan:        true,
		MaxClients:         int64Ptr(10),
		MaxStorageGB:       int64Ptr(100),
		CloudUploadAllowed: true,
	}

	mockDB.On("GetPlanByID", ctx, "plan-staff-pro").Return(plan, nil)
	mockDB.On("CreateSubscription", ctx, mock.AnythingOfType("*ydb.Subscription")).Return(nil)
	mockDB.On("GetAccountByID", ctx, "acct-1").Return(&ydb.Account{AccountID: "acct-1"}, nil)
	mockDB.On("UpdateAccount", ctx, mock.AnythingOfType("*ydb.Account")).Return(nil)
	mockDB.On("GetStaffProfile", ctx, "acct-1").
		Return(&ydb.StaffProfile{AccountID: "acct-1", MaxClients: 2, MaxStorageGB: 5}, nil)
	mockDB.On("UpdateStaffProfile", ctx, mock.MatchedBy(func(p *ydb.StaffProfile) bool {
		return p.MaxClients == 10 && p.MaxStorageGB == 100 && p.CanUseCloud
	})).Return(nil)

	_, err := service.Activate(ctx, "acct-1", "plan-staff-pro", 30*24*time.Hour, 7)

	require.NoError(t, err)
	mockDB.AssertExpectations(t)
}

func TestActivateRegularPlanLeavesStaffProfileAlone(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetPlanByID", ctx, "plan-premium").
		Return(&ydb.Plan{PlanID: "plan-premium"}, nil)
	mockDB.On("CreateSubscription", ctx, mock.AnythingOfType("*ydb.Subscription")).Return(nil)
	mockDB.On("GetAccountByID", ctx, "acct-1").Return(&ydb.Account{AccountID: "acct-1"}, nil)
	mockDB.On("UpdateAccount", ctx, mock.AnythingOfType("*ydb.Account")).Return(nil)

	_, err := service.Activate(ctx, "acct-1", "plan-premium", 30*24*time.Hour, 7)

	require.NoError(t, err)
	mockDB.AssertNotCalled(t, "UpdateStaffProfile", mock.Anything, mock.Anything)
}

func TestSweepExpiresSubscriptionPastGraceWindow(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	now := time.Now()
	sub := &ydb.Subscription{
		SubscriptionID:  "sub-1",
		AccountID:       "acct-1",
		PlanID:          "plan-premium",
		Status:          ydb.SubscriptionInGracePeriod,
		EndDate:         now.Add(-10 * 24 * time.Hour),
		GracePeriodDays: 7,
	}

	mockDB.On("GetPlanByName", ctx, "Free").Return(&ydb.Plan{PlanID: "plan-free", Name: "Free"}, nil)
	mockDB.On("ListActiveSubscriptions", ctx).Return([]*ydb.Subscription{sub}, nil)
	mockDB.On("ExpireSubscriptionTx", ctx, "sub-1", "acct-1", "plan-free").Return(nil)

	require.NoError(t, service.Sweep(ctx, now))
	mockDB.AssertExpectations(t)
}

func TestSweepMovesExpiredActiveIntoGrace(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	now := time.Now()
	sub := &ydb.Subscription{
		SubscriptionID:  "sub-2",
		AccountID:       "acct-2",
		Status:          ydb.SubscriptionActive,
		EndDate:         now.Add(-24 * time.Hour),
		GracePeriodDays: 7,
	}

	mockDB.On("GetPlanByName", ctx, "Free").Return(&ydb.Plan{PlanID: "plan-free", Name: "Free"}, nil)
	mockDB.On("ListActiveSubscriptions", ctx).Return([]*ydb.Subscription{sub}, nil)
	mockDB.On("UpdateSubscription", ctx, mock.MatchedBy(func(s *ydb.Subscription) bool {
		return s.SubscriptionID == "sub-2" && s.Status == ydb.SubscriptionInGracePeriod
	})).Return(nil)

	require.NoError(t, service.Sweep(ctx, now))
	mockDB.AssertExpectations(t)
}

func TestSweepLeavesCurrentSubscriptionAlone(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	now := time.Now()
	sub := &ydb.Subscription{
		SubscriptionID:  "sub-3",
		AccountID:       "acct-3",
		Status:          ydb.SubscriptionActive,
		EndDate:         now.Add(30 * 24 * time.Hour),
		GracePeriodDays: 7,
	}

	mockDB.On("GetPlanByName", ctx, "Free").Return(&ydb.Plan{PlanID: "plan-free", Name: "Free"}, nil)
	mockDB.On("ListActiveSubscriptions", ctx).Return([]*ydb.Subscription{sub}, nil)

	require.NoError(t, service.Sweep(ctx, now))

	// No UpdateSubscription or ExpireSubscriptionTx calls expected.
	mockDB.AssertExpectations(t)
}

// A second sweep over already-expired rows finds nothing live and writes
// nothing.
func TestSweepIsIdempotent(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetPlanByName", ctx, "Free").Return(&ydb.Plan{PlanID: "plan-free", Name: "Free"}, nil)
	mockDB.On("ListActiveSubscriptions", ctx).Return([]*ydb.Subscription{}, nil)

	require.NoError(t, service.Sweep(ctx, time.Now()))
	mockDB.AssertExpectations(t)
}

func TestStandingForMissingSubscriptionIsFull(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetSubscriptionByAccount", ctx, "acct-free").
		Return(nil, apperrors.NotFound("subscription not found"))

	standing, err := service.StandingFor(ctx, "acct-free", time.Now())

	require.NoError(t, err)
	assert.Equal(t, StandingFull, standing)
}

func TestStandingForGracePeriodIsReadOnly(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	now := time.Now()
	mockDB.On("GetSubscriptionByAccount", ctx, "acct-grace").Return(&ydb.Subscription{
		Status:          ydb.SubscriptionInGracePeriod,
		EndDate:         now.Add(-2 * 24 * time.Hour),
		GracePeriodDays: 7,
	}, nil)

	standing, err := service.StandingFor(ctx, "acct-grace", now)

	require.NoError(t, err)
	assert.Equal(t, StandingReadOnly, standing)
}

// Status can lag between sweeps: a row still marked ACTIVE whose end date
// has passed must already behave as grace period.
func TestStandingDerivedFromDatesBeforeSweepRuns(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	now := time.Now()
	mockDB.On("GetSubscriptionByAccount", ctx, "acct-lag").Return(&ydb.Subscription{
		Status:          ydb.SubscriptionActive,
		EndDate:         now.Add(-24 * time.Hour),
		GracePeriodDays: 7,
	}, nil)

	standing, err := service.StandingFor(ctx, "acct-lag", now)

	require.NoError(t, err)
	assert.Equal(t, StandingReadOnly, standing)
}

func TestStandingForExpiredIsBlocked(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetSubscriptionByAccount", ctx, "acct-exp").Return(&ydb.Subscription{
		Status: ydb.SubscriptionExpired,
	}, nil)

	standing, err := service.StandingFor(ctx, "acct-exp", time.Now())

	require.NoError(t, err)
	assert.Equal(t, StandingBlocked, standing)
}

func TestGateWriteRejectsGracePeriodWrites(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	now := time.Now()
	mockDB.On("GetSubscriptionByAccount", ctx, "acct-grace").Return(&ydb.Subscription{
		Status:          ydb.SubscriptionInGracePeriod,
		EndDate:         now.Add(-24 * time.Hour),
		GracePeriodDays: 7,
	}, nil)

	err := service.GateWrite(ctx, "acct-grace", false, now)

	assert.ErrorIs(t, err, apperrors.ErrReadOnlyGracePeriod)
}

func TestGateWriteAdminBypassesGate(t *testing.T) {
	service, _ := setupService(t)

	assert.NoError(t, service.GateWrite(context.Background(), "acct-any", true, time.Now()))
}

func TestGateReadBlocksExpiredAccount(t *testing.T) {
	service, mockDB := setupService(t)
	ctx := context.Background()

	mockDB.On("GetSubscriptionByAccount", ctx, "acct-exp").Return(&ydb.Subscription{
		Status: ydb.SubscriptionExpired,
	}, nil)

	err := service.GateRead(ctx, "acct-exp", false, time.Now())

	assert.ErrorIs(t, err, apperrors.ErrSubscriptionExpired)
}
