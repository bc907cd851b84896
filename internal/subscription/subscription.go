// Package subscription runs the tier lifecycle: activation, the grace
// window after expiry, the atomic downgrade to the free tier, and the
// per-request standing gate.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/plans"
	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/google/uuid"
)

// Standing is the access level a subscription state grants.
type Standing int

const (
	// StandingFull allows reads and writes.
	StandingFull Standing = iota
	// StandingReadOnly allows reads during the grace window.
	StandingReadOnly
	// StandingBlocked denies everything but account management.
	StandingBlocked
)

type Service struct {
	db     ydb.Database
	plans  *plans.Service
	logger *slog.Logger
}

func NewService(db ydb.Database, planSvc *plans.Service, logger *slog.Logger) *Service {
	return &Service{db: db, plans: planSvc, logger: logger}
}

// Activate starts a paid subscription for the account and points the account
// at the plan. Any previous subscription row for the account is replaced.
func (s *Service) Activate(ctx context.Context, accountID, planID string, duration time.Duration, graceDays int32) (*ydb.Subscription, error) {
	plan, err := s.db.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	now := time.Now()
	sub := &ydb.Subscription{
		SubscriptionID:  uuid.New().String(),
		AccountID:       accountID,
		PlanID:          plan.PlanID,
		Status:          ydb.SubscriptionActive,
		StartDate:       now,
		EndDate:         now.Add(duration),
		GracePeriodDays: graceDays,
	}
	if err := s.db.CreateSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	account, err := s.db.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.PlanID = &plan.PlanID
	if err := s.db.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to assign plan: %w", err)
	}

	if plan.IsStaffPlan {
		if err := s.syncStaffAllowances(ctx, accountID, plan); err != nil {
			return nil, err
		}
	}

	s.logger.Info("subscription activated",
		"account_id", accountID, "plan_id", plan.PlanID, "end_date", sub.EndDate)
	return sub, nil
}

// syncStaffAllowances pushes the staff plan's limits onto the tenant profile.
// Accounts without a profile (not yet onboarded as staff) are left alone.
func (s *Service) syncStaffAllowances(ctx context.Context, accountID string, plan *ydb.Plan) error {
	profile, err := s.db.GetStaffProfile(ctx, accountID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil
		}
		return err
	}

	if plan.MaxClients != nil {
		profile.MaxClients = int32(*plan.MaxClients)
	}
	if plan.MaxStorageGB != nil {
		profile.MaxStorageGB = int32(*plan.MaxStorageGB)
	}
	profile.CanUseCloud = plan.CloudUploadAllowed

	if err := s.db.UpdateStaffProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to sync staff allowances: %w", err)
	}
	return nil
}

// Cancel marks the subscription cancelled without touching the account plan;
// the next sweep downgrades it.
func (s *Service) Cancel(ctx context.Context, accountID string) error {
	sub, err := s.db.GetSubscriptionByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	sub.Status = ydb.SubscriptionCancelled
	if err := s.db.UpdateSubscription(ctx, sub); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	s.logger.Info("subscription cancelled", "account_id", accountID, "subscription_id", sub.SubscriptionID)
	return nil
}

func graceDeadline(sub *ydb.Subscription) time.Time {
	return sub.EndDate.Add(time.Duration(sub.GracePeriodDays) * 24 * time.Hour)
}

// Sweep advances every live subscription through the lifecycle: past its end
// date it enters the grace window, past the grace window it is expired and
// the account is downgraded to the free tier in one transaction. The sweep
// is idempotent, rows already in their final state are left alone.
func (s *Service) Sweep(ctx context.Context, now time.Time) error {
	freePlan, err := s.plans.FreePlan(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve free plan: %w", err)
	}

	subs, err := s.db.ListActiveSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}

	var entered, expired int
	for _, sub := range subs {
		switch {
		case now.After(graceDeadline(sub)):
			if err := s.db.ExpireSubscriptionTx(ctx, sub.SubscriptionID, sub.AccountID, freePlan.PlanID); err != nil {
				s.logger.Error("failed to expire subscription",
					"subscription_id", sub.SubscriptionID, "error", err)
				continue
			}
			expired++
		case sub.Status == ydb.SubscriptionActive && now.After(sub.EndDate):
			sub.Status = ydb.SubscriptionInGracePeriod
			if err := s.db.UpdateSubscription(ctx, sub); err != nil {
				s.logger.Error("failed to move subscription into grace period",
					"subscription_id", sub.SubscriptionID, "error", err)
				continue
			}
			entered++
		}
	}

	if entered > 0 || expired > 0 {
		s.logger.Info("subscription sweep finished",
			"entered_grace", entered, "expired", expired, "inspected", len(subs))
	}
	return nil
}

// StandingFor resolves the account's current access level. No subscription
// row means the account runs on the implicit free tier in good standing.
func (s *Service) StandingFor(ctx context.Context, accountID string, now time.Time) (Standing, error) {
	sub, err := s.db.GetSubscriptionByAccount(ctx, accountID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return StandingFull, nil
		}
		return StandingBlocked, err
	}

	switch sub.Status {
	case ydb.SubscriptionExpired, ydb.SubscriptionCancelled:
		return StandingBlocked, nil
	case ydb.SubscriptionInGracePeriod:
		if now.After(graceDeadline(sub)) {
			return StandingBlocked, nil
		}
		return StandingReadOnly, nil
	}

	// Status lags real time between sweeps; derive the window from dates.
	if now.After(sub.EndDate) {
		if now.After(graceDeadline(sub)) {
			return StandingBlocked, nil
		}
		return StandingReadOnly, nil
	}
	return StandingFull, nil
}

// GateWrite rejects write operations for accounts out of full standing.
// Administrators bypass the gate.
func (s *Service) GateWrite(ctx context.Context, accountID string, elevated bool, now time.Time) error {
	if elevated {
		return nil
	}
	standing, err := s.StandingFor(ctx, accountID, now)
	if err != nil {
		return err
	}
	switch standing {
	case StandingReadOnly:
		return apperrors.ErrReadOnlyGracePeriod
	case StandingBlocked:
		return apperrors.ErrSubscriptionExpired
	}
	return nil
}

// GateRead rejects all access for fully expired accounts. Grace-period
// accounts may still read.
func (s *Service) GateRead(ctx context.Context, accountID string, elevated bool, now time.Time) error {
	if elevated {
		return nil
	}
	standing, err := s.StandingFor(ctx, accountID, now)
	if err != nil {
		return err
	}
	if standing == StandingBlocked {
		return apperrors.ErrSubscriptionExpired
	}
	return nil
}
