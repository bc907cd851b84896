package ydb

import (
	"context"
	"fmt"
	"time"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/ydb-platform/ydb-go-sdk/v3/table"
	"github.com/ydb-platform/ydb-go-sdk/v3/table/result"
	"github.com/ydb-platform/ydb-go-sdk/v3/table/result/named"
	"github.com/ydb-platform/ydb-go-sdk/v3/table/types"
)

const subscriptionColumns = `subscription_id, account_id, plan_id, status,
		   start_date, end_date, grace_period_days, created_at, updated_at`

const subscriptionUpsertQuery = `
	DECLARE $subscription_id AS Text;
	DECLARE $account_id AS Text;
	DECLARE $plan_id AS Text;
	DECLARE $status AS Text;
	DECLARE $start_date AS Timestamp;
	DECLARE $end_date AS Timestamp;
	DECLARE $grace_period_days AS Int32;
	DECLARE $created_at AS Timestamp;
	DECLARE $updated_at AS Timestamp;

	REPLACE INTO subscriptions (
		subscription_id, account_id, plan_id, status, start_date,
		end_date, grace_period_days, created_at, updated_at
	) VALUES ($subscription_id, $account_id, $plan_id, $status, $start_date,
		$end_date, $grace_period_days, $created_at, $updated_at)
`

func subscriptionParams(sub *Subscription) *table.QueryParameters {
	return table.NewQueryParameters(
		table.ValueParam("$subscription_id", types.TextValue(sub.SubscriptionID)),
		table.ValueParam("$account_id", types.TextValue(sub.AccountID)),
		table.ValueParam("$plan_id", types.TextValue(sub.PlanID)),
		table.ValueParam("$status", types.TextValue(sub.Status)),
		table.ValueParam("$start_date", types.TimestampValueFromTime(sub.StartDate)),
		table.ValueParam("$end_date", types.TimestampValueFromTime(sub.EndDate)),
		table.ValueParam("$grace_period_days", types.Int32Value(sub.GracePeriodDays)),
		table.ValueParam("$created_at", types.TimestampValueFromTime(sub.CreatedAt)),
		table.ValueParam("$updated_at", types.TimestampValueFromTime(sub.UpdatedAt)),
	)
}

func scanSubscription(res result.Result, sub *Subscription) error {
	return res.ScanNamed(
		named.Required("subscription_id", &sub.SubscriptionID),
		named.Required("account_id", &sub.AccountID),
		named.Required("plan_id", &sub.PlanID),
		named.Required("status", &sub.Status),
		named.OptionalWithDefault("start_date", &sub.StartDate),
		named.OptionalWithDefault("end_date", &sub.EndDate),
		named.OptionalWithDefault("grace_period_days", &sub.GracePeriodDays),
		named.OptionalWithDefault("created_at", &sub.CreatedAt),
		named.OptionalWithDefault("updated_at", &sub.UpdatedAt),
	)
}

func (c *YDBClient) CreateSubscription(ctx context.Context, sub *Subscription) error {
	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), subscriptionUpsertQuery, subscriptionParams(sub))
		return err
	})
}

func (c *YDBClient) UpdateSubscription(ctx context.Context, sub *Subscription) error {
	sub.UpdatedAt = time.Now()

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), subscriptionUpsertQuery, subscriptionParams(sub))
		return err
	})
}

func (c *YDBClient) GetSubscriptionByAccount(ctx context.Context, accountID string) (*Subscription, error) {
	query := `
		DECLARE $account_id AS Text;
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE account_id = $account_id
	`

	var sub Subscription
	var found bool

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$account_id", types.TextValue(accountID)),
			),
		)
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			found = true
			if err := scanSubscription(res, &sub); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("subscription not found")
	}
	return &sub, nil
}

// ListActiveSubscriptions returns subscriptions still in a live state,
// ACTIVE or IN_GRACE_PERIOD, for the lifecycle sweep to inspect.
func (c *YDBClient) ListActiveSubscriptions(ctx context.Context) ([]*Subscription, error) {
	query := `
		DECLARE $active AS Text;
		DECLARE $grace AS Text;
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE status = $active OR status = $grace
	`

	var subs []*Subscription

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$active", types.TextValue(SubscriptionActive)),
				table.ValueParam("$grace", types.TextValue(SubscriptionInGracePeriod)),
			),
		)
		if err != nil {
			return err
		}
		defer res.Close()

		for res.NextResultSet(ctx) {
			for res.NextRow() {
				var sub Subscription
				if err := scanSubscription(res, &sub); err != nil {
					return fmt.Errorf("scan failed: %w", err)
				}
				subs = append(subs, &sub)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	return subs, nil
}

// ExpireSubscriptionTx marks the subscription EXPIRED and downgrades the
// account's plan in a single interactive transaction, so a crash between the
// two writes cannot leave an expired subscription on a paid plan.
func (c *YDBClient) ExpireSubscriptionTx(ctx context.Context, subscriptionID, accountID, freePlanID string) error {
	query := `
		DECLARE $subscription_id AS Text;
		DECLARE $account_id AS Text;
		DECLARE $free_plan_id AS Text;
		DECLARE $now AS Timestamp;

		UPDATE subscriptions
		SET status = 'EXPIRED', updated_at = $now
		WHERE subscription_id = $subscription_id;

		UPDATE accounts
		SET plan_id = $free_plan_id, updated_at = $now
		WHERE account_id = $account_id;
	`

	return c.driver.Table().DoTx(ctx, func(ctx context.Context, tx table.TransactionActor) error {
		res, err := tx.Execute(ctx, query,
			table.NewQueryParameters(
				table.ValueParam("$subscription_id", types.TextValue(subscriptionID)),
				table.ValueParam("$account_id", types.TextValue(accountID)),
				table.ValueParam("$free_plan_id", types.TextValue(freePlanID)),
				table.ValueParam("$now", types.TimestampValueFromTime(time.Now())),
			),
		)
		if err != nil {
			return err
		}
		return res.Close()
	})
}
