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

const accountColumns = `account_id, username, mobile_number, email, password_hash,
		   kind, elevated, plan_id, is_active, created_at, updated_at`

func accountParams(account *Account) *table.QueryParameters {
	return table.NewQueryParameters(
		table.ValueParam("$account_id", types.TextValue(account.AccountID)),
		table.ValueParam("$username", types.TextValue(account.Username)),
		table.ValueParam("$mobile_number", optText(account.MobileNumber)),
		table.ValueParam("$email", optText(account.Email)),
		table.ValueParam("$password_hash", types.TextValue(account.PasswordHash)),
		table.ValueParam("$kind", types.TextValue(account.Kind)),
		table.ValueParam("$elevated", types.BoolValue(account.Elevated)),
		table.ValueParam("$plan_id", optText(account.PlanID)),
		table.ValueParam("$is_active", types.BoolValue(account.IsActive)),
		table.ValueParam("$created_at", types.TimestampValueFromTime(account.CreatedAt)),
		table.ValueParam("$updated_at", types.TimestampValueFromTime(account.UpdatedAt)),
	)
}

const accountUpsertQuery = `
	DECLARE $account_id AS Text;
	DECLARE $username AS Text;
	DECLARE $mobile_number AS Optional<Text>;
	DECLARE $email AS Optional<Text>;
	DECLARE $password_hash AS Text;
	DECLARE $kind AS Text;
	DECLARE $elevated AS Bool;
	DECLARE $plan_id AS Optional<Text>;
	DECLARE $is_active AS Bool;
	DECLARE $created_at AS Timestamp;
	DECLARE $updated_at AS Timestamp;

	REPLACE INTO accounts (
		account_id, username, mobile_number, email, password_hash,
		kind, elevated, plan_id, is_active, created_at, updated_at
	) VALUES ($account_id, $username, $mobile_number, $email, $password_hash,
		$kind, $elevated, $plan_id, $is_active, $created_at, $updated_at)
`

func scanAccount(res result.Result, account *Account) error {
	return res.ScanNamed(
		named.Required("account_id", &account.AccountID),
		named.Required("username", &account.Username),
		named.Optional("mobile_number", &account.MobileNumber),
		named.Optional("email", &account.Email),
		named.Required("password_hash", &account.PasswordHash),
		named.Required("kind", &account.Kind),
		named.Required("elevated", &account.Elevated),
		named.Optional("plan_id", &account.PlanID),
		named.Required("is_active", &account.IsActive),
		named.OptionalWithDefault("created_at", &account.CreatedAt),
		named.OptionalWithDefault("updated_at", &account.UpdatedAt),
	)
}

func (c *YDBClient) CreateAccount(ctx context.Context, account *Account) error {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), accountUpsertQuery, accountParams(account))
		return err
	})
}

func (c *YDBClient) UpdateAccount(ctx context.Context, account *Account) error {
	account.UpdatedAt = time.Now()

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), accountUpsertQuery, accountParams(account))
		return err
	})
}

func (c *YDBClient) getAccount(ctx context.Context, query string, params *table.QueryParameters) (*Account, error) {
	var account Account
	var found bool

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, params)
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			found = true
			if err := scanAccount(res, &account); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("account not found")
	}
	return &account, nil
}

func (c *YDBClient) GetAccountByID(ctx context.Context, accountID string) (*Account, error) {
	query := `
		DECLARE $account_id AS Text;
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $account_id
	`
	return c.getAccount(ctx, query, table.NewQueryParameters(
		table.ValueParam("$account_id", types.TextValue(accountID)),
	))
}

// GetAccountByLogin resolves a login identifier against username or mobile
// number. Email login is intentionally not supported.
func (c *YDBClient) GetAccountByLogin(ctx context.Context, identifier string) (*Account, error) {
	query := `
		DECLARE $identifier AS Text;
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE username = $identifier OR mobile_number = $identifier
		LIMIT 1
	`
	return c.getAccount(ctx, query, table.NewQueryParameters(
		table.ValueParam("$identifier", types.TextValue(identifier)),
	))
}

func (c *YDBClient) GetAccountByMobile(ctx context.Context, mobile string) (*Account, error) {
	query := `
		DECLARE $mobile AS Text;
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE mobile_number = $mobile
		LIMIT 1
	`
	return c.getAccount(ctx, query, table.NewQueryParameters(
		table.ValueParam("$mobile", types.TextValue(mobile)),
	))
}
