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

// Staff profiles

const staffProfileUpsertQuery = `
	DECLARE $account_id AS Text;
	DECLARE $max_clients AS Int32;
	DECLARE $max_storage_gb AS Int32;
	DECLARE $can_use_cloud AS Bool;
	DECLARE $created_at AS Timestamp;
	DECLARE $updated_at AS Timestamp;

	REPLACE INTO staff_profiles (
		account_id, max_clients, max_storage_gb, can_use_cloud, created_at, updated_at
	) VALUES ($account_id, $max_clients, $max_storage_gb, $can_use_cloud, $created_at, $updated_at)
`

func staffProfileParams(profile *StaffProfile) *table.QueryParameters {
	return table.NewQueryParameters(
		table.ValueParam("$account_id", types.TextValue(profile.AccountID)),
		table.ValueParam("$max_clients", types.Int32Value(profile.MaxClients)),
		table.ValueParam("$max_storage_gb", types.Int32Value(profile.MaxStorageGB)),
		table.ValueParam("$can_use_cloud", types.BoolValue(profile.CanUseCloud)),
		table.ValueParam("$created_at", types.TimestampValueFromTime(profile.CreatedAt)),
		table.ValueParam("$updated_at", types.TimestampValueFromTime(profile.UpdatedAt)),
	)
}

func (c *YDBClient) CreateStaffProfile(ctx context.Context, profile *StaffProfile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), staffProfileUpsertQuery, staffProfileParams(profile))
		return err
	})
}

func (c *YDBClient) UpdateStaffProfile(ctx context.Context, profile *StaffProfile) error {
	profile.UpdatedAt = time.Now()

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), staffProfileUpsertQuery, staffProfileParams(profile))
		return err
	})
}

func (c *YDBClient) GetStaffProfile(ctx context.Context, accountID string) (*StaffProfile, error) {
	query := `
		DECLARE $account_id AS Text;
		SELECT account_id, max_clients, max_storage_gb, can_use_cloud, created_at, updated_at
		FROM staff_profiles
		WHERE account_id = $account_id
	`

	var profile StaffProfile
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
			if err := res.ScanNamed(
				named.Required("account_id", &profile.AccountID),
				named.OptionalWithDefault("max_clients", &profile.MaxClients),
				named.OptionalWithDefault("max_storage_gb", &profile.MaxStorageGB),
				named.Required("can_use_cloud", &profile.CanUseCloud),
				named.OptionalWithDefault("created_at", &profile.CreatedAt),
				named.OptionalWithDefault("updated_at", &profile.UpdatedAt),
			); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("staff profile not found")
	}
	return &profile, nil
}

// Access codes

const accessCodeColumns = `code_id, code, staff_id, client_id, is_active,
		   is_used, created_at, activated_at`

const accessCodeUpsertQuery = `
	DECLARE $code_id AS Text;
	DECLARE $code AS Text;
	DECLARE $staff_id AS Text;
	DECLARE $client_id AS Optional<Text>;
	DECLARE $is_active AS Bool;
	DECLARE $is_used AS Bool;
	DECLARE $created_at AS Timestamp;
	DECLARE $activated_at AS Optional<Timestamp>;

	REPLACE INTO access_codes (
		code_id, code, staff_id, client_id, is_active, is_used, created_at, activated_at
	) VALUES ($code_id, $code, $staff_id, $client_id, $is_active, $is_used, $created_at, $activated_at)
`

func accessCodeParams(code *AccessCode) *table.QueryParameters {
	return table.NewQueryParameters(
		table.ValueParam("$code_id", types.TextValue(code.CodeID)),
		table.ValueParam("$code", types.TextValue(code.Code)),
		table.ValueParam("$staff_id", types.TextValue(code.StaffID)),
		table.ValueParam("$client_id", optText(code.ClientID)),
		table.ValueParam("$is_active", types.BoolValue(code.IsActive)),
		table.ValueParam("$is_used", types.BoolValue(code.IsUsed)),
		table.ValueParam("$created_at", types.TimestampValueFromTime(code.CreatedAt)),
		table.ValueParam("$activated_at", optTimestamp(code.ActivatedAt)),
	)
}

func scanAccessCode(res result.Result, code *AccessCode) error {
	return res.ScanNamed(
		named.Required("code_id", &code.CodeID),
		named.Required("code", &code.Code),
		named.Required("staff_id", &code.StaffID),
		named.Optional("client_id", &code.ClientID),
		named.Required("is_active", &code.IsActive),
		named.Required("is_used", &code.IsUsed),
		named.OptionalWithDefault("created_at", &code.CreatedAt),
		named.Optional("activated_at", &code.ActivatedAt),
	)
}

func (c *YDBClient) CreateAccessCode(ctx context.Context, code *AccessCode) error {
	code.CreatedAt = time.Now()

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), accessCodeUpsertQuery, accessCodeParams(code))
		return err
	})
}

func (c *YDBClient) GetAccessCodeByCode(ctx context.Context, codeValue string) (*AccessCode, error) {
	query := `
		DECLARE $code AS Text;
		SELECT ` + accessCodeColumns + `
		FROM access_codes
		WHERE code = $code
	`

	var code AccessCode
	var found bool

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$code", types.TextValue(codeValue)),
			),
		)
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			found = true
			if err := scanAccessCode(res, &code); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("access code not found")
	}
	return &code, nil
}

func (c *YDBClient) CountActiveCodesForStaff(ctx context.Context, staffID string) (int64, error) {
	query := `
		DECLARE $staff_id AS Text;
		SELECT COUNT(*) AS active_codes
		FROM access_codes
		WHERE staff_id = $staff_id AND is_active = true
	`

	var count uint64

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$staff_id", types.TextValue(staffID)),
			),
		)
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			if err := res.ScanNamed(
				named.OptionalWithDefault("active_codes", &count),
			); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		return res.Err()
	})

	if err != nil {
		return 0, err
	}
	return int64(count), nil
}

func (c *YDBClient) ListAccessCodesByStaff(ctx context.Context, staffID string) ([]*AccessCode, error) {
	query := `
		DECLARE $staff_id AS Text;
		SELECT ` + accessCodeColumns + `
		FROM access_codes
		WHERE staff_id = $staff_id
		ORDER BY created_at DESC
	`

	var codes []*AccessCode

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$staff_id", types.TextValue(staffID)),
			),
		)
		if err != nil {
			return err
		}
		defer res.Close()

		for res.NextResultSet(ctx) {
			for res.NextRow() {
				var code AccessCode
				if err := scanAccessCode(res, &code); err != nil {
					return fmt.Errorf("scan failed: %w", err)
				}
				codes = append(codes, &code)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	return codes, nil
}

// RedeemAccessCodeTx applies the three writes of a code redemption — account
// promotion, client account creation or reactivation, code binding — in one
// transaction.
func (c *YDBClient) RedeemAccessCodeTx(ctx context.Context, account *Account, client *ClientAccount, code *AccessCode) error {
	query := `
		DECLARE $account_id AS Text;
		DECLARE $kind AS Text;
		DECLARE $client_id AS Text;
		DECLARE $client_account_id AS Text;
		DECLARE $staff_id AS Text;
		DECLARE $access_code_id AS Optional<Text>;
		DECLARE $device_name AS Text;
		DECLARE $device_identifier AS Text;
		DECLARE $client_created_at AS Timestamp;
		DECLARE $code_id AS Text;
		DECLARE $activated_at AS Optional<Timestamp>;
		DECLARE $now AS Timestamp;

		UPDATE accounts
		SET kind = $kind, updated_at = $now
		WHERE account_id = $account_id;

		REPLACE INTO client_accounts (
			client_id, account_id, staff_id, access_code_id, device_name,
			device_identifier, is_active, is_online, last_seen, created_at, updated_at
		) VALUES ($client_id, $client_account_id, $staff_id, $access_code_id,
			$device_name, $device_identifier, true, false, NULL, $client_created_at, $now);

		UPDATE access_codes
		SET client_id = $client_id, is_used = true, activated_at = $activated_at
		WHERE code_id = $code_id;
	`

	now := time.Now()
	createdAt := client.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	return c.driver.Table().DoTx(ctx, func(ctx context.Context, tx table.TransactionActor) error {
		res, err := tx.Execute(ctx, query,
			table.NewQueryParameters(
				table.ValueParam("$account_id", types.TextValue(account.AccountID)),
				table.ValueParam("$kind", types.TextValue(account.Kind)),
				table.ValueParam("$client_id", types.TextValue(client.ClientID)),
				table.ValueParam("$client_account_id", types.TextValue(client.AccountID)),
				table.ValueParam("$staff_id", types.TextValue(client.StaffID)),
				table.ValueParam("$access_code_id", optText(client.AccessCodeID)),
				table.ValueParam("$device_name", types.TextValue(client.DeviceName)),
				table.ValueParam("$device_identifier", types.TextValue(client.DeviceIdentifier)),
				table.ValueParam("$client_created_at", types.TimestampValueFromTime(createdAt)),
				table.ValueParam("$code_id", types.TextValue(code.CodeID)),
				table.ValueParam("$activated_at", optTimestamp(code.ActivatedAt)),
				table.ValueParam("$now", types.TimestampValueFromTime(now)),
			),
		)
		if err != nil {
			return err
		}
		return res.Close()
	})
}

// DeactivateAccessCodeTx flips the code inactive and cascades to its bound
// client account. Assignment history stays intact.
func (c *YDBClient) DeactivateAccessCodeTx(ctx context.Context, codeID string) error {
	query := `
		DECLARE $code_id AS Text;
		DECLARE $now AS Timestamp;

		UPDATE access_codes
		SET is_active = false
		WHERE code_id = $code_id;

		UPDATE client_accounts
		SET is_active = false, is_online = false, updated_at = $now
		WHERE access_code_id = $code_id;
	`

	return c.driver.Table().DoTx(ctx, func(ctx context.Context, tx table.TransactionActor) error {
		res, err := tx.Execute(ctx, query,
			table.NewQueryParameters(
				table.ValueParam("$code_id", types.TextValue(codeID)),
				table.ValueParam("$now", types.TimestampValueFromTime(time.Now())),
			),
		)
		if err != nil {
			return err
		}
		return res.Close()
	})
}

// Client accounts

const clientColumns = `client_id, account_id, staff_id, access_code_id,
		   device_name, device_identifier, is_active, is_online, last_seen,
		   created_at, updated_at`

func scanClientAccount(res result.Result, client *ClientAccount) error {
	return res.ScanNamed(
		named.Required("client_id", &client.ClientID),
		named.Required("account_id", &client.AccountID),
		named.Required("staff_id", &client.StaffID),
		named.Optional("access_code_id", &client.AccessCodeID),
		named.OptionalWithDefault("device_name", &client.DeviceName),
		named.OptionalWithDefault("device_identifier", &client.DeviceIdentifier),
		named.Required("is_active", &client.IsActive),
		named.Required("is_online", &client.IsOnline),
		named.Optional("last_seen", &client.LastSeen),
		named.OptionalWithDefault("created_at", &client.CreatedAt),
		named.OptionalWithDefault("updated_at", &client.UpdatedAt),
	)
}

func (c *YDBClient) getClientAccount(ctx context.Context, query string, params *table.QueryParameters) (*ClientAccount, error) {
	var client ClientAccount
	var found bool

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, params)
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			found = true
			if err := scanClientAccount(res, &client); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("client account not found")
	}
	return &client, nil
}

func (c *YDBClient) GetClientAccountByID(ctx context.Context, clientID string) (*ClientAccount, error) {
	query := `
		DECLARE $client_id AS Text;
		SELECT ` + clientColumns + `
		FROM client_accounts
		WHERE client_id = $client_id
	`
	return c.getClientAccount(ctx, query, table.NewQueryParameters(
		table.ValueParam("$client_id", types.TextValue(clientID)),
	))
}

func (c *YDBClient) GetClientAccountByAccount(ctx context.Context, accountID string) (*ClientAccount, error) {
	query := `
		DECLARE $account_id AS Text;
		SELECT ` + clientColumns + `
		FROM client_accounts
		WHERE account_id = $account_id
	`
	return c.getClientAccount(ctx, query, table.NewQueryParameters(
		table.ValueParam("$account_id", types.TextValue(accountID)),
	))
}

func (c *YDBClient) UpdateClientAccount(ctx context.Context, client *ClientAccount) error {
	query := `
		DECLARE $client_id AS Text;
		DECLARE $account_id AS Text;
		DECLARE $staff_id AS Text;
		DECLARE $access_code_id AS Optional<Text>;
		DECLARE $device_name AS Text;
		DECLARE $device_identifier AS Text;
		DECLARE $is_active AS Bool;
		DECLARE $is_online AS Bool;
		DECLARE $last_seen AS Optional<Timestamp>;
		DECLARE $created_at AS Timestamp;
		DECLARE $updated_at AS Timestamp;

		REPLACE INTO client_accounts (
			client_id, account_id, staff_id, access_code_id, device_name,
			device_identifier, is_active, is_online, last_seen, created_at, updated_at
		) VALUES ($client_id, $account_id, $staff_id, $access_code_id, $device_name,
			$device_identifier, $is_active, $is_online, $last_seen, $created_at, $updated_at)
	`

	client.UpdatedAt = time.Now()

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$client_id", types.TextValue(client.ClientID)),
				table.ValueParam("$account_id", types.TextValue(client.AccountID)),
				table.ValueParam("$staff_id", types.TextValue(client.StaffID)),
				table.ValueParam("$access_code_id", optText(client.AccessCodeID)),
				table.ValueParam("$device_name", types.TextValue(client.DeviceName)),
				table.ValueParam("$device_identifier", types.TextValue(client.DeviceIdentifier)),
				table.ValueParam("$is_active", types.BoolValue(client.IsActive)),
				table.ValueParam("$is_online", types.BoolValue(client.IsOnline)),
				table.ValueParam("$last_seen", optTimestamp(client.LastSeen)),
				table.ValueParam("$created_at", types.TimestampValueFromTime(client.CreatedAt)),
				table.ValueParam("$updated_at", types.TimestampValueFromTime(client.UpdatedAt)),
			),
		)
		return err
	})
}

func (c *YDBClient) ListClientsByStaff(ctx context.Context, staffID string) ([]*ClientAccount, error) {
	query := `
		DECLARE $staff_id AS Text;
		SELECT ` + clientColumns + `
		FROM client_accounts
		WHERE staff_id = $staff_id
		ORDER BY created_at DESC
	`

	var clients []*ClientAccount

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$staff_id", types.TextValue(staffID)),
			),
		)
		if err != nil {
			return err
		}
		defer res.Close()

		for res.NextResultSet(ctx) {
			for res.NextRow() {
				var client ClientAccount
				if err := scanClientAccount(res, &client); err != nil {
					return fmt.Errorf("scan failed: %w", err)
				}
				clients = append(clients, &client)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *YDBClient) UpdateClientHeartbeat(ctx context.Context, clientID string, online bool, seenAt time.Time) error {
	query := `
		DECLARE $client_id AS Text;
		DECLARE $is_online AS Bool;
		DECLARE $last_seen AS Timestamp;

		UPDATE client_accounts
		SET is_online = $is_online, last_seen = $last_seen, updated_at = $last_seen
		WHERE client_id = $client_id
	`

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$client_id", types.TextValue(clientID)),
				table.ValueParam("$is_online", types.BoolValue(online)),
				table.ValueParam("$last_seen", types.TimestampValueFromTime(seenAt)),
			),
		)
		return err
	})
}
