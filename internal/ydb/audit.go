package ydb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ydb-platform/ydb-go-sdk/v3/table"
	"github.com/ydb-platform/ydb-go-sdk/v3/table/result"
	"github.com/ydb-platform/ydb-go-sdk/v3/table/result/named"
	"github.com/ydb-platform/ydb-go-sdk/v3/table/types"
)

const auditColumns = `log_id, admin_id, action_type, target_model, target_id,
		   description, ip_address, timestamp`

func scanAdminActionLog(res result.Result, entry *AdminActionLog) error {
	return res.ScanNamed(
		named.Required("log_id", &entry.LogID),
		named.Optional("admin_id", &entry.AdminID),
		named.Required("action_type", &entry.ActionType),
		named.OptionalWithDefault("target_model", &entry.TargetModel),
		named.OptionalWithDefault("target_id", &entry.TargetID),
		named.OptionalWithDefault("description", &entry.Description),
		named.Optional("ip_address", &entry.IPAddress),
		named.OptionalWithDefault("timestamp", &entry.Timestamp),
	)
}

func (c *YDBClient) CreateAdminActionLog(ctx context.Context, entry *AdminActionLog) error {
	query := `
		DECLARE $log_id AS Text;
		DECLARE $admin_id AS Optional<Text>;
		DECLARE $action_type AS Text;
		DECLARE $target_model AS Text;
		DECLARE $target_id AS Text;
		DECLARE $description AS Text;
		DECLARE $ip_address AS Optional<Text>;
		DECLARE $timestamp AS Timestamp;

		REPLACE INTO admin_action_logs (
			log_id, admin_id, action_type, target_model, target_id,
			description, ip_address, timestamp
		) VALUES ($log_id, $admin_id, $action_type, $target_model, $target_id,
			$description, $ip_address, $timestamp)
	`

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$log_id", types.TextValue(entry.LogID)),
				table.ValueParam("$admin_id", optText(entry.AdminID)),
				table.ValueParam("$action_type", types.TextValue(entry.ActionType)),
				table.ValueParam("$target_model", types.TextValue(entry.TargetModel)),
				table.ValueParam("$target_id", types.TextValue(entry.TargetID)),
				table.ValueParam("$description", types.TextValue(entry.Description)),
				table.ValueParam("$ip_address", optText(entry.IPAddress)),
				table.ValueParam("$timestamp", types.TimestampValueFromTime(entry.Timestamp)),
			),
		)
		return err
	})
}

// ListAdminActionLogs reads audit entries newest first with optional
// admin/action-type/time filters and paging.
func (c *YDBClient) ListAdminActionLogs(ctx context.Context, filter *AuditFilter) ([]*AdminActionLog, error) {
	var declares []string
	var conditions []string
	var params []table.ParameterOption

	if filter.AdminID != "" {
		declares = append(declares, "DECLARE $admin_id AS Text;")
		conditions = append(conditions, "admin_id = $admin_id")
		params = append(params, table.ValueParam("$admin_id", types.TextValue(filter.AdminID)))
	}
	if filter.ActionType != "" {
		declares = append(declares, "DECLARE $action_type AS Text;")
		conditions = append(conditions, "action_type = $action_type")
		params = append(params, table.ValueParam("$action_type", types.TextValue(filter.ActionType)))
	}
	if filter.From != nil {
		declares = append(declares, "DECLARE $from AS Timestamp;")
		conditions = append(conditions, "timestamp >= $from")
		params = append(params, table.ValueParam("$from", types.TimestampValueFromTime(*filter.From)))
	}
	if filter.To != nil {
		declares = append(declares, "DECLARE $to AS Timestamp;")
		conditions = append(conditions, "timestamp < $to")
		params = append(params, table.ValueParam("$to", types.TimestampValueFromTime(*filter.To)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	declares = append(declares, "DECLARE $limit AS Uint64;", "DECLARE $offset AS Uint64;")
	params = append(params,
		table.ValueParam("$limit", types.Uint64Value(uint64(limit))),
		table.ValueParam("$offset", types.Uint64Value(uint64(filter.Offset))),
	)

	query := strings.Join(declares, "\n") + `
		SELECT ` + auditColumns + `
		FROM admin_action_logs
	`
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + "\n"
	}
	query += `
		ORDER BY timestamp DESC
		LIMIT $limit OFFSET $offset
	`

	var entries []*AdminActionLog

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, table.NewQueryParameters(params...))
		if err != nil {
			return err
		}
		defer res.Close()

		for res.NextResultSet(ctx) {
			for res.NextRow() {
				var entry AdminActionLog
				if err := scanAdminActionLog(res, &entry); err != nil {
					return fmt.Errorf("scan failed: %w", err)
				}
				entries = append(entries, &entry)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	return entries, nil
}

// PruneAdminActionLogs deletes audit entries older than the cutoff and
// reports how many rows were removed.
func (c *YDBClient) PruneAdminActionLogs(ctx context.Context, before time.Time) (int64, error) {
	countQuery := `
		DECLARE $before AS Timestamp;
		SELECT COUNT(*) AS stale_entries
		FROM admin_action_logs
		WHERE timestamp < $before
	`
	deleteQuery := `
		DECLARE $before AS Timestamp;
		DELETE FROM admin_action_logs
		WHERE timestamp < $before
	`

	params := table.NewQueryParameters(
		table.ValueParam("$before", types.TimestampValueFromTime(before)),
	)

	var pruned uint64

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), countQuery, params)
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			if err := res.ScanNamed(
				named.OptionalWithDefault("stale_entries", &pruned),
			); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		if err := res.Err(); err != nil {
			return err
		}
		if pruned == 0 {
			return nil
		}

		_, _, err = session.Execute(ctx, table.DefaultTxControl(), deleteQuery, params)
		return err
	})

	if err != nil {
		return 0, err
	}
	return int64(pruned), nil
}
