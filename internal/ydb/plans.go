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

const planColumns = `plan_id, name, price, max_videos, max_file_size_bytes,
		   max_duration_seconds, allowed_formats, total_storage_bytes,
		   cloud_upload_allowed, playlist_loop_allowed, max_clients,
		   max_storage_gb, is_staff_plan, created_at, updated_at`

func scanPlan(res result.Result, plan *Plan) error {
	return res.ScanNamed(
		named.Required("plan_id", &plan.PlanID),
		named.Required("name", &plan.Name),
		named.OptionalWithDefault("price", &plan.Price),
		named.Optional("max_videos", &plan.MaxVideos),
		named.OptionalWithDefault("max_file_size_bytes", &plan.MaxFileSizeBytes),
		named.OptionalWithDefault("max_duration_seconds", &plan.MaxDurationSeconds),
		named.OptionalWithDefault("allowed_formats", &plan.AllowedFormats),
		named.OptionalWithDefault("total_storage_bytes", &plan.TotalStorageBytes),
		named.Required("cloud_upload_allowed", &plan.CloudUploadAllowed),
		named.Required("playlist_loop_allowed", &plan.PlaylistLoopAllowed),
		named.Optional("max_clients", &plan.MaxClients),
		named.Optional("max_storage_gb", &plan.MaxStorageGB),
		named.Required("is_staff_plan", &plan.IsStaffPlan),
		named.OptionalWithDefault("created_at", &plan.CreatedAt),
		named.OptionalWithDefault("updated_at", &plan.UpdatedAt),
	)
}

func (c *YDBClient) UpsertPlan(ctx context.Context, plan *Plan) error {
	query := `
		DECLARE $plan_id AS Text;
		DECLARE $name AS Text;
		DECLARE $price AS Double;
		DECLARE $max_videos AS Optional<Int64>;
		DECLARE $max_file_size_bytes AS Int64;
		DECLARE $max_duration_seconds AS Int64;
		DECLARE $allowed_formats AS Text;
		DECLARE $total_storage_bytes AS Int64;
		DECLARE $cloud_upload_allowed AS Bool;
		DECLARE $playlist_loop_allowed AS Bool;
		DECLARE $max_clients AS Optional<Int64>;
		DECLARE $max_storage_gb AS Optional<Int64>;
		DECLARE $is_staff_plan AS Bool;
		DECLARE $created_at AS Timestamp;
		DECLARE $updated_at AS Timestamp;

		REPLACE INTO plans (
			plan_id, name, price, max_videos, max_file_size_bytes,
			max_duration_seconds, allowed_formats, total_storage_bytes,
			cloud_upload_allowed, playlist_loop_allowed, max_clients,
			max_storage_gb, is_staff_plan, created_at, updated_at
		) VALUES ($plan_id, $name, $price, $max_videos, $max_file_size_bytes,
			$max_duration_seconds, $allowed_formats, $total_storage_bytes,
			$cloud_upload_allowed, $playlist_loop_allowed, $max_clients,
			$max_storage_gb, $is_staff_plan, $created_at, $updated_at)
	`

	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$plan_id", types.TextValue(plan.PlanID)),
				table.ValueParam("$name", types.TextValue(plan.Name)),
				table.ValueParam("$price", types.DoubleValue(plan.Price)),
				table.ValueParam("$max_videos", optInt64(plan.MaxVideos)),
				table.ValueParam("$max_file_size_bytes", types.Int64Value(plan.MaxFileSizeBytes)),
				table.ValueParam("$max_duration_seconds", types.Int64Value(plan.MaxDurationSeconds)),
				table.ValueParam("$allowed_formats", types.TextValue(plan.AllowedFormats)),
				table.ValueParam("$total_storage_bytes", types.Int64Value(plan.TotalStorageBytes)),
				table.ValueParam("$cloud_upload_allowed", types.BoolValue(plan.CloudUploadAllowed)),
				table.ValueParam("$playlist_loop_allowed", types.BoolValue(plan.PlaylistLoopAllowed)),
				table.ValueParam("$max_clients", optInt64(plan.MaxClients)),
				table.ValueParam("$max_storage_gb", optInt64(plan.MaxStorageGB)),
				table.ValueParam("$is_staff_plan", types.BoolValue(plan.IsStaffPlan)),
				table.ValueParam("$created_at", types.TimestampValueFromTime(plan.CreatedAt)),
				table.ValueParam("$updated_at", types.TimestampValueFromTime(plan.UpdatedAt)),
			),
		)
		return err
	})
}

func (c *YDBClient) getPlan(ctx context.Context, query string, params *table.QueryParameters) (*Plan, error) {
	var plan Plan
	var found bool

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, params)
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			found = true
			if err := scanPlan(res, &plan); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("plan not found")
	}
	return &plan, nil
}

func (c *YDBClient) GetPlanByID(ctx context.Context, planID string) (*Plan, error) {
	query := `
		DECLARE $plan_id AS Text;
		SELECT ` + planColumns + `
		FROM plans
		WHERE plan_id = $plan_id
	`
	return c.getPlan(ctx, query, table.NewQueryParameters(
		table.ValueParam("$plan_id", types.TextValue(planID)),
	))
}

func (c *YDBClient) GetPlanByName(ctx context.Context, name string) (*Plan, error) {
	query := `
		DECLARE $name AS Text;
		SELECT ` + planColumns + `
		FROM plans
		WHERE name = $name
	`
	return c.getPlan(ctx, query, table.NewQueryParameters(
		table.ValueParam("$name", types.TextValue(name)),
	))
}

func (c *YDBClient) GetAllPlans(ctx context.Context) ([]*Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM plans
		ORDER BY price
	`

	var plans []*Plan

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, table.NewQueryParameters())
		if err != nil {
			return err
		}
		defer res.Close()

		for res.NextResultSet(ctx) {
			for res.NextRow() {
				var plan Plan
				if err := scanPlan(res, &plan); err != nil {
					return fmt.Errorf("scan failed: %w", err)
				}
				plans = append(plans, &plan)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	return plans, nil
}
