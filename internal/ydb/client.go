package ydb

import (
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/auralink/auralink-backend/internal/config"
	"github.com/ydb-platform/ydb-go-sdk/v3"
	"github.com/ydb-platform/ydb-go-sdk/v3/table"
	"github.com/ydb-platform/ydb-go-sdk/v3/table/types"
	yc "github.com/ydb-platform/ydb-go-yc"
)

// YDBClient implements the Database interface.
type YDBClient struct {
	driver       *ydb.Driver
	databasePath string
}

// NewYDBClient opens the YDB driver and optionally creates tables.
func NewYDBClient(ctx context.Context, cfg *config.Config) (*YDBClient, error) {
	endpoint := cfg.YDBEndpoint
	database := cfg.YDBDatabasePath

	if endpoint == "" || database == "" {
		return nil, fmt.Errorf("YDB credentials not provided. Please set AL_YDB_ENDPOINT and AL_YDB_DATABASE_PATH environment variables")
	}

	driver, err := ydb.Open(ctx, endpoint,
		ydb.WithDatabase(database),
		yc.WithMetadataCredentials(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to YDB: %w", err)
	}

	log.Println("Successfully connected to YDB")

	client := &YDBClient{
		driver:       driver,
		databasePath: database,
	}

	if cfg.YDBAutoCreateTables {
		log.Println("AL_YDB_AUTO_CREATE_TABLES is enabled, checking and creating tables...")
		if err := client.createTables(ctx); err != nil {
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return client, nil
}

// Close closes the database connection.
func (c *YDBClient) Close() error {
	if c.driver != nil {
		return c.driver.Close(context.Background())
	}
	return nil
}

func (c *YDBClient) tableExists(ctx context.Context, name string) (bool, error) {
	exists := false
	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, err := session.DescribeTable(ctx, path.Join(c.databasePath, name))
		if err == nil {
			exists = true
		}
		return nil
	})
	return exists, err
}

func (c *YDBClient) executeSchemeQuery(ctx context.Context, query string) error {
	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		return session.ExecuteSchemeQuery(ctx, query)
	})
}

var tableSchemas = []struct {
	name  string
	query string
}{
	{"accounts", `
		CREATE TABLE accounts (
			account_id Text NOT NULL,
			username Text NOT NULL,
			mobile_number Text,
			email Text,
			password_hash Text NOT NULL,
			kind Text NOT NULL,
			elevated Bool DEFAULT false,
			plan_id Text,
			is_active Bool DEFAULT true,
			created_at Timestamp,
			updated_at Timestamp,
			PRIMARY KEY (account_id),
			INDEX username_idx GLOBAL UNIQUE ON (username),
			INDEX mobile_idx GLOBAL ON (mobile_number)
		)
	`},
	{"plans", `
		CREATE TABLE plans (
			plan_id Text NOT NULL,
			name Text NOT NULL,
			price Double,
			max_videos Int64,
			max_file_size_bytes Int64,
			max_duration_seconds Int64,
			allowed_formats Text,
			total_storage_bytes Int64,
			cloud_upload_allowed Bool DEFAULT false,
			playlist_loop_allowed Bool DEFAULT false,
			max_clients Int64,
			max_storage_gb Int64,
			is_staff_plan Bool DEFAULT false,
			created_at Timestamp,
			updated_at Timestamp,
			PRIMARY KEY (plan_id),
			INDEX plan_name_idx GLOBAL UNIQUE ON (name)
		)
	`},
	{"subscriptions", `
		CREATE TABLE subscriptions (
			subscription_id Text NOT NULL,
			account_id Text NOT NULL,
			plan_id Text NOT NULL,
			status Text NOT NULL,
			start_date Timestamp,
			end_date Timestamp,
			grace_period_days Int32,
			created_at Timestamp,
			updated_at Timestamp,
			PRIMARY KEY (subscription_id),
			INDEX sub_account_idx GLOBAL UNIQUE ON (account_id),
			INDEX sub_status_idx GLOBAL ON (status)
		)
	`},
	{"videos", `
		CREATE TABLE videos (
			video_id Text NOT NULL,
			owner_id Text NOT NULL,
			title Text,
			storage_type Text,
			file_path Text,
			cloud_url Text,
			file_size_bytes Int64,
			duration_seconds Int32,
			format Text,
			width Int32,
			height Int32,
			codec Text,
			rotation Int32,
			is_active Bool DEFAULT true,
			is_global Bool DEFAULT false,
			uploaded_by_admin Bool DEFAULT false,
			created_at Timestamp,
			updated_at Timestamp,
			PRIMARY KEY (video_id),
			INDEX video_owner_idx GLOBAL ON (owner_id, created_at),
			INDEX video_active_idx GLOBAL ON (is_active)
		)
	`},
	{"staff_profiles", `
		CREATE TABLE staff_profiles (
			account_id Text NOT NULL,
			max_clients Int32,
			max_storage_gb Int32,
			can_use_cloud Bool DEFAULT false,
			created_at Timestamp,
			updated_at Timestamp,
			PRIMARY KEY (account_id)
		)
	`},
	{"access_codes", `
		CREATE TABLE access_codes (
			code_id Text NOT NULL,
			code Text NOT NULL,
			staff_id Text NOT NULL,
			client_id Text,
			is_active Bool DEFAULT true,
			is_used Bool DEFAULT false,
			created_at Timestamp,
			activated_at Timestamp,
			PRIMARY KEY (code_id),
			INDEX code_idx GLOBAL UNIQUE ON (code),
			INDEX code_staff_idx GLOBAL ON (staff_id, created_at)
		)
	`},
	{"client_accounts", `
		CREATE TABLE client_accounts (
			client_id Text NOT NULL,
			account_id Text NOT NULL,
			staff_id Text NOT NULL,
			access_code_id Text,
			device_name Text,
			device_identifier Text,
			is_active Bool DEFAULT true,
			is_online Bool DEFAULT false,
			last_seen Timestamp,
			created_at Timestamp,
			updated_at Timestamp,
			PRIMARY KEY (client_id),
			INDEX client_account_idx GLOBAL UNIQUE ON (account_id),
			INDEX client_staff_idx GLOBAL ON (staff_id, created_at)
		)
	`},
	{"staff_video_assignments", `
		CREATE TABLE staff_video_assignments (
			assignment_id Text NOT NULL,
			video_id Text NOT NULL,
			staff_id Text NOT NULL,
			assigned_to Text,
			is_global_for_staff Bool DEFAULT false,
			play_order Int32,
			loop_enabled Bool DEFAULT true,
			created_at Timestamp,
			PRIMARY KEY (assignment_id),
			INDEX assign_staff_idx GLOBAL ON (staff_id, play_order),
			INDEX assign_client_idx GLOBAL ON (assigned_to, play_order),
			INDEX assign_video_idx GLOBAL ON (video_id, assigned_to)
		)
	`},
	{"video_deletion_requests", `
		CREATE TABLE video_deletion_requests (
			request_id Text NOT NULL,
			video_id Text NOT NULL,
			requested_by Text NOT NULL,
			status Text NOT NULL,
			reason Text,
			admin_notes Text,
			resolved_by Text,
			requested_at Timestamp,
			resolved_at Timestamp,
			PRIMARY KEY (request_id),
			INDEX delreq_video_idx GLOBAL ON (video_id, requested_by),
			INDEX delreq_status_idx GLOBAL ON (status, requested_at)
		)
	`},
	{"admin_action_logs", `
		CREATE TABLE admin_action_logs (
			log_id Text NOT NULL,
			admin_id Text,
			action_type Text NOT NULL,
			target_model Text,
			target_id Text,
			description Text,
			ip_address Text,
			timestamp Timestamp,
			PRIMARY KEY (log_id),
			INDEX audit_ts_idx GLOBAL ON (timestamp),
			INDEX audit_action_idx GLOBAL ON (action_type)
		)
	`},
}

// createTables creates missing tables one by one. The small sleep between
// scheme operations avoids tripping the per-database schema rate limit.
func (c *YDBClient) createTables(ctx context.Context) error {
	for _, schema := range tableSchemas {
		log.Printf("Creating table: %s", schema.name)
		exists, err := c.tableExists(ctx, schema.name)
		if err != nil {
			return fmt.Errorf("failed to check %s table existence: %w", schema.name, err)
		}
		if exists {
			log.Printf("Table %s already exists, skipping creation", schema.name)
			continue
		}
		if err := c.executeSchemeQuery(ctx, schema.query); err != nil {
			return fmt.Errorf("failed to create %s table: %w", schema.name, err)
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil
}

// Optional parameter helpers.

func optText(v *string) types.Value {
	if v == nil {
		return types.NullValue(types.TypeText)
	}
	return types.OptionalValue(types.TextValue(*v))
}

func optInt32(v *int32) types.Value {
	if v == nil {
		return types.NullValue(types.TypeInt32)
	}
	return types.OptionalValue(types.Int32Value(*v))
}

func optInt64(v *int64) types.Value {
	if v == nil {
		return types.NullValue(types.TypeInt64)
	}
	return types.OptionalValue(types.Int64Value(*v))
}

func optTimestamp(v *time.Time) types.Value {
	if v == nil {
		return types.NullValue(types.TypeTimestamp)
	}
	return types.OptionalValue(types.TimestampValueFromTime(*v))
}
