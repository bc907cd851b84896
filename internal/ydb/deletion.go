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

const deletionRequestColumns = `request_id, video_id, requested_by, status,
		   reason, admin_notes, resolved_by, requested_at, resolved_at`

func scanDeletionRequest(res result.Result, request *VideoDeletionRequest) error {
	return res.ScanNamed(
		named.Required("request_id", &request.RequestID),
		named.Required("video_id", &request.VideoID),
		named.Required("requested_by", &request.RequestedBy),
		named.OptionalWithDefault("status", &request.Status),
		named.OptionalWithDefault("reason", &request.Reason),
		named.OptionalWithDefault("admin_notes", &request.AdminNotes),
		named.Optional("resolved_by", &request.ResolvedBy),
		named.OptionalWithDefault("requested_at", &request.RequestedAt),
		named.Optional("resolved_at", &request.ResolvedAt),
	)
}

func (c *YDBClient) CreateDeletionRequest(ctx context.Context, request *VideoDeletionRequest) error {
	query := `
		DECLARE $request_id AS Text;
		DECLARE $video_id AS Text;
		DECLARE $requested_by AS Text;
		DECLARE $status AS Text;
		DECLARE $reason AS Text;
		DECLARE $admin_notes AS Text;
		DECLARE $resolved_by AS Optional<Text>;
		DECLARE $requested_at AS Timestamp;
		DECLARE $resolved_at AS Optional<Timestamp>;

		REPLACE INTO video_deletion_requests (
			request_id, video_id, requested_by, status, reason, admin_notes,
			resolved_by, requested_at, resolved_at
		) VALUES ($request_id, $video_id, $requested_by, $status, $reason,
			$admin_notes, $resolved_by, $requested_at, $resolved_at)
	`

	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now()
	}

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$request_id", types.TextValue(request.RequestID)),
				table.ValueParam("$video_id", types.TextValue(request.VideoID)),
				table.ValueParam("$requested_by", types.TextValue(request.RequestedBy)),
				table.ValueParam("$status", types.TextValue(request.Status)),
				table.ValueParam("$reason", types.TextValue(request.Reason)),
				table.ValueParam("$admin_notes", types.TextValue(request.AdminNotes)),
				table.ValueParam("$resolved_by", optText(request.ResolvedBy)),
				table.ValueParam("$requested_at", types.TimestampValueFromTime(request.RequestedAt)),
				table.ValueParam("$resolved_at", optTimestamp(request.ResolvedAt)),
			),
		)
		return err
	})
}

func (c *YDBClient) getDeletionRequest(ctx context.Context, query string, params *table.QueryParameters) (*VideoDeletionRequest, error) {
	var request VideoDeletionRequest
	var found bool

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, params)
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			found = true
			if err := scanDeletionRequest(res, &request); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("deletion request not found")
	}
	return &request, nil
}

// GetDeletionRequest returns the newest request for one video by one
// requester, regardless of status.
func (c *YDBClient) GetDeletionRequest(ctx context.Context, videoID, requestedBy string) (*VideoDeletionRequest, error) {
	query := `
		DECLARE $video_id AS Text;
		DECLARE $requested_by AS Text;
		SELECT ` + deletionRequestColumns + `
		FROM video_deletion_requests
		WHERE video_id = $video_id AND requested_by = $requested_by
		ORDER BY requested_at DESC
		LIMIT 1
	`
	return c.getDeletionRequest(ctx, query, table.NewQueryParameters(
		table.ValueParam("$video_id", types.TextValue(videoID)),
		table.ValueParam("$requested_by", types.TextValue(requestedBy)),
	))
}

func (c *YDBClient) GetDeletionRequestByID(ctx context.Context, requestID string) (*VideoDeletionRequest, error) {
	query := `
		DECLARE $request_id AS Text;
		SELECT ` + deletionRequestColumns + `
		FROM video_deletion_requests
		WHERE request_id = $request_id
	`
	return c.getDeletionRequest(ctx, query, table.NewQueryParameters(
		table.ValueParam("$request_id", types.TextValue(requestID)),
	))
}

// ListDeletionRequests returns requests newest first, optionally filtered by
// status.
func (c *YDBClient) ListDeletionRequests(ctx context.Context, status string) ([]*VideoDeletionRequest, error) {
	query := `
		SELECT ` + deletionRequestColumns + `
		FROM video_deletion_requests
		ORDER BY requested_at DESC
	`
	params := table.NewQueryParameters()
	if status != "" {
		query = `
			DECLARE $status AS Text;
			SELECT ` + deletionRequestColumns + `
			FROM video_deletion_requests
			WHERE status = $status
			ORDER BY requested_at DESC
		`
		params = table.NewQueryParameters(
			table.ValueParam("$status", types.TextValue(status)),
		)
	}

	var requests []*VideoDeletionRequest

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, params)
		if err != nil {
			return err
		}
		defer res.Close()

		for res.NextResultSet(ctx) {
			for res.NextRow() {
				var request VideoDeletionRequest
				if err := scanDeletionRequest(res, &request); err != nil {
					return fmt.Errorf("scan failed: %w", err)
				}
				requests = append(requests, &request)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	return requests, nil
}

// resolveDeletionQuery builds the resolution transaction. All DECLAREs have to
// come before the first DML statement, so the blocks are assembled separately.
func resolveDeletionQuery(softDeleteVideo bool) string {
	declares := `
		DECLARE $request_id AS Text;
		DECLARE $status AS Text;
		DECLARE $admin_notes AS Text;
		DECLARE $resolved_by AS Optional<Text>;
		DECLARE $resolved_at AS Optional<Timestamp>;
		DECLARE $log_id AS Text;
		DECLARE $admin_id AS Optional<Text>;
		DECLARE $action_type AS Text;
		DECLARE $target_model AS Text;
		DECLARE $target_id AS Text;
		DECLARE $description AS Text;
		DECLARE $ip_address AS Optional<Text>;
		DECLARE $now AS Timestamp;
	`
	dml := `
		UPDATE video_deletion_requests
		SET status = $status, admin_notes = $admin_notes,
			resolved_by = $resolved_by, resolved_at = $resolved_at
		WHERE request_id = $request_id;

		REPLACE INTO admin_action_logs (
			log_id, admin_id, action_type, target_model, target_id,
			description, ip_address, timestamp
		) VALUES ($log_id, $admin_id, $action_type, $target_model, $target_id,
			$description, $ip_address, $now);
	`

	if softDeleteVideo {
		declares += `
		DECLARE $video_id AS Text;
	`
		dml += `
		UPDATE videos
		SET is_active = false, updated_at = $now
		WHERE video_id = $video_id;
	`
	}

	return declares + dml
}

// ResolveDeletionRequestTx stamps the resolution onto the request, optionally
// soft-deletes the target video, and writes the audit entry, all in one
// transaction.
func (c *YDBClient) ResolveDeletionRequestTx(ctx context.Context, request *VideoDeletionRequest, softDeleteVideo bool, entry *AdminActionLog) error {
	query := resolveDeletionQuery(softDeleteVideo)

	now := time.Now()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now
	}

	params := []table.ParameterOption{
		table.ValueParam("$request_id", types.TextValue(request.RequestID)),
		table.ValueParam("$status", types.TextValue(request.Status)),
		table.ValueParam("$admin_notes", types.TextValue(request.AdminNotes)),
		table.ValueParam("$resolved_by", optText(request.ResolvedBy)),
		table.ValueParam("$resolved_at", optTimestamp(request.ResolvedAt)),
		table.ValueParam("$log_id", types.TextValue(entry.LogID)),
		table.ValueParam("$admin_id", optText(entry.AdminID)),
		table.ValueParam("$action_type", types.TextValue(entry.ActionType)),
		table.ValueParam("$target_model", types.TextValue(entry.TargetModel)),
		table.ValueParam("$target_id", types.TextValue(entry.TargetID)),
		table.ValueParam("$description", types.TextValue(entry.Description)),
		table.ValueParam("$ip_address", optText(entry.IPAddress)),
		table.ValueParam("$now", types.TimestampValueFromTime(entry.Timestamp)),
	}
	if softDeleteVideo {
		params = append(params, table.ValueParam("$video_id", types.TextValue(request.VideoID)))
	}

	return c.driver.Table().DoTx(ctx, func(ctx context.Context, tx table.TransactionActor) error {
		res, err := tx.Execute(ctx, query, table.NewQueryParameters(params...))
		if err != nil {
			return err
		}
		return res.Close()
	})
}
