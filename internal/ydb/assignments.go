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

const assignmentColumns = `assignment_id, video_id, staff_id, assigned_to,
		   is_global_for_staff, play_order, loop_enabled, created_at`

func scanAssignment(res result.Result, assignment *StaffVideoAssignment) error {
	return res.ScanNamed(
		named.Required("assignment_id", &assignment.AssignmentID),
		named.Required("video_id", &assignment.VideoID),
		named.Required("staff_id", &assignment.StaffID),
		named.Optional("assigned_to", &assignment.AssignedTo),
		named.Required("is_global_for_staff", &assignment.IsGlobalForStaff),
		named.OptionalWithDefault("play_order", &assignment.PlayOrder),
		named.Required("loop_enabled", &assignment.LoopEnabled),
		named.OptionalWithDefault("created_at", &assignment.CreatedAt),
	)
}

func (c *YDBClient) CreateAssignment(ctx context.Context, assignment *StaffVideoAssignment) error {
	query := `
		DECLARE $assignment_id AS Text;
		DECLARE $video_id AS Text;
		DECLARE $staff_id AS Text;
		DECLARE $assigned_to AS Optional<Text>;
		DECLARE $is_global_for_staff AS Bool;
		DECLARE $play_order AS Int32;
		DECLARE $loop_enabled AS Bool;
		DECLARE $created_at AS Timestamp;

		REPLACE INTO staff_video_assignments (
			assignment_id, video_id, staff_id, assigned_to, is_global_for_staff,
			play_order, loop_enabled, created_at
		) VALUES ($assignment_id, $video_id, $staff_id, $assigned_to,
			$is_global_for_staff, $play_order, $loop_enabled, $created_at)
	`

	assignment.CreatedAt = time.Now()

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$assignment_id", types.TextValue(assignment.AssignmentID)),
				table.ValueParam("$video_id", types.TextValue(assignment.VideoID)),
				table.ValueParam("$staff_id", types.TextValue(assignment.StaffID)),
				table.ValueParam("$assigned_to", optText(assignment.AssignedTo)),
				table.ValueParam("$is_global_for_staff", types.BoolValue(assignment.IsGlobalForStaff)),
				table.ValueParam("$play_order", types.Int32Value(assignment.PlayOrder)),
				table.ValueParam("$loop_enabled", types.BoolValue(assignment.LoopEnabled)),
				table.ValueParam("$created_at", types.TimestampValueFromTime(assignment.CreatedAt)),
			),
		)
		return err
	})
}

// GetAssignment looks up the assignment of a video to a specific client, or
// the staff-global assignment when assignedTo is nil.
func (c *YDBClient) GetAssignment(ctx context.Context, videoID string, assignedTo *string) (*StaffVideoAssignment, error) {
	query := `
		DECLARE $video_id AS Text;
		SELECT ` + assignmentColumns + `
		FROM staff_video_assignments
		WHERE video_id = $video_id AND assigned_to IS NULL
	`
	params := []table.ParameterOption{
		table.ValueParam("$video_id", types.TextValue(videoID)),
	}
	if assignedTo != nil {
		query = `
			DECLARE $video_id AS Text;
			DECLARE $assigned_to AS Text;
			SELECT ` + assignmentColumns + `
			FROM staff_video_assignments
			WHERE video_id = $video_id AND assigned_to = $assigned_to
		`
		params = append(params, table.ValueParam("$assigned_to", types.TextValue(*assignedTo)))
	}

	var assignment StaffVideoAssignment
	var found bool

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, table.NewQueryParameters(params...))
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			found = true
			if err := scanAssignment(res, &assignment); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("assignment not found")
	}
	return &assignment, nil
}

func (c *YDBClient) DeleteAssignment(ctx context.Context, assignmentID string) error {
	query := `
		DECLARE $assignment_id AS Text;
		DELETE FROM staff_video_assignments
		WHERE assignment_id = $assignment_id
	`

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$assignment_id", types.TextValue(assignmentID)),
			),
		)
		return err
	})
}

const playlistSelect = `
	SELECT a.play_order AS play_order, a.loop_enabled AS loop_enabled,
		   a.created_at AS assigned_at,
		   v.video_id AS video_id, v.owner_id AS owner_id, v.title AS title,
		   v.storage_type AS storage_type, v.file_path AS file_path,
		   v.cloud_url AS cloud_url, v.file_size_bytes AS file_size_bytes,
		   v.duration_seconds AS duration_seconds, v.format AS format,
		   v.width AS width, v.height AS height, v.codec AS codec,
		   v.rotation AS rotation, v.is_active AS is_active,
		   v.is_global AS is_global, v.uploaded_by_admin AS uploaded_by_admin,
		   v.created_at AS created_at, v.updated_at AS updated_at
	FROM staff_video_assignments AS a
	INNER JOIN videos AS v ON v.video_id = a.video_id`

func scanPlaylistEntry(res result.Result, entry *PlaylistEntry) error {
	entry.Video = &Video{}
	if err := res.ScanNamed(
		named.OptionalWithDefault("play_order", &entry.PlayOrder),
		named.Required("loop_enabled", &entry.LoopEnabled),
		named.OptionalWithDefault("assigned_at", &entry.AssignedAt),
	); err != nil {
		return err
	}
	return scanVideo(res, entry.Video)
}

func (c *YDBClient) listPlaylist(ctx context.Context, query string, params *table.QueryParameters) ([]*PlaylistEntry, error) {
	var entries []*PlaylistEntry

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, params)
		if err != nil {
			return err
		}
		defer res.Close()

		for res.NextResultSet(ctx) {
			for res.NextRow() {
				var entry PlaylistEntry
				if err := scanPlaylistEntry(res, &entry); err != nil {
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

// ListSpecificPlaylist returns the active videos assigned directly to one
// client, in play order.
func (c *YDBClient) ListSpecificPlaylist(ctx context.Context, clientID string) ([]*PlaylistEntry, error) {
	query := `
		DECLARE $client_id AS Text;
	` + playlistSelect + `
		WHERE a.assigned_to = $client_id AND v.is_active = true
		ORDER BY play_order ASC, created_at ASC
	`
	return c.listPlaylist(ctx, query, table.NewQueryParameters(
		table.ValueParam("$client_id", types.TextValue(clientID)),
	))
}

// ListGlobalPlaylist returns the active staff-wide videos for one staff
// tenant, in play order.
func (c *YDBClient) ListGlobalPlaylist(ctx context.Context, staffID string) ([]*PlaylistEntry, error) {
	query := `
		DECLARE $staff_id AS Text;
	` + playlistSelect + `
		WHERE a.staff_id = $staff_id AND a.is_global_for_staff = true
			AND a.assigned_to IS NULL AND v.is_active = true
		ORDER BY play_order ASC, created_at ASC
	`
	return c.listPlaylist(ctx, query, table.NewQueryParameters(
		table.ValueParam("$staff_id", types.TextValue(staffID)),
	))
}
