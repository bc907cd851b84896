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

const videoColumns = `video_id, owner_id, title, storage_type, file_path,
		   cloud_url, file_size_bytes, duration_seconds, format, width,
		   height, codec, rotation, is_active, is_global, uploaded_by_admin,
		   created_at, updated_at`

const videoUpsertQuery = `
	DECLARE $video_id AS Text;
	DECLARE $owner_id AS Text;
	DECLARE $title AS Text;
	DECLARE $storage_type AS Text;
	DECLARE $file_path AS Text;
	DECLARE $cloud_url AS Optional<Text>;
	DECLARE $file_size_bytes AS Int64;
	DECLARE $duration_seconds AS Int32;
	DECLARE $format AS Text;
	DECLARE $width AS Optional<Int32>;
	DECLARE $height AS Optional<Int32>;
	DECLARE $codec AS Optional<Text>;
	DECLARE $rotation AS Int32;
	DECLARE $is_active AS Bool;
	DECLARE $is_global AS Bool;
	DECLARE $uploaded_by_admin AS Bool;
	DECLARE $created_at AS Timestamp;
	DECLARE $updated_at AS Timestamp;

	REPLACE INTO videos (
		video_id, owner_id, title, storage_type, file_path, cloud_url,
		file_size_bytes, duration_seconds, format, width, height, codec,
		rotation, is_active, is_global, uploaded_by_admin, created_at, updated_at
	) VALUES ($video_id, $owner_id, $title, $storage_type, $file_path, $cloud_url,
		$file_size_bytes, $duration_seconds, $format, $width, $height, $codec,
		$rotation, $is_active, $is_global, $uploaded_by_admin, $created_at, $updated_at)
`

func videoParams(video *Video) *table.QueryParameters {
	return table.NewQueryParameters(
		table.ValueParam("$video_id", types.TextValue(video.VideoID)),
		table.ValueParam("$owner_id", types.TextValue(video.OwnerID)),
		table.ValueParam("$title", types.TextValue(video.Title)),
		table.ValueParam("$storage_type", types.TextValue(video.StorageType)),
		table.ValueParam("$file_path", types.TextValue(video.FilePath)),
		table.ValueParam("$cloud_url", optText(video.CloudURL)),
		table.ValueParam("$file_size_bytes", types.Int64Value(video.FileSizeBytes)),
		table.ValueParam("$duration_seconds", types.Int32Value(video.DurationSeconds)),
		table.ValueParam("$format", types.TextValue(video.Format)),
		table.ValueParam("$width", optInt32(video.Width)),
		table.ValueParam("$height", optInt32(video.Height)),
		table.ValueParam("$codec", optText(video.Codec)),
		table.ValueParam("$rotation", types.Int32Value(video.Rotation)),
		table.ValueParam("$is_active", types.BoolValue(video.IsActive)),
		table.ValueParam("$is_global", types.BoolValue(video.IsGlobal)),
		table.ValueParam("$uploaded_by_admin", types.BoolValue(video.UploadedByAdmin)),
		table.ValueParam("$created_at", types.TimestampValueFromTime(video.CreatedAt)),
		table.ValueParam("$updated_at", types.TimestampValueFromTime(video.UpdatedAt)),
	)
}

func scanVideo(res result.Result, video *Video) error {
	return res.ScanNamed(
		named.Required("video_id", &video.VideoID),
		named.Required("owner_id", &video.OwnerID),
		named.OptionalWithDefault("title", &video.Title),
		named.OptionalWithDefault("storage_type", &video.StorageType),
		named.OptionalWithDefault("file_path", &video.FilePath),
		named.Optional("cloud_url", &video.CloudURL),
		named.OptionalWithDefault("file_size_bytes", &video.FileSizeBytes),
		named.OptionalWithDefault("duration_seconds", &video.DurationSeconds),
		named.OptionalWithDefault("format", &video.Format),
		named.Optional("width", &video.Width),
		named.Optional("height", &video.Height),
		named.Optional("codec", &video.Codec),
		named.OptionalWithDefault("rotation", &video.Rotation),
		named.Required("is_active", &video.IsActive),
		named.Required("is_global", &video.IsGlobal),
		named.Required("uploaded_by_admin", &video.UploadedByAdmin),
		named.OptionalWithDefault("created_at", &video.CreatedAt),
		named.OptionalWithDefault("updated_at", &video.UpdatedAt),
	)
}

func (c *YDBClient) CreateVideo(ctx context.Context, video *Video) error {
	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), videoUpsertQuery, videoParams(video))
		return err
	})
}

func (c *YDBClient) UpdateVideo(ctx context.Context, video *Video) error {
	video.UpdatedAt = time.Now()

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), videoUpsertQuery, videoParams(video))
		return err
	})
}

func (c *YDBClient) GetVideo(ctx context.Context, videoID string) (*Video, error) {
	query := `
		DECLARE $video_id AS Text;
		SELECT ` + videoColumns + `
		FROM videos
		WHERE video_id = $video_id
	`

	var video Video
	var found bool

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$video_id", types.TextValue(videoID)),
			),
		)
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			found = true
			if err := scanVideo(res, &video); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("video not found")
	}
	return &video, nil
}

func (c *YDBClient) SoftDeleteVideo(ctx context.Context, videoID string) error {
	query := `
		DECLARE $video_id AS Text;
		DECLARE $now AS Timestamp;
		UPDATE videos
		SET is_active = false, updated_at = $now
		WHERE video_id = $video_id
	`

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$video_id", types.TextValue(videoID)),
				table.ValueParam("$now", types.TimestampValueFromTime(time.Now())),
			),
		)
		return err
	})
}

func (c *YDBClient) DeleteVideoRow(ctx context.Context, videoID string) error {
	query := `
		DECLARE $video_id AS Text;
		DELETE FROM videos WHERE video_id = $video_id
	`

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$video_id", types.TextValue(videoID)),
			),
		)
		return err
	})
}

func (c *YDBClient) listVideos(ctx context.Context, query string, params *table.QueryParameters) ([]*Video, error) {
	var videos []*Video

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, params)
		if err != nil {
			return err
		}
		defer res.Close()

		for res.NextResultSet(ctx) {
			for res.NextRow() {
				var video Video
				if err := scanVideo(res, &video); err != nil {
					return fmt.Errorf("scan failed: %w", err)
				}
				videos = append(videos, &video)
			}
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (c *YDBClient) ListVideosByOwner(ctx context.Context, ownerID string) ([]*Video, error) {
	query := `
		DECLARE $owner_id AS Text;
		SELECT ` + videoColumns + `
		FROM videos
		WHERE owner_id = $owner_id AND is_active = true
		ORDER BY created_at DESC
	`
	return c.listVideos(ctx, query, table.NewQueryParameters(
		table.ValueParam("$owner_id", types.TextValue(ownerID)),
	))
}

func (c *YDBClient) ListOwnedOrGlobalVideos(ctx context.Context, ownerID string) ([]*Video, error) {
	query := `
		DECLARE $owner_id AS Text;
		SELECT ` + videoColumns + `
		FROM videos
		WHERE (owner_id = $owner_id OR is_global = true) AND is_active = true
		ORDER BY created_at DESC
	`
	return c.listVideos(ctx, query, table.NewQueryParameters(
		table.ValueParam("$owner_id", types.TextValue(ownerID)),
	))
}

func (c *YDBClient) ListAllVideos(ctx context.Context) ([]*Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos
		ORDER BY created_at DESC
	`
	return c.listVideos(ctx, query, table.NewQueryParameters())
}

// GetVideoUsage returns the active-video aggregate for one owner: row count
// and summed file size.
func (c *YDBClient) GetVideoUsage(ctx context.Context, ownerID string) (*VideoUsage, error) {
	query := `
		DECLARE $owner_id AS Text;
		SELECT COUNT(*) AS video_count, COALESCE(SUM(file_size_bytes), 0) AS total_bytes
		FROM videos
		WHERE owner_id = $owner_id AND is_active = true
	`

	var usage VideoUsage

	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$owner_id", types.TextValue(ownerID)),
			),
		)
		if err != nil {
			return err
		}
		defer res.Close()

		if res.NextResultSet(ctx) && res.NextRow() {
			var count uint64
			if err := res.ScanNamed(
				named.OptionalWithDefault("video_count", &count),
				named.OptionalWithDefault("total_bytes", &usage.TotalBytes),
			); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			usage.VideoCount = int64(count)
		}
		return res.Err()
	})

	if err != nil {
		return nil, err
	}
	return &usage, nil
}

func (c *YDBClient) UpdateVideoProbeResult(ctx context.Context, videoID string, durationSeconds int32, width, height *int32, codec *string) error {
	query := `
		DECLARE $video_id AS Text;
		DECLARE $duration_seconds AS Int32;
		DECLARE $width AS Optional<Int32>;
		DECLARE $height AS Optional<Int32>;
		DECLARE $codec AS Optional<Text>;
		DECLARE $now AS Timestamp;

		UPDATE videos
		SET duration_seconds = $duration_seconds, width = $width,
			height = $height, codec = $codec, updated_at = $now
		WHERE video_id = $video_id
	`

	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query,
			table.NewQueryParameters(
				table.ValueParam("$video_id", types.TextValue(videoID)),
				table.ValueParam("$duration_seconds", types.Int32Value(durationSeconds)),
				table.ValueParam("$width", optInt32(width)),
				table.ValueParam("$height", optInt32(height)),
				table.ValueParam("$codec", optText(codec)),
				table.ValueParam("$now", types.TimestampValueFromTime(time.Now())),
			),
		)
		return err
	})
}
