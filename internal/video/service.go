// Package video owns the upload pipeline, the visibility resolver, and the
// assignment machinery that builds client playlists.
package video

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/audit"
	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/plans"
	"github.com/auralink/auralink-backend/internal/queue"
	"github.com/auralink/auralink-backend/internal/quota"
	"github.com/auralink/auralink-backend/internal/storage"
	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/google/uuid"
)

// JobQueue is the slice of the queue the upload pipeline needs.
type JobQueue interface {
	Enqueue(ctx context.Context, job queue.Job) error
}

type Service struct {
	db       ydb.Database
	local    storage.Provider
	cloud    storage.Provider
	queue    JobQueue
	registry *identity.Registry
	audits   *audit.Service
	baseURL  string
	logger   *slog.Logger
}

func NewService(db ydb.Database, local, cloud storage.Provider, q JobQueue, registry *identity.Registry, audits *audit.Service, baseURL string, logger *slog.Logger) *Service {
	return &Service{
		db:       db,
		local:    local,
		cloud:    cloud,
		queue:    q,
		registry: registry,
		audits:   audits,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// UploadRequest describes one incoming file.
type UploadRequest struct {
	Title    string
	Filename string
	Size     int64
	Body     io.Reader
	Global   bool // admin only
}

func (s *Service) planFor(ctx context.Context, account *ydb.Account) (*ydb.Plan, error) {
	if account.PlanID == nil {
		return s.db.GetPlanByName(ctx, plans.PlanFree)
	}
	return s.db.GetPlanByID(ctx, *account.PlanID)
}

// Upload runs the quota gate, writes the file, creates the row, and
// enqueues the metadata probe. The row and the stored file stand or fall
// together: a failure at any later step undoes the earlier ones.
func (s *Service) Upload(ctx context.Context, account *ydb.Account, req UploadRequest) (*ydb.Video, error) {
	plan, err := s.planFor(ctx, account)
	if err != nil {
		return nil, err
	}

	usage, err := s.db.GetVideoUsage(ctx, account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage usage: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(req.Filename)), ".")
	check := quota.UploadRequest{FileSizeBytes: req.Size, Format: ext}

	if account.Kind == string(identity.KindStaffTenant) {
		profile, err := s.db.GetStaffProfile(ctx, account.AccountID)
		if err != nil {
			return nil, err
		}
		if err := quota.CanUploadStaff(plan, profile, usage, check); err != nil {
			return nil, err
		}
	} else {
		if err := quota.CanUpload(plan, usage, check); err != nil {
			return nil, err
		}
	}

	isAdmin := s.registry.Has(identity.ActorKind(account.Kind), account.Elevated, identity.CapAccountManage)
	if req.Global && !isAdmin {
		return nil, apperrors.OwnershipViolation("only administrators can publish global videos")
	}

	videoID := uuid.New().String()
	key := fmt.Sprintf("videos/%s/%s.%s", account.AccountID, videoID, ext)

	storageType := ydb.StorageLocal
	backend := s.local
	if quota.CloudAllowed(plan) && s.cloud != nil {
		storageType = ydb.StorageCloud
		backend = s.cloud
	}

	if _, err := backend.Save(ctx, key, req.Body, req.Size, "video/"+ext); err != nil {
		return nil, apperrors.ExternalService("failed to store video file", err)
	}

	video := &ydb.Video{
		VideoID:         videoID,
		OwnerID:         account.AccountID,
		Title:           req.Title,
		StorageType:     storageType,
		FilePath:        key,
		FileSizeBytes:   req.Size,
		Format:          ext,
		IsActive:        true,
		IsGlobal:        req.Global,
		UploadedByAdmin: isAdmin,
	}
	if storageType == ydb.StorageCloud {
		url, err := backend.GeneratePresignedDownloadURL(ctx, key, 24*time.Hour)
		if err == nil {
			video.CloudURL = &url
		}
	}

	if err := s.db.CreateVideo(ctx, video); err != nil {
		if delErr := backend.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to clean up stored file after row failure",
				"key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	// A row with no queued probe is an orphan; undo everything if the
	// enqueue fails.
	job := queue.Job{Kind: queue.JobProbeVideo, VideoID: videoID, FileKey: key}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		if delErr := s.db.DeleteVideoRow(ctx, videoID); delErr != nil {
			s.logger.Error("failed to roll back video row", "video_id", videoID, "error", delErr)
		}
		if delErr := backend.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to clean up stored file", "key", key, "error", delErr)
		}
		return nil, apperrors.ExternalService("failed to enqueue metadata probe", err)
	}

	s.logger.Info("video uploaded",
		"video_id", videoID, "owner_id", account.AccountID, "size_bytes", req.Size)
	return video, nil
}

// VisibleVideos resolves what the actor may see, per kind.
func (s *Service) VisibleVideos(ctx context.Context, account *ydb.Account) ([]*ydb.Video, error) {
	kind := identity.ActorKind(account.Kind)
	if account.Elevated || kind == identity.KindAdministrator {
		return s.db.ListAllVideos(ctx)
	}

	switch kind {
	case identity.KindRegularUser, identity.KindStaffTenant:
		return s.db.ListOwnedOrGlobalVideos(ctx, account.AccountID)
	case identity.KindClientDevice:
		client, err := s.db.GetClientAccountByAccount(ctx, account.AccountID)
		if err != nil {
			return nil, err
		}
		entries, err := s.ClientPlaylist(ctx, client)
		if err != nil {
			return nil, err
		}
		videos := make([]*ydb.Video, 0, len(entries))
		for _, entry := range entries {
			videos = append(videos, entry.Video)
		}
		return videos, nil
	}
	return nil, apperrors.OwnershipViolation("unknown actor kind %q", account.Kind)
}

// ClientPlaylist merges the client-specific and staff-global assignments,
// ordered by play order with creation time as tie-break. A video assigned
// both ways appears once, with the specific assignment winning.
func (s *Service) ClientPlaylist(ctx context.Context, client *ydb.ClientAccount) ([]*ydb.PlaylistEntry, error) {
	if !client.IsActive {
		return nil, apperrors.OwnershipViolation("client device has been deactivated")
	}

	specific, err := s.db.ListSpecificPlaylist(ctx, client.ClientID)
	if err != nil {
		return nil, err
	}
	global, err := s.db.ListGlobalPlaylist(ctx, client.StaffID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(specific))
	merged := make([]*ydb.PlaylistEntry, 0, len(specific)+len(global))
	for _, entry := range specific {
		seen[entry.Video.VideoID] = true
		merged = append(merged, entry)
	}
	for _, entry := range global {
		if !seen[entry.Video.VideoID] {
			merged = append(merged, entry)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].PlayOrder != merged[j].PlayOrder {
			return merged[i].PlayOrder < merged[j].PlayOrder
		}
		return merged[i].Video.CreatedAt.Before(merged[j].Video.CreatedAt)
	})
	return merged, nil
}

// CanDelete is the direct-deletion rule. Videos failing it may still go
// through the deletion request workflow when they are admin-uploaded or
// global.
func (s *Service) CanDelete(video *ydb.Video, account *ydb.Account) bool {
	if account.Elevated || identity.ActorKind(account.Kind) == identity.KindAdministrator {
		return true
	}
	return video.OwnerID == account.AccountID && !video.UploadedByAdmin && !video.IsGlobal
}

// Delete soft-deletes when the actor holds direct permission. Otherwise it
// reports whether the protected-video request path applies.
func (s *Service) Delete(ctx context.Context, account *ydb.Account, videoID string) error {
	video, err := s.db.GetVideo(ctx, videoID)
	if err != nil {
		return err
	}

	if !s.CanDelete(video, account) {
		if video.UploadedByAdmin || video.IsGlobal {
			return apperrors.OwnershipViolation(
				"this video is protected; submit a deletion request instead")
		}
		return apperrors.OwnershipViolation("you do not own this video")
	}

	if err := s.db.SoftDeleteVideo(ctx, videoID); err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if err := s.audits.LogAction(ctx, audit.Record{
		AdminID:     &account.AccountID,
		ActionType:  audit.ActionVideoDeleted,
		TargetModel: "Video",
		TargetID:    videoID,
		Description: fmt.Sprintf("video %q deleted", video.Title),
	}); err != nil {
		s.logger.Error("audit write failed after video delete", "video_id", videoID, "error", err)
	}
	return nil
}

// SetRotation stores a playback rotation override in degrees.
func (s *Service) SetRotation(ctx context.Context, account *ydb.Account, videoID string, rotation int32) error {
	video, err := s.db.GetVideo(ctx, videoID)
	if err != nil {
		return err
	}
	isAdmin := account.Elevated || identity.ActorKind(account.Kind) == identity.KindAdministrator
	if video.OwnerID != account.AccountID && !isAdmin {
		return apperrors.OwnershipViolation("you do not own this video")
	}
	switch rotation {
	case 0, 90, 180, 270:
	default:
		return apperrors.FileValidation("rotation must be one of 0, 90, 180, 270")
	}

	video.Rotation = rotation
	return s.db.UpdateVideo(ctx, video)
}

// Assign attaches a video to a specific client or, with clientID empty, to
// every device of the staff tenant.
func (s *Service) Assign(ctx context.Context, staff *ydb.Account, videoID, clientID string, playOrder int32, loop bool) (*ydb.StaffVideoAssignment, error) {
	video, err := s.db.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsActive {
		return nil, apperrors.FileValidation("cannot assign a deleted video")
	}
	if video.OwnerID != staff.AccountID && !video.IsGlobal {
		return nil, apperrors.OwnershipViolation("video is not available to this staff account")
	}

	if loop {
		plan, err := s.planFor(ctx, staff)
		if err != nil {
			return nil, err
		}
		if !plan.PlaylistLoopAllowed {
			return nil, apperrors.PlanLimitExceeded("playlist looping is not available on plan %s", plan.Name)
		}
	}

	var assignedTo *string
	if clientID != "" {
		client, err := s.db.GetClientAccountByID(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if client.StaffID != staff.AccountID {
			return nil, apperrors.OwnershipViolation("client device belongs to another staff account")
		}
		assignedTo = &clientID
	}

	if existing, err := s.db.GetAssignment(ctx, videoID, assignedTo); err == nil {
		// Same target twice just updates order and loop.
		existing.PlayOrder = playOrder
		existing.LoopEnabled = loop
		if err := s.db.CreateAssignment(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, err
	}

	assignment := &ydb.StaffVideoAssignment{
		AssignmentID:     uuid.New().String(),
		VideoID:          videoID,
		StaffID:          staff.AccountID,
		AssignedTo:       assignedTo,
		IsGlobalForStaff: assignedTo == nil,
		PlayOrder:        playOrder,
		LoopEnabled:      loop,
	}
	if err := s.db.CreateAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	if err := s.audits.LogAction(ctx, audit.Record{
		AdminID:     &staff.AccountID,
		ActionType:  audit.ActionVideoAssigned,
		TargetModel: "StaffVideoAssignment",
		TargetID:    assignment.AssignmentID,
		Description: fmt.Sprintf("video %s assigned", videoID),
	}); err != nil {
		s.logger.Error("audit write failed after assignment", "video_id", videoID, "error", err)
	}
	return assignment, nil
}

// Unassign removes an assignment owned by the staff tenant.
func (s *Service) Unassign(ctx context.Context, staff *ydb.Account, videoID, clientID string) error {
	var assignedTo *string
	if clientID != "" {
		assignedTo = &clientID
	}
	assignment, err := s.db.GetAssignment(ctx, videoID, assignedTo)
	if err != nil {
		return err
	}
	if assignment.StaffID != staff.AccountID {
		return apperrors.OwnershipViolation("assignment belongs to another staff account")
	}
	if err := s.db.DeleteAssignment(ctx, assignment.AssignmentID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

// PlaybackURL resolves a time-limited URL for the video's backend.
func (s *Service) PlaybackURL(ctx context.Context, video *ydb.Video, lifetime time.Duration) (string, error) {
	backend := s.local
	if video.StorageType == ydb.StorageCloud && s.cloud != nil {
		backend = s.cloud
	}
	return backend.GeneratePresignedDownloadURL(ctx, video.FilePath, lifetime)
}

func (s *Service) Get(ctx context.Context, videoID string) (*ydb.Video, error) {
	return s.db.GetVideo(ctx, videoID)
}
