// Package deletion runs the request workflow for protected videos: owners
// of admin-uploaded or global content ask, administrators resolve.
package deletion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/audit"
	"github.com/auralink/auralink-backend/internal/email"
	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/google/uuid"
)

type Service struct {
	db       ydb.Database
	registry *identity.Registry
	mailer   email.Notifier // nil disables notifications
	logger   *slog.Logger
}

func NewService(db ydb.Database, registry *identity.Registry, mailer email.Notifier, logger *slog.Logger) *Service {
	return &Service{db: db, registry: registry, mailer: mailer, logger: logger}
}

// Request opens a deletion request for a protected video. One record per
// (video, requester) pair, ever: a pending or resolved record is returned
// as-is instead of creating a duplicate. REJECTED is terminal; a rejected
// requester does not get a second round.
func (s *Service) Request(ctx context.Context, requester *ydb.Account, videoID, reason string) (*ydb.VideoDeletionRequest, error) {
	video, err := s.db.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.UploadedByAdmin && !video.IsGlobal {
		return nil, apperrors.FileValidation(
			"this video is not protected; delete it directly")
	}
	// Global content can be contested by anyone it is pushed to, not just
	// the owner.
	if video.OwnerID != requester.AccountID && !video.IsGlobal {
		return nil, apperrors.OwnershipViolation("you do not own this video")
	}

	existing, err := s.db.GetDeletionRequest(ctx, videoID, requester.AccountID)
	if err == nil {
		return existing, nil
	}
	if !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, err
	}

	request := &ydb.VideoDeletionRequest{
		RequestID:   uuid.New().String(),
		VideoID:     videoID,
		RequestedBy: requester.AccountID,
		Status:      ydb.DeletionPending,
		Reason:      reason,
	}
	if err := s.db.CreateDeletionRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create deletion request: %w", err)
	}

	// Best effort: the request row already committed.
	entry := audit.Entry(audit.Record{
		AdminID:     &requester.AccountID,
		ActionType:  audit.ActionDeletionRequested,
		TargetModel: "VideoDeletionRequest",
		TargetID:    request.RequestID,
		Description: fmt.Sprintf("deletion requested for video %s", videoID),
	})
	if err := s.db.CreateAdminActionLog(ctx, entry); err != nil {
		s.logger.Error("failed to write audit entry",
			"request_id", request.RequestID, "error", err)
	}

	s.logger.Info("deletion request opened",
		"request_id", request.RequestID, "video_id", videoID, "requested_by", requester.AccountID)
	return request, nil
}

// List returns requests for administrators, optionally by status.
func (s *Service) List(ctx context.Context, actor *ydb.Account, status string) ([]*ydb.VideoDeletionRequest, error) {
	if !s.registry.Has(identity.ActorKind(actor.Kind), actor.Elevated, identity.CapDeletionReview) {
		return nil, apperrors.OwnershipViolation("only administrators can review deletion requests")
	}
	return s.db.ListDeletionRequests(ctx, status)
}

// Approve resolves the request, soft-deletes the video, and writes the
// audit entry, all in one transaction. Resolving an already-resolved
// request is a warned no-op.
func (s *Service) Approve(ctx context.Context, admin *ydb.Account, requestID, notes string) (*ydb.VideoDeletionRequest, error) {
	return s.resolve(ctx, admin, requestID, notes, true)
}

// Reject resolves the request without touching the video.
func (s *Service) Reject(ctx context.Context, admin *ydb.Account, requestID, notes string) (*ydb.VideoDeletionRequest, error) {
	return s.resolve(ctx, admin, requestID, notes, false)
}

func (s *Service) resolve(ctx context.Context, admin *ydb.Account, requestID, notes string, approve bool) (*ydb.VideoDeletionRequest, error) {
	if !s.registry.Has(identity.ActorKind(admin.Kind), admin.Elevated, identity.CapDeletionReview) {
		return nil, apperrors.OwnershipViolation("only administrators can resolve deletion requests")
	}

	request, err := s.db.GetDeletionRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != ydb.DeletionPending {
		s.logger.Warn("deletion request already resolved",
			"request_id", requestID, "status", request.Status)
		return request, nil
	}

	now := time.Now()
	request.AdminNotes = notes
	request.ResolvedBy = &admin.AccountID
	request.ResolvedAt = &now

	actionType := audit.ActionDeletionRejected
	description := fmt.Sprintf("deletion request for video %s rejected", request.VideoID)
	request.Status = ydb.DeletionRejected
	if approve {
		actionType = audit.ActionDeletionApproved
		description = fmt.Sprintf("deletion request for video %s approved", request.VideoID)
		request.Status = ydb.DeletionApproved
	}

	entry := audit.Entry(audit.Record{
		AdminID:     &admin.AccountID,
		ActionType:  actionType,
		TargetModel: "VideoDeletionRequest",
		TargetID:    request.RequestID,
		Description: description,
	})

	if err := s.db.ResolveDeletionRequestTx(ctx, request, approve, entry); err != nil {
		return nil, fmt.Errorf("failed to resolve deletion request: %w", err)
	}

	s.logger.Info("deletion request resolved",
		"request_id", requestID, "status", request.Status, "resolved_by", admin.AccountID)
	s.notifyRequester(ctx, request, notes)
	return request, nil
}

// notifyRequester emails the requester about the resolution. Best effort;
// the resolution itself has already committed.
func (s *Service) notifyRequester(ctx context.Context, request *ydb.VideoDeletionRequest, notes string) {
	if s.mailer == nil {
		return
	}
	requester, err := s.db.GetAccountByID(ctx, request.RequestedBy)
	if err != nil || requester.Email == nil {
		return
	}
	title := request.VideoID
	if video, err := s.db.GetVideo(ctx, request.VideoID); err == nil {
		title = video.Title
	}
	if err := s.mailer.SendDeletionResolved(ctx, *requester.Email, title, request.Status, notes); err != nil {
		s.logger.Warn("failed to send deletion resolution email",
			"request_id", request.RequestID, "error", err)
	}
}
