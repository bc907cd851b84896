// Package audit records administrative mutations. Entries are append-only;
// the retention sweep is the only thing that removes them.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/auralink/auralink-backend/internal/identity"
	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/google/uuid"
)

// Action types, one per administrative mutation.
const (
	ActionUserCreated       = "USER_CREATED"
	ActionUserBlocked       = "USER_BLOCKED"
	ActionUserUnblocked     = "USER_UNBLOCKED"
	ActionPlanChanged       = "PLAN_CHANGED"
	ActionVideoUploaded     = "VIDEO_UPLOADED"
	ActionVideoDeleted      = "VIDEO_DELETED"
	ActionVideoAssigned     = "VIDEO_ASSIGNED"
	ActionVideoUnassigned   = "VIDEO_UNASSIGNED"
	ActionCodeGenerated     = "CODE_GENERATED"
	ActionCodeDeactivated   = "CODE_DEACTIVATED"
	ActionDeletionRequested = "DELETION_REQUESTED"
	ActionDeletionApproved  = "DELETION_APPROVED"
	ActionDeletionRejected  = "DELETION_REJECTED"
)

// Service coordinates audit logging and retrieval.
type Service struct {
	db       ydb.Database
	registry *identity.Registry
	log      *slog.Logger
}

func NewService(db ydb.Database, registry *identity.Registry, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{db: db, registry: registry, log: log}
}

// Record captures the runtime context of an administrative action.
type Record struct {
	AdminID     *string
	ActionType  string
	TargetModel string
	TargetID    string
	Description string
	IPAddress   *string
}

// LogAction stores the record synchronously. An audit write failure is
// surfaced to the caller; the mutation it describes has already happened,
// so callers log it loudly rather than roll back.
func (s *Service) LogAction(ctx context.Context, record Record) error {
	if record.ActionType == "" {
		return errors.New("action_type is required")
	}

	entry := &ydb.AdminActionLog{
		LogID:       uuid.New().String(),
		AdminID:     record.AdminID,
		ActionType:  record.ActionType,
		TargetModel: record.TargetModel,
		TargetID:    record.TargetID,
		Description: record.Description,
		IPAddress:   record.IPAddress,
		Timestamp:   time.Now(),
	}
	if err := s.db.CreateAdminActionLog(ctx, entry); err != nil {
		s.log.Error("failed to write audit entry",
			"action_type", record.ActionType, "target_id", record.TargetID, "error", err)
		return err
	}
	return nil
}

// Entry builds an AdminActionLog for callers that persist it inside a
// larger transaction.
func Entry(record Record) *ydb.AdminActionLog {
	return &ydb.AdminActionLog{
		LogID:       uuid.New().String(),
		AdminID:     record.AdminID,
		ActionType:  record.ActionType,
		TargetModel: record.TargetModel,
		TargetID:    record.TargetID,
		Description: record.Description,
		IPAddress:   record.IPAddress,
		Timestamp:   time.Now(),
	}
}

// List reads entries for administrators.
func (s *Service) List(ctx context.Context, actor *ydb.Account, filter *ydb.AuditFilter) ([]*ydb.AdminActionLog, error) {
	if !s.registry.Has(identity.ActorKind(actor.Kind), actor.Elevated, identity.CapAuditView) {
		return nil, errors.New("insufficient permissions to view audit log")
	}
	return s.db.ListAdminActionLogs(ctx, filter)
}
